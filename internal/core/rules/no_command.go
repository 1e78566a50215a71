package rules

import (
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/colonyops/oops/internal/core/command"
	"github.com/colonyops/oops/internal/core/rule"
)

// noCommandRule suggests executables on PATH whose names are close to an
// unknown program name.
type noCommandRule struct {
	rule.Meta
	maxMatches  int
	executables func() []string
	metric      *metrics.JaroWinkler
}

func newNoCommand(opts Options) rule.Rule {
	list := opts.Executables
	if list == nil {
		pathEnv, excluded := opts.PathEnv, opts.ExcludedSearchPathPrefixes
		list = func() []string { return PathExecutables(pathEnv, excluded) }
	}

	return &noCommandRule{
		Meta:        rule.Meta{RuleName: "no_command", Prio: 3000, Desc: "Suggest similarly named executables for an unknown command"},
		maxMatches:  opts.NumCloseMatches,
		executables: sync.OnceValue(list),
		metric:      metrics.NewJaroWinkler(),
	}
}

func (r *noCommandRule) Match(cmd *command.Command) bool {
	out, ok := lowerOutput(cmd)
	name := cmd.Program()
	if !ok || name == "" {
		return false
	}
	if !containsAny(out, "not found", "is not recognized as", "command not found") {
		return false
	}
	return !slices.Contains(r.executables(), name) && len(r.closeMatches(name, 1)) > 0
}

func (r *noCommandRule) Corrections(cmd *command.Command) []string {
	name := cmd.Program()
	if name == "" {
		return nil
	}

	matches := r.closeMatches(name, r.maxMatches)
	fixes := make([]string, 0, len(matches))
	for _, m := range matches {
		fixes = append(fixes, strings.Replace(cmd.Script(), name, m, 1))
	}
	return fixes
}

// closeMatches returns up to limit executables ordered by similarity,
// highest first. Equal scores are ordered by name.
func (r *noCommandRule) closeMatches(name string, limit int) []string {
	if limit <= 0 {
		limit = 3
	}

	threshold := 0.7
	switch {
	case len(name) <= 3:
		threshold = 0.5
	case len(name) <= 5:
		threshold = 0.6
	}

	type scored struct {
		name  string
		score float64
	}

	var candidates []scored
	for _, exe := range r.executables() {
		if s := strutil.Similarity(name, exe, r.metric); s >= threshold {
			candidates = append(candidates, scored{name: exe, score: s})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].name < candidates[j].name
	})

	out := make([]string, 0, min(limit, len(candidates)))
	for _, c := range candidates[:min(limit, len(candidates))] {
		out = append(out, c.name)
	}
	return out
}

// PathExecutables lists the unique executable names found in the directories
// of pathEnv (os.Getenv("PATH") when empty), skipping directories that start
// with one of the excluded prefixes.
func PathExecutables(pathEnv string, excluded []string) []string {
	if pathEnv == "" {
		pathEnv = os.Getenv("PATH")
	}

	seen := make(map[string]struct{})
	for _, dir := range filepath.SplitList(pathEnv) {
		if dir == "" || hasAnyPrefix(dir, excluded) {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if isExecutable(filepath.Join(dir, e.Name())) {
				seen[e.Name()] = struct{}{}
			}
		}
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if runtime.GOOS == "windows" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".exe", ".cmd", ".bat", ".com":
			return true
		}
		return false
	}
	return info.Mode().Perm()&0o111 != 0
}
