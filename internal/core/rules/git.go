package rules

import (
	"regexp"
	"slices"
	"strings"

	"github.com/colonyops/oops/internal/core/command"
	"github.com/colonyops/oops/internal/core/rule"
)

// git_push: push of a branch without upstream.

var setUpstreamRe = regexp.MustCompile(`git push (--set-upstream\s+\S+\s+\S+)`)

type gitPushRule struct{ rule.Meta }

func newGitPush() rule.Rule {
	return gitPushRule{rule.Meta{RuleName: "git_push", Prio: rule.DefaultPriority, Desc: "Use the --set-upstream suggestion git prints"}}
}

func (gitPushRule) Match(cmd *command.Command) bool {
	out, ok := cmd.Output()
	if !ok || cmd.Program() != "git" || !slices.Contains(cmd.Parts(), "push") {
		return false
	}
	return strings.Contains(out, "git push --set-upstream")
}

func (gitPushRule) Corrections(cmd *command.Command) []string {
	out, _ := cmd.Output()
	m := setUpstreamRe.FindStringSubmatch(out)
	if m == nil {
		return nil
	}

	parts := cmd.Parts()
	idx := slices.Index(parts, "push")
	if idx < 0 {
		return nil
	}
	return []string{command.Join(parts[:idx+1]) + " " + m[1]}
}

// git_not_command: typo in a git subcommand.

var (
	gitSimilarBlockRe = regexp.MustCompile(`(?i)(?:the most similar commands? (?:is|are)|did you mean (?:this|one of these)\?)[ \t]*\n((?:[ \t]+\S[^\n]*(?:\n|$))+)`)
	gitInlineRe       = regexp.MustCompile(`Did you mean '([^']+)'`)
)

type gitNotCommandRule struct{ rule.Meta }

func newGitNotCommand() rule.Rule {
	return gitNotCommandRule{rule.Meta{RuleName: "git_not_command", Prio: rule.DefaultPriority, Desc: "Replace a mistyped git subcommand with git's suggestions"}}
}

func (gitNotCommandRule) Match(cmd *command.Command) bool {
	out, ok := cmd.Output()
	return ok && cmd.Program() == "git" && strings.Contains(out, "is not a git command")
}

func (gitNotCommandRule) Corrections(cmd *command.Command) []string {
	out, _ := cmd.Output()
	broken := cmd.Arg(1)
	if broken == "" {
		return nil
	}

	var suggestions []string
	add := func(s string) {
		if s != "" && !slices.Contains(suggestions, s) {
			suggestions = append(suggestions, s)
		}
	}

	for _, block := range gitSimilarBlockRe.FindAllStringSubmatch(out, -1) {
		for _, line := range strings.Split(block[1], "\n") {
			if fields := strings.Fields(line); len(fields) > 0 {
				add(fields[0])
			}
		}
	}
	for _, m := range gitInlineRe.FindAllStringSubmatch(out, -1) {
		add(m[1])
	}

	fixes := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		fixes = append(fixes, replaceArg(cmd.Script(), "git", broken, s))
	}
	return fixes
}

// git_add: pathspec that git does not know about yet.

var pathspecRe = regexp.MustCompile(`error: pathspec '([^']*)' did not match any file\(s\) known to git`)

type gitAddRule struct{ rule.Meta }

func newGitAdd() rule.Rule {
	return gitAddRule{rule.Meta{RuleName: "git_add", Prio: rule.DefaultPriority, Desc: "Add the unknown file before retrying"}}
}

func (gitAddRule) Match(cmd *command.Command) bool {
	out, ok := cmd.Output()
	return ok &&
		strings.HasPrefix(cmd.Script(), "git ") &&
		strings.Contains(out, "Did you forget to 'git add'?") &&
		pathspecRe.MatchString(out)
}

func (gitAddRule) Corrections(cmd *command.Command) []string {
	out, _ := cmd.Output()
	m := pathspecRe.FindStringSubmatch(out)
	if m == nil {
		return nil
	}
	return []string{cmd.Shell().And("git add -- "+command.Join([]string{m[1]}), cmd.Script())}
}

// git_stash: stash operations with nothing to apply.

type gitStashRule struct{ rule.Meta }

func newGitStash() rule.Rule {
	return gitStashRule{rule.Meta{RuleName: "git_stash", Prio: rule.DefaultPriority, Desc: "List stashes when the referenced one does not exist"}}
}

func (gitStashRule) Match(cmd *command.Command) bool {
	out, ok := cmd.Output()
	return ok &&
		strings.HasPrefix(cmd.Script(), "git stash") &&
		containsAny(out, "No stash entries found", "does not apply to a stash-like commit", "is not a valid reference")
}

func (gitStashRule) Corrections(*command.Command) []string {
	return []string{"git stash list"}
}
