package rules

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/colonyops/oops/internal/core/command"
	"github.com/colonyops/oops/internal/core/rule"
)

// chmod_x: ./script.sh fails because the file is not executable.

type chmodXRule struct{ rule.Meta }

func newChmodX() rule.Rule {
	return chmodXRule{rule.Meta{RuleName: "chmod_x", Prio: rule.DefaultPriority, Desc: "Make a local script executable before running it"}}
}

func (chmodXRule) Match(cmd *command.Command) bool {
	out, ok := lowerOutput(cmd)
	if !ok || !strings.HasPrefix(cmd.Script(), "./") || !strings.Contains(out, "permission denied") {
		return false
	}

	path := cmd.Program()
	if !strings.HasPrefix(path, "./") {
		return false
	}
	info, err := statFunc(path)
	if err != nil {
		return false
	}
	return info.Mode().Perm()&0o100 == 0
}

func (chmodXRule) Corrections(cmd *command.Command) []string {
	path := cmd.Program()
	if !strings.HasPrefix(path, "./") {
		return nil
	}
	return []string{cmd.Shell().And("chmod +x "+strings.TrimPrefix(path, "./"), cmd.Script())}
}

// mkdir_p: mkdir of a nested path whose parents are missing.

var mkdirRe = regexp.MustCompile(`\bmkdir\s+`)

type mkdirPRule struct{ rule.Meta }

func newMkdirP() rule.Rule {
	return mkdirPRule{rule.Meta{RuleName: "mkdir_p", Prio: rule.DefaultPriority, Desc: "Add -p to mkdir when parent directories are missing"}}
}

func (mkdirPRule) Match(cmd *command.Command) bool {
	out, ok := cmd.Output()
	return ok && strings.Contains(cmd.Script(), "mkdir") && strings.Contains(out, "No such file or directory")
}

func (mkdirPRule) Corrections(cmd *command.Command) []string {
	script := cmd.Script()
	loc := mkdirRe.FindStringIndex(script)
	if loc == nil {
		return nil
	}
	return []string{script[:loc[0]] + "mkdir -p " + script[loc[1]:]}
}

// touch: the file's parent directory does not exist yet.

type touchRule struct{ rule.Meta }

func newTouch() rule.Rule {
	return touchRule{rule.Meta{RuleName: "touch", Prio: rule.DefaultPriority, Desc: "Create the missing parent directory before touching a file"}}
}

func missingParent(cmd *command.Command) (string, bool) {
	target := cmd.Arg(1)
	if target == "" {
		return "", false
	}
	dir := filepath.Dir(target)
	if dir == "." || dir == string(filepath.Separator) || exists(dir) {
		return "", false
	}
	return dir, true
}

func (touchRule) Match(cmd *command.Command) bool {
	out, ok := lowerOutput(cmd)
	if !ok || cmd.Program() != "touch" {
		return false
	}
	if !containsAny(out, "no such file or directory", "cannot touch", "not a directory") {
		return false
	}
	_, ok = missingParent(cmd)
	return ok
}

func (touchRule) Corrections(cmd *command.Command) []string {
	dir, ok := missingParent(cmd)
	if !ok {
		return nil
	}
	return []string{cmd.Shell().And("mkdir -p "+command.Join([]string{dir}), cmd.Script())}
}

// rm_dir: rm on a directory without -r.

type rmDirRule struct{ rule.Meta }

func newRmDir() rule.Rule {
	return rmDirRule{rule.Meta{RuleName: "rm_dir", Prio: rule.DefaultPriority, Desc: "Add -r to rm when the target is a directory"}}
}

func (rmDirRule) Match(cmd *command.Command) bool {
	out, ok := lowerOutput(cmd)
	script := cmd.Script()
	return ok &&
		strings.HasPrefix(script, "rm ") &&
		containsAny(out, "is a directory", "cannot remove") &&
		!containsAny(script, "-r", "-R")
}

func (rmDirRule) Corrections(cmd *command.Command) []string {
	return []string{strings.Replace(cmd.Script(), "rm ", "rm -r ", 1)}
}

// cp_omitting_directory: cp of a directory without -r.

type cpOmittingDirectoryRule struct{ rule.Meta }

func newCpOmittingDirectory() rule.Rule {
	return cpOmittingDirectoryRule{rule.Meta{RuleName: "cp_omitting_directory", Prio: rule.DefaultPriority, Desc: "Add -r to cp when the source is a directory"}}
}

func (cpOmittingDirectoryRule) Match(cmd *command.Command) bool {
	out, ok := lowerOutput(cmd)
	script := cmd.Script()
	return ok &&
		strings.HasPrefix(script, "cp ") &&
		containsAny(out, "omitting directory", "is a directory", "not a regular file") &&
		!containsAny(script, "-r", "-R", "-a")
}

func (cpOmittingDirectoryRule) Corrections(cmd *command.Command) []string {
	return []string{strings.Replace(cmd.Script(), "cp ", "cp -r ", 1)}
}

// cat_dir: cat on a directory.

type catDirRule struct{ rule.Meta }

func newCatDir() rule.Rule {
	return catDirRule{rule.Meta{RuleName: "cat_dir", Prio: rule.DefaultPriority, Desc: "Use ls instead of cat on a directory"}}
}

func (catDirRule) Match(cmd *command.Command) bool {
	out, ok := cmd.Output()
	if !ok || cmd.Program() != "cat" || cmd.NArgs() < 2 {
		return false
	}
	return strings.HasPrefix(out, "cat: ") && isDir(cmd.Arg(1))
}

func (catDirRule) Corrections(cmd *command.Command) []string {
	return []string{strings.Replace(cmd.Script(), "cat", "ls", 1)}
}
