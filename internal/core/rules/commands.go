package rules

import (
	"regexp"
	"strings"

	"github.com/colonyops/oops/internal/core/command"
	"github.com/colonyops/oops/internal/core/rule"
)

// cargo_no_command: mistyped cargo subcommand.

var (
	cargoSimilarRe = regexp.MustCompile("a command with a similar name exists: `([^`]*)`")
	cargoMeanRe    = regexp.MustCompile("Did you mean `([^`]*)`")
)

type cargoNoCommandRule struct{ rule.Meta }

func newCargoNoCommand() rule.Rule {
	return cargoNoCommandRule{rule.Meta{RuleName: "cargo_no_command", Prio: rule.DefaultPriority, Desc: "Replace a mistyped cargo subcommand with cargo's suggestion"}}
}

func (cargoNoCommandRule) Match(cmd *command.Command) bool {
	out, ok := cmd.Output()
	if !ok || !strings.HasPrefix(cmd.Script(), "cargo ") {
		return false
	}
	lower := strings.ToLower(out)
	return containsAny(lower, "no such subcommand", "no such command") &&
		containsAny(out, "Did you mean", "a command with a similar name exists")
}

func (cargoNoCommandRule) Corrections(cmd *command.Command) []string {
	out, _ := cmd.Output()
	broken := cmd.Arg(1)
	if broken == "" {
		return nil
	}

	var fix string
	if m := cargoSimilarRe.FindStringSubmatch(out); m != nil {
		fix = m[1]
	} else if m := cargoMeanRe.FindStringSubmatch(out); m != nil {
		fix = m[1]
	}
	if fix == "" {
		return nil
	}
	return []string{replaceArg(cmd.Script(), "cargo", broken, fix)}
}

// python_command: running a .py file directly.

type pythonCommandRule struct{ rule.Meta }

func newPythonCommand() rule.Rule {
	return pythonCommandRule{rule.Meta{RuleName: "python_command", Prio: rule.DefaultPriority, Desc: "Run a Python script through the interpreter"}}
}

func (pythonCommandRule) Match(cmd *command.Command) bool {
	out, ok := lowerOutput(cmd)
	return ok &&
		strings.HasSuffix(cmd.Program(), ".py") &&
		containsAny(out, "permission denied", "command not found")
}

func (pythonCommandRule) Corrections(cmd *command.Command) []string {
	return []string{"python " + cmd.Script()}
}

// man_no_space: "mansomething" typed without the space.

type manNoSpaceRule struct{ rule.Meta }

func newManNoSpace() rule.Rule {
	return manNoSpaceRule{rule.Meta{RuleName: "man_no_space", Prio: rule.DefaultPriority + 1000, Desc: "Insert the missing space after man"}}
}

func (manNoSpaceRule) Match(cmd *command.Command) bool {
	out, ok := lowerOutput(cmd)
	script := cmd.Script()
	return ok &&
		strings.HasPrefix(script, "man") &&
		!strings.HasPrefix(script, "man ") &&
		len(script) > len("man") &&
		strings.Contains(out, "command not found")
}

func (manNoSpaceRule) Corrections(cmd *command.Command) []string {
	return []string{"man " + strings.TrimPrefix(cmd.Script(), "man")}
}

// open: macOS open on a system that only has xdg-open.

type openRule struct{ rule.Meta }

func newOpen() rule.Rule {
	return openRule{rule.Meta{RuleName: "open", Prio: rule.DefaultPriority, Desc: "Use xdg-open where open does not exist"}}
}

func (openRule) Match(cmd *command.Command) bool {
	out, ok := lowerOutput(cmd)
	if !ok {
		return false
	}
	switch cmd.Program() {
	case "open":
		return strings.Contains(out, "command not found")
	case "xdg-open":
		return strings.Contains(out, "no such file")
	}
	return false
}

func (openRule) Corrections(cmd *command.Command) []string {
	if cmd.Program() != "open" {
		return nil
	}
	return []string{strings.Replace(cmd.Script(), "open", "xdg-open", 1)}
}

// ls_la: common ls typos.

var lsTypos = map[string]string{
	"ls l":    "ls -la",
	"ls la":   "ls -la",
	"ls -la.": "ls -la",
	"ls -al.": "ls -la",
	"sl":      "ls",
	"sl -la":  "ls -la",
}

type lsLaRule struct{ rule.Meta }

func newLsLa() rule.Rule {
	return lsLaRule{rule.Meta{RuleName: "ls_la", Prio: rule.DefaultPriority, NoOutput: true, Desc: "Fix common ls typos such as sl and ls la"}}
}

func (lsLaRule) Match(cmd *command.Command) bool {
	_, ok := lsTypos[strings.TrimSpace(cmd.Script())]
	return ok
}

func (lsLaRule) Corrections(cmd *command.Command) []string {
	fix, ok := lsTypos[strings.TrimSpace(cmd.Script())]
	if !ok {
		return nil
	}
	return []string{fix}
}
