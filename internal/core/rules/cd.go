package rules

import (
	"regexp"
	"strings"

	"github.com/colonyops/oops/internal/core/command"
	"github.com/colonyops/oops/internal/core/rule"
)

var cdTargetRe = regexp.MustCompile(`^cd\s+(.*)$`)

type cdMkdirRule struct{ rule.Meta }

func newCdMkdir() rule.Rule {
	return cdMkdirRule{rule.Meta{RuleName: "cd_mkdir", Prio: rule.DefaultPriority, Desc: "Create the directory before changing into it"}}
}

func (cdMkdirRule) Match(cmd *command.Command) bool {
	out, ok := lowerOutput(cmd)
	if !ok || !strings.HasPrefix(cmd.Script(), "cd ") {
		return false
	}
	return containsAny(out, "no such file or directory", "cd: can't cd to", "does not exist")
}

func (cdMkdirRule) Corrections(cmd *command.Command) []string {
	m := cdTargetRe.FindStringSubmatch(cmd.Script())
	if m == nil {
		return nil
	}
	dir := m[1]
	return []string{cmd.Shell().And("mkdir -p "+dir, "cd "+dir)}
}

type cdParentRule struct{ rule.Meta }

func newCdParent() rule.Rule {
	return cdParentRule{rule.Meta{RuleName: "cd_parent", Prio: rule.DefaultPriority, NoOutput: true, Desc: "Fix the missing space in cd.."}}
}

func (cdParentRule) Match(cmd *command.Command) bool {
	return strings.TrimSpace(cmd.Script()) == "cd.."
}

func (cdParentRule) Corrections(*command.Command) []string {
	return []string{"cd .."}
}
