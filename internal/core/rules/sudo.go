package rules

import (
	"strings"

	"github.com/colonyops/oops/internal/core/command"
	"github.com/colonyops/oops/internal/core/rule"
)

// permissionPatterns are matched against lowercased output.
var permissionPatterns = []string{
	"permission denied",
	"eacces",
	"pkg: insufficient privileges",
	"you cannot perform this operation unless you are root",
	"non-root users cannot",
	"operation not permitted",
	"not super-user",
	"superuser privilege",
	"root privilege",
	"this command has to be run under the root user.",
	"this operation requires root.",
	"requested operation requires superuser privilege",
	"must be run as root",
	"must run as root",
	"must be superuser",
	"must be root",
	"need to be root",
	"need root",
	"needs to be run as root",
	"only root can ",
	"you don't have access to the history db.",
	"authentication is required",
	"edspermissionerror",
	"you don't have write permissions",
	"use `sudo`",
	"sudorequirederror",
	"error: insufficient privileges",
	"updatedb: can not open a temporary file",
}

type sudoRule struct{ rule.Meta }

func newSudo() rule.Rule {
	return sudoRule{rule.Meta{RuleName: "sudo", Prio: rule.DefaultPriority, Desc: "Prepend sudo when the command failed for lack of privileges"}}
}

func (sudoRule) Match(cmd *command.Command) bool {
	out, ok := lowerOutput(cmd)
	if !ok {
		return false
	}
	if cmd.Program() == "sudo" && !strings.Contains(cmd.Script(), "&&") {
		return false
	}
	return containsAny(out, permissionPatterns...)
}

func (sudoRule) Corrections(cmd *command.Command) []string {
	script := cmd.Script()

	switch {
	case strings.Contains(script, "&&"):
		return []string{`sudo sh -c "` + strings.ReplaceAll(script, "sudo ", "") + `"`}
	case strings.Contains(script, ">"):
		return []string{`sudo sh -c "` + strings.ReplaceAll(script, `"`, `\"`) + `"`}
	default:
		return []string{"sudo " + script}
	}
}
