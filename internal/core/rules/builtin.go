// Package rules holds the built-in correction rules.
package rules

import (
	"github.com/colonyops/oops/internal/core/rule"
)

// Options tune the built-in rules that depend on the environment.
type Options struct {
	// NumCloseMatches caps the suggestions of no_command. Zero means 3.
	NumCloseMatches int
	// ExcludedSearchPathPrefixes are PATH entries no_command ignores.
	ExcludedSearchPathPrefixes []string
	// PathEnv overrides $PATH for executable discovery.
	PathEnv string
	// Executables replaces PATH scanning entirely.
	Executables func() []string
}

// Builtin returns a fresh instance of every built-in rule in declaration
// order.
func Builtin(opts Options) []rule.Rule {
	return []rule.Rule{
		newSudo(),
		newChmodX(),
		newCdMkdir(),
		newCdParent(),
		newMkdirP(),
		newTouch(),
		newRmDir(),
		newCpOmittingDirectory(),
		newCatDir(),
		newGitPush(),
		newGitNotCommand(),
		newGitAdd(),
		newGitStash(),
		newCargoNoCommand(),
		newPythonCommand(),
		newNoCommand(opts),
		newManNoSpace(),
		newOpen(),
		newLsLa(),
	}
}

// Names returns the names of the built-in rules in declaration order.
func Names() []string {
	all := Builtin(Options{Executables: func() []string { return nil }})
	names := make([]string, len(all))
	for i, r := range all {
		names[i] = r.Name()
	}
	return names
}
