// Package shell describes the shell dialects oops understands: how commands
// are joined, how the alias function is rendered and how history is read.
package shell

import (
	"path/filepath"
	"strings"
)

// Shell is a shell dialect.
type Shell string

const (
	Bash       Shell = "bash"
	Zsh        Shell = "zsh"
	Fish       Shell = "fish"
	Sh         Shell = "sh"
	PowerShell Shell = "powershell"
	Unknown    Shell = "unknown"
)

// All lists the supported dialects in display order.
var All = []Shell{Bash, Zsh, Fish, Sh, PowerShell}

// Parse maps a shell name or path (e.g. "/usr/bin/zsh", "pwsh") to a Shell.
// Unrecognised names map to Unknown.
func Parse(s string) Shell {
	name := strings.ToLower(filepath.Base(strings.TrimSpace(s)))
	name = strings.TrimSuffix(name, ".exe")

	switch name {
	case "bash":
		return Bash
	case "zsh":
		return Zsh
	case "fish":
		return Fish
	case "sh", "dash", "ash":
		return Sh
	case "powershell", "pwsh":
		return PowerShell
	}
	return Unknown
}

// Detect resolves the current shell from OOPS_SHELL, falling back to the
// basename of $SHELL. getenv is usually os.Getenv.
func Detect(getenv func(string) string) Shell {
	if v := getenv("OOPS_SHELL"); v != "" {
		return Parse(v)
	}
	if v := getenv("SHELL"); v != "" {
		return Parse(v)
	}
	return Unknown
}

// Binary returns the executable used to run a script in this dialect.
func (s Shell) Binary() string {
	switch s {
	case Bash, Zsh, Fish:
		return string(s)
	case PowerShell:
		return "pwsh"
	}
	return "sh"
}

// ScriptArgs returns the arguments that make Binary run script.
func (s Shell) ScriptArgs(script string) []string {
	if s == PowerShell {
		return []string{"-NoProfile", "-Command", script}
	}
	return []string{"-c", script}
}

// And joins commands so that each runs only if the previous one succeeded.
func (s Shell) And(cmds ...string) string {
	sep := " && "
	if s == Fish {
		sep = "; and "
	}
	return strings.Join(cmds, sep)
}

// Or joins commands so that each runs only if the previous one failed.
func (s Shell) Or(cmds ...string) string {
	sep := " || "
	if s == Fish {
		sep = "; or "
	}
	return strings.Join(cmds, sep)
}

// POSIX reports whether the dialect follows POSIX quoting rules.
func (s Shell) POSIX() bool {
	return s != Fish && s != PowerShell
}

func (s Shell) String() string {
	return string(s)
}
