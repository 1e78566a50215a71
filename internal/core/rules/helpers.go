package rules

import (
	"os"
	"strings"

	"github.com/colonyops/oops/internal/core/command"
)

// statFunc is the function used to inspect paths on disk.
// Package-level variable to allow test overrides.
var statFunc = os.Stat

// lowerOutput returns the lowercased output and whether output was captured.
func lowerOutput(cmd *command.Command) (string, bool) {
	out, ok := cmd.Output()
	if !ok {
		return "", false
	}
	return strings.ToLower(out), true
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// replaceArg replaces the first occurrence of old that follows the program
// name, so that fixing "git i" does not touch the "i" in "git".
func replaceArg(script, program, old, replacement string) string {
	start := 0
	if i := strings.Index(script, program); i >= 0 {
		start = i + len(program)
	}
	i := strings.Index(script[start:], old)
	if i < 0 {
		return script
	}
	i += start
	return script[:i] + replacement + script[i+len(old):]
}

func isDir(path string) bool {
	info, err := statFunc(path)
	return err == nil && info.IsDir()
}

func exists(path string) bool {
	_, err := statFunc(path)
	return err == nil
}
