package shell

import (
	"strings"
)

// LastCommand returns the most recent history entry that is not an
// invocation of oops itself or of its alias. history holds one command per
// line, oldest first. An empty string means nothing usable was found.
func LastCommand(history, alias string) string {
	lines := strings.Split(history, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" || isSelfInvocation(line, alias) {
			continue
		}
		return line
	}
	return ""
}

func isSelfInvocation(line, alias string) bool {
	first, _, _ := strings.Cut(line, " ")
	if alias != "" && first == alias {
		return true
	}
	return first == "oops" || strings.HasSuffix(first, "/oops")
}
