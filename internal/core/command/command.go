// Package command models a failed shell invocation: the script as typed, the
// output it produced and the dialect it was typed in.
package command

import (
	"sync"

	"github.com/colonyops/oops/internal/core/shell"
)

// Command is an immutable snapshot of a failed invocation. It is safe to share
// between goroutines.
type Command struct {
	script    string
	output    string
	hasOutput bool
	shell     shell.Shell
	parts     func() []string
}

// New creates a Command. An empty output means the output was not captured.
func New(script, output string, sh shell.Shell) *Command {
	c := &Command{
		script:    script,
		output:    output,
		hasOutput: output != "",
		shell:     sh,
	}
	c.parts = sync.OnceValue(func() []string {
		return Split(c.script, c.shell)
	})
	return c
}

// Script returns the command line exactly as typed.
func (c *Command) Script() string {
	return c.script
}

// Output returns the captured stdout and stderr, and false when nothing was
// captured.
func (c *Command) Output() (string, bool) {
	return c.output, c.hasOutput
}

// HasOutput reports whether output was captured.
func (c *Command) HasOutput() bool {
	return c.hasOutput
}

// Shell returns the dialect the command was typed in.
func (c *Command) Shell() shell.Shell {
	return c.shell
}

// Parts returns the tokenized script. The slice is a copy and may be modified.
func (c *Command) Parts() []string {
	p := c.parts()
	out := make([]string, len(p))
	copy(out, p)
	return out
}

// Arg returns the i-th token or "" when the script has fewer tokens.
func (c *Command) Arg(i int) string {
	p := c.parts()
	if i < 0 || i >= len(p) {
		return ""
	}
	return p[i]
}

// NArgs returns the number of tokens.
func (c *Command) NArgs() int {
	return len(c.parts())
}

// Program returns the first token, or "" for an empty script.
func (c *Command) Program() string {
	return c.Arg(0)
}
