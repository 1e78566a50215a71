package doctor

import (
	"context"
	"os/exec"

	"github.com/colonyops/oops/internal/core/shell"
)

// lookPathFunc is the function used to find executables on PATH.
// Package-level variable to allow test overrides.
var lookPathFunc = exec.LookPath

// ShellCheck verifies that the shell can be detected and that its binary,
// used to re-run failed commands, is on PATH.
type ShellCheck struct {
	getenv func(string) string
}

// NewShellCheck creates a new shell check. getenv is usually os.Getenv.
func NewShellCheck(getenv func(string) string) *ShellCheck {
	return &ShellCheck{getenv: getenv}
}

func (c *ShellCheck) Name() string {
	return "Shell"
}

func (c *ShellCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	sh := shell.Detect(c.getenv)
	if sh == shell.Unknown {
		result.Items = append(result.Items, CheckItem{
			Label:  "shell",
			Status: StatusWarn,
			Detail: "could not detect shell from OOPS_SHELL or SHELL, falling back to sh",
		})
	} else {
		result.Items = append(result.Items, CheckItem{
			Label:  "shell",
			Status: StatusPass,
			Detail: sh.String(),
		})
	}

	bin := sh.Binary()
	if path, err := lookPathFunc(bin); err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  bin,
			Status: StatusFail,
			Detail: "not found on PATH (needed to re-run failed commands)",
		})
	} else {
		result.Items = append(result.Items, CheckItem{
			Label:  bin,
			Status: StatusPass,
			Detail: path,
		})
	}

	return result
}
