// Package capture re-runs a failed command to collect the output the rules
// inspect.
package capture

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/colonyops/oops/internal/core/config"
	"github.com/colonyops/oops/internal/core/logging"
	"github.com/colonyops/oops/internal/core/shell"
	"github.com/colonyops/oops/pkg/executil"
)

// Output re-runs script through the shell with the settings environment and
// returns its combined output.
//
// The run is bounded by the settings timeout for the script. A command that
// exceeds it yields no output and no error. A non-zero exit status is the
// expected case and is not an error.
func Output(ctx context.Context, ex executil.Executor, settings *config.Settings, sh shell.Shell, script string) (string, error) {
	if timeout := settings.Timeout(script); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	out, err := ex.RunEnv(ctx, settings.Environ(), sh.Binary(), sh.ScriptArgs(script)...)
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) {
		logging.Component("capture").Debug().Ctx(ctx).Dur("timeout", settings.Timeout(script)).Msg("command timed out, continuing without output")
		return "", nil
	}

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return "", fmt.Errorf("re-run %q: %w", script, err)
	}

	return string(out), nil
}
