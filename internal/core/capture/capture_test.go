package capture

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/oops/internal/core/config"
	"github.com/colonyops/oops/internal/core/shell"
	"github.com/colonyops/oops/pkg/executil"
)

func TestOutput_RunsThroughShell(t *testing.T) {
	settings := config.DefaultSettings()
	settings.Env = map[string]string{"LC_ALL": "C"}

	ex := &executil.RecordingExecutor{
		Outputs: map[string][]byte{"zsh": []byte("zsh: command not found: gti\n")},
	}

	out, err := Output(context.Background(), ex, &settings, shell.Zsh, "gti status")
	require.NoError(t, err)
	assert.Equal(t, "zsh: command not found: gti\n", out)

	require.Len(t, ex.Commands, 1)
	assert.Equal(t, "zsh", ex.Commands[0].Cmd)
	assert.Equal(t, []string{"-c", "gti status"}, ex.Commands[0].Args)
	assert.Equal(t, []string{"LC_ALL=C"}, ex.Commands[0].Env)
}

func TestOutput_Timeout(t *testing.T) {
	settings := config.DefaultSettings()
	ex := &executil.RecordingExecutor{
		Outputs: map[string][]byte{"bash": []byte("partial")},
		Errors:  map[string]error{"bash": context.DeadlineExceeded},
	}

	out, err := Output(context.Background(), ex, &settings, shell.Bash, "sleep 100")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestOutput_StartFailure(t *testing.T) {
	settings := config.DefaultSettings()
	ex := &executil.RecordingExecutor{
		Errors: map[string]error{"fish": errors.New("executable file not found")},
	}

	_, err := Output(context.Background(), ex, &settings, shell.Fish, "ls")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "executable file not found")
}

func TestOutput_RealShell(t *testing.T) {
	settings := config.DefaultSettings()

	out, err := Output(context.Background(), &executil.RealExecutor{}, &settings, shell.Sh, "echo oops >&2; exit 1")
	require.NoError(t, err, "a failing command is the normal case")
	assert.Equal(t, "oops\n", out)
}

func TestOutput_RealShellTimeout(t *testing.T) {
	settings := config.DefaultSettings()
	settings.WaitCommand = 1

	out, err := Output(context.Background(), &executil.RealExecutor{}, &settings, shell.Sh, "echo early; sleep 5")
	require.NoError(t, err)
	assert.Empty(t, out)
}
