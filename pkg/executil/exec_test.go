package executil

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimitedWriter(t *testing.T) {
	var buf bytes.Buffer
	w := &limitedWriter{buf: &buf, max: 5}

	n, err := w.Write([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = w.Write([]byte("defgh"))
	require.NoError(t, err)
	assert.Equal(t, 5, n, "reports the full length so writers do not fail")

	_, _ = w.Write([]byte("ijk"))
	assert.Equal(t, "abcde", buf.String())
}

func TestRealExecutor_Run(t *testing.T) {
	exec := &RealExecutor{}
	ctx := context.Background()

	t.Run("successful command", func(t *testing.T) {
		out, err := exec.Run(ctx, "echo", "hello")
		require.NoError(t, err)
		assert.Equal(t, "hello\n", string(out))
	})

	t.Run("command not found", func(t *testing.T) {
		_, err := exec.Run(ctx, "nonexistent-command-12345")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exec nonexistent-command-12345")
	})

	t.Run("command fails", func(t *testing.T) {
		_, err := exec.Run(ctx, "false")
		require.Error(t, err)
	})
}

func TestRealExecutor_RunEnv(t *testing.T) {
	e := &RealExecutor{}
	ctx := context.Background()

	t.Run("passes extra environment", func(t *testing.T) {
		out, err := e.RunEnv(ctx, []string{"OOPS_TEST_VALUE=42"}, "sh", "-c", "echo $OOPS_TEST_VALUE")
		require.NoError(t, err)
		assert.Equal(t, "42\n", string(out))
	})

	t.Run("returns output and exit error on failure", func(t *testing.T) {
		out, err := e.RunEnv(ctx, nil, "sh", "-c", "echo out; echo err >&2; exit 3")
		require.Error(t, err)
		assert.Contains(t, string(out), "out")
		assert.Contains(t, string(out), "err")

		var exitErr *exec.ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 3, exitErr.ExitCode())
	})

	t.Run("caps output", func(t *testing.T) {
		out, err := e.RunEnv(ctx, nil, "sh", "-c", "head -c 200000 /dev/zero | tr '\\0' 'a'")
		require.NoError(t, err)
		assert.Len(t, out, MaxOutputLen)
		assert.Equal(t, strings.Repeat("a", 10), string(out[:10]))
	})
}

func TestRecordingExecutor(t *testing.T) {
	t.Run("records commands", func(t *testing.T) {
		exec := &RecordingExecutor{}
		ctx := context.Background()

		_, _ = exec.Run(ctx, "git", "status")
		_, _ = exec.RunEnv(ctx, []string{"LANG=C"}, "bash", "-c", "git psuh")

		require.Len(t, exec.Commands, 2)
		assert.Equal(t, "git", exec.Commands[0].Cmd)
		assert.Equal(t, []string{"status"}, exec.Commands[0].Args)
		assert.Empty(t, exec.Commands[0].Env)
		assert.Equal(t, []string{"LANG=C"}, exec.Commands[1].Env)
	})

	t.Run("returns configured output", func(t *testing.T) {
		exec := &RecordingExecutor{
			Outputs: map[string][]byte{
				"bash": []byte("output"),
			},
		}

		out, err := exec.RunEnv(context.Background(), nil, "bash", "-c", "x")
		require.NoError(t, err)
		assert.Equal(t, []byte("output"), out)
	})

	t.Run("returns configured error", func(t *testing.T) {
		expectedErr := errors.New("command failed")
		exec := &RecordingExecutor{
			Errors: map[string]error{
				"git": expectedErr,
			},
		}

		_, err := exec.Run(context.Background(), "git", "status")
		assert.Equal(t, expectedErr, err)
	})

	t.Run("reset clears commands", func(t *testing.T) {
		exec := &RecordingExecutor{}

		_, _ = exec.Run(context.Background(), "echo", "hello")
		require.Len(t, exec.Commands, 1)

		exec.Reset()
		assert.Empty(t, exec.Commands)
	})
}
