// Package executil provides process execution utilities.
package executil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// MaxOutputLen caps the combined output kept from a command. Bytes beyond the
// cap are discarded so a runaway command cannot exhaust memory.
const MaxOutputLen = 64 << 10

// waitDelay bounds how long a cancelled command's children may keep its
// output pipes open.
const waitDelay = 500 * time.Millisecond

// limitedWriter caps writes to a bytes.Buffer at a maximum byte count.
// Bytes beyond the limit are silently discarded.
type limitedWriter struct {
	buf *bytes.Buffer
	n   int64
	max int64
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	if w.n >= w.max {
		return len(p), nil
	}
	remaining := w.max - w.n
	origLen := len(p)
	if int64(origLen) > remaining {
		p = p[:remaining]
	}
	n, err := w.buf.Write(p)
	w.n += int64(n)
	if err != nil {
		return n, err
	}
	return origLen, nil
}

// Executor runs external commands.
type Executor interface {
	// Run executes a command and returns its combined output.
	Run(ctx context.Context, cmd string, args ...string) ([]byte, error)
	// RunEnv executes a command with env appended to the current environment
	// and returns its combined output, capped at MaxOutputLen.
	RunEnv(ctx context.Context, env []string, cmd string, args ...string) ([]byte, error)
}

// RealExecutor calls actual commands.
type RealExecutor struct{}

// Run executes a command and returns its combined output.
func (e *RealExecutor) Run(ctx context.Context, cmd string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, cmd, args...).CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("exec %s: %w", cmd, err)
	}
	return out, nil
}

// RunEnv executes a command with extra environment variables. The output is
// returned even when the command fails; the original *exec.ExitError is
// preserved via wrapping so callers can inspect exit codes with errors.As.
func (e *RealExecutor) RunEnv(ctx context.Context, env []string, cmd string, args ...string) ([]byte, error) {
	c := exec.CommandContext(ctx, cmd, args...)
	c.Env = append(os.Environ(), env...)
	c.WaitDelay = waitDelay

	var buf bytes.Buffer
	w := &limitedWriter{buf: &buf, max: MaxOutputLen}
	c.Stdout = w
	c.Stderr = w

	if err := c.Run(); err != nil {
		return buf.Bytes(), fmt.Errorf("exec %s: %w", cmd, err)
	}
	return buf.Bytes(), nil
}
