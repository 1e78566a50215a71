package logging

import "context"

type contextKey string

const (
	scriptKey contextKey = "script"
	shellKey  contextKey = "shell"
)

// WithScript adds the command being corrected to the context.
func WithScript(ctx context.Context, script string) context.Context {
	return context.WithValue(ctx, scriptKey, script)
}

// WithShell adds the shell dialect to the context.
func WithShell(ctx context.Context, shell string) context.Context {
	return context.WithValue(ctx, shellKey, shell)
}

// GetScript retrieves the command being corrected from the context.
// Returns empty string if not present.
func GetScript(ctx context.Context) string {
	if s, ok := ctx.Value(scriptKey).(string); ok {
		return s
	}
	return ""
}

// GetShell retrieves the shell dialect from the context.
// Returns empty string if not present.
func GetShell(ctx context.Context) string {
	if s, ok := ctx.Value(shellKey).(string); ok {
		return s
	}
	return ""
}
