package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/oops/internal/core/config"
	"github.com/colonyops/oops/internal/core/rule"
	"github.com/colonyops/oops/internal/core/rules"
	"github.com/colonyops/oops/internal/printer"
)

const gitPsuhOutput = "git: 'psuh' is not a git command. See 'git --help'.\n\nThe most similar command is\n\tpush\n"

// testEnv runs commands against an isolated settings directory and captures
// stdout (the root writer) and the printer output separately.
type testEnv struct {
	flags  *Flags
	stdout bytes.Buffer
	stderr bytes.Buffer
	ctx    context.Context
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	settings := config.DefaultSettings()
	settings.RulesDir = filepath.Join(dir, "rules")

	orig := builtinRules
	builtinRules = func(*config.Settings) []rule.Rule {
		return rules.Builtin(rules.Options{
			Executables: func() []string { return []string{"git", "ls", "cat"} },
		})
	}
	t.Cleanup(func() { builtinRules = orig })

	env := &testEnv{
		flags: &Flags{
			ConfigPath: filepath.Join(dir, "settings.yaml"),
			Settings:   &settings,
		},
	}
	env.ctx = printer.NewContext(context.Background(), printer.New(&env.stderr))
	return env
}

func (e *testEnv) run(register func(*cli.Command) *cli.Command, args ...string) error {
	root := &cli.Command{
		Name:           "oops",
		Writer:         &e.stdout,
		ErrWriter:      &e.stderr,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
	root = register(root)
	return root.Run(e.ctx, append([]string{"oops"}, args...))
}

func (e *testEnv) writeRule(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(e.flags.Settings.RulesDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(e.flags.Settings.RulesDir, name), []byte(content), 0o644))
}

func requireExitCode(t *testing.T, err error, code int) {
	t.Helper()
	var exitErr cli.ExitCoder
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, code, exitErr.ExitCode())
}

func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}
