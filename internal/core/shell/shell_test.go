package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Shell
	}{
		{in: "/bin/bash", want: Bash},
		{in: "/usr/local/bin/zsh", want: Zsh},
		{in: "fish", want: Fish},
		{in: "/bin/dash", want: Sh},
		{in: "pwsh.exe", want: PowerShell},
		{in: "PowerShell", want: PowerShell},
		{in: "/usr/bin/nu", want: Unknown},
		{in: "", want: Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.in))
		})
	}
}

func TestDetect(t *testing.T) {
	env := func(m map[string]string) func(string) string {
		return func(k string) string { return m[k] }
	}

	assert.Equal(t, Fish, Detect(env(map[string]string{"OOPS_SHELL": "fish", "SHELL": "/bin/zsh"})))
	assert.Equal(t, Zsh, Detect(env(map[string]string{"SHELL": "/bin/zsh"})))
	assert.Equal(t, Unknown, Detect(env(nil)))
}

func TestShell_And(t *testing.T) {
	assert.Equal(t, "mkdir -p foo && cd foo", Bash.And("mkdir -p foo", "cd foo"))
	assert.Equal(t, "mkdir -p foo; and cd foo", Fish.And("mkdir -p foo", "cd foo"))
	assert.Equal(t, "a || b", Zsh.Or("a", "b"))
	assert.Equal(t, "single", Sh.And("single"))
}

func TestShell_Binary(t *testing.T) {
	assert.Equal(t, "zsh", Zsh.Binary())
	assert.Equal(t, "pwsh", PowerShell.Binary())
	assert.Equal(t, "sh", Unknown.Binary())

	assert.Equal(t, []string{"-c", "ls"}, Bash.ScriptArgs("ls"))
	assert.Equal(t, []string{"-NoProfile", "-Command", "ls"}, PowerShell.ScriptArgs("ls"))
}

func TestShell_Alias(t *testing.T) {
	t.Run("bash with history", func(t *testing.T) {
		out, err := Bash.Alias(AliasData{Name: "fix", Binary: "/usr/bin/oops", AlterHistory: true})
		require.NoError(t, err)

		assert.Contains(t, out, "fix () {")
		assert.Contains(t, out, "OOPS_SHELL=bash OOPS_ALIAS='fix'")
		assert.Contains(t, out, "/usr/bin/oops \"$@\"")
		assert.Contains(t, out, "history -s $OOPS_CMD;")
	})

	t.Run("zsh without history", func(t *testing.T) {
		out, err := Zsh.Alias(AliasData{})
		require.NoError(t, err)

		assert.Contains(t, out, "fuck () {")
		assert.NotContains(t, out, "print -s")
		assert.Contains(t, out, "unset OOPS_PREVIOUS OOPS_CMD;")
	})

	t.Run("fish", func(t *testing.T) {
		out, err := Fish.Alias(AliasData{Name: "fuck", AlterHistory: true})
		require.NoError(t, err)

		assert.Contains(t, out, "function fuck")
		assert.Contains(t, out, "builtin history merge")
	})

	t.Run("unknown shell", func(t *testing.T) {
		_, err := Unknown.Alias(AliasData{})
		require.Error(t, err)
	})
}

func TestLastCommand(t *testing.T) {
	tests := []struct {
		name    string
		history string
		alias   string
		want    string
	}{
		{name: "single line", history: "git psuh", alias: "fuck", want: "git psuh"},
		{name: "skips alias", history: "git psuh\nfuck", alias: "fuck", want: "git psuh"},
		{name: "skips oops", history: "ls /foo\noops --yes\n", alias: "fuck", want: "ls /foo"},
		{name: "skips absolute oops", history: "cat x\n/usr/local/bin/oops", alias: "", want: "cat x"},
		{name: "nothing usable", history: "fuck\n\n", alias: "fuck", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LastCommand(tt.history, tt.alias))
		})
	}
}
