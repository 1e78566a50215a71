package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRuleFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadUserRules(t *testing.T) {
	dir := t.TempDir()

	writeRuleFile(t, dir, "b_myapp.yaml", `
name: myapp
match_script: "^myapp (.+)$"
new_command_pattern: "myapp --correct $1"
requires_output: false
`)
	writeRuleFile(t, dir, "a_sl.yml", `
match_script: "^sl$"
new_command: ls
priority: 50
`)
	writeRuleFile(t, dir, "nested/c_npm.yaml", `
name: npm_run
match_script: "^npm "
match_output: "Missing script"
new_command: npm run
enabled: false
`)
	writeRuleFile(t, dir, "README.md", "ignored")

	decls, err := LoadUserRules(dir)
	require.NoError(t, err)
	require.Len(t, decls, 3)

	assert.Equal(t, "a_sl", decls[0].Name, "name defaults to the file name")
	require.NotNil(t, decls[0].Priority)
	assert.Equal(t, 50, *decls[0].Priority)
	assert.Nil(t, decls[1].Priority, "priority is unset when omitted")
	assert.Equal(t, filepath.Join(dir, "a_sl.yml"), decls[0].Source)

	assert.Equal(t, "myapp", decls[1].Name)
	require.NotNil(t, decls[1].RequiresOutput)
	assert.False(t, *decls[1].RequiresOutput)

	assert.Equal(t, "npm_run", decls[2].Name)
	require.NotNil(t, decls[2].Enabled)
	assert.False(t, *decls[2].Enabled)
}

func TestLoadUserRules_PartialFailure(t *testing.T) {
	dir := t.TempDir()

	writeRuleFile(t, dir, "good.yaml", "match_script: '^x$'\nnew_command: y\n")
	writeRuleFile(t, dir, "typo.yaml", "match_scrpt: '^x$'\nnew_command: y\n")
	writeRuleFile(t, dir, "broken.yaml", "name: [oops")

	decls, err := LoadUserRules(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.yaml")
	assert.Contains(t, err.Error(), "typo.yaml")

	require.Len(t, decls, 1)
	assert.Equal(t, "good", decls[0].Name)
}

func TestLoadUserRules_MissingDir(t *testing.T) {
	decls, err := LoadUserRules(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, decls)

	decls, err = LoadUserRules("")
	require.NoError(t, err)
	assert.Empty(t, decls)
}

func TestLoadUserRules_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	writeRuleFile(t, dir, "empty.yaml", "")

	decls, err := LoadUserRules(dir)
	require.NoError(t, err)
	require.Len(t, decls, 1)
	assert.Equal(t, "empty", decls[0].Name)
	assert.Error(t, decls[0].Validate(), "an empty rule loads but does not validate")
}
