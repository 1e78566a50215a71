package setup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/colonyops/oops/pkg/tmpl"
)

// ExampleRuleFile is the name of the disabled sample rule written by init.
const ExampleRuleFile = "example.yaml"

const settingsTemplate = `# oops settings, generated by 'oops init'.
# Run 'oops config show' to see every option with its resolved value.

# Rules to enable. ALL enables every rule that is on by default.
rules:
  - ALL

# Rules that never run, even when listed above.
exclude_rules: []

# Per-rule priority overrides. Lower values run and rank first.
# priority:
#   sudo: 100

# Ask before printing a correction for the shell to run.
require_confirmation: {{ .RequireConfirmation }}

# Push the corrected command into shell history.
alter_history: {{ .AlterHistory }}

# Seconds to wait when re-running the failed command.
wait_command: 3
wait_slow_command: 15

theme: {{ .Theme }}
`

const exampleRule = `# A user rule. Remove "enabled: false" or list the rule under "rules" in
# settings.yaml to turn it on.
name: checkout_new_branch
enabled: false
priority: 900
match_script: '^git checkout (?P<branch>\S+)$'
match_output: "did not match any file"
new_command_pattern: 'git checkout -b ${branch}'
`

// RenderSettings renders the settings file for answers.
func RenderSettings(a Answers) (string, error) {
	return tmpl.Render(settingsTemplate, a)
}

// WriteSettings writes the settings file, creating its directory.
func WriteSettings(configPath string, a Answers) error {
	content, err := RenderSettings(a)
	if err != nil {
		return fmt.Errorf("render settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	return os.WriteFile(configPath, []byte(content), 0o644)
}

// WriteExampleRule creates dir and writes the sample rule into it unless a
// file with that name already exists. It reports whether the file was
// written.
func WriteExampleRule(dir string) (bool, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("create rules dir: %w", err)
	}

	path := filepath.Join(dir, ExampleRuleFile)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("create example rule: %w", err)
	}

	if _, err := f.WriteString(exampleRule); err != nil {
		_ = f.Close()
		return false, fmt.Errorf("write example rule: %w", err)
	}
	return true, f.Close()
}

// BackupConfig creates a backup of existing config before overwriting.
// Returns empty string if no backup was needed (file doesn't exist).
func BackupConfig(configPath string) (string, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return "", nil
	}

	backupPath := configPath + ".bak"

	content, err := os.ReadFile(configPath)
	if err != nil {
		return "", fmt.Errorf("read existing config: %w", err)
	}

	if err := os.WriteFile(backupPath, content, 0o644); err != nil {
		return "", fmt.Errorf("create backup: %w", err)
	}

	return backupPath, nil
}

// ConfigExists checks if a config file exists at the given path.
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return err == nil
}
