package setup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/colonyops/oops/internal/core/shell"
)

// aliasMarker identifies an rc file that already loads the oops function.
const aliasMarker = "oops alias"

// RCFile returns the rc file the shell reads on startup.
func RCFile(sh shell.Shell, home string) (string, error) {
	switch sh {
	case shell.Zsh:
		return filepath.Join(home, ".zshrc"), nil
	case shell.Bash:
		rc := filepath.Join(home, ".bashrc")
		if _, err := os.Stat(rc); os.IsNotExist(err) {
			if _, err := os.Stat(filepath.Join(home, ".bash_profile")); err == nil {
				rc = filepath.Join(home, ".bash_profile")
			}
		}
		return rc, nil
	case shell.Fish:
		return filepath.Join(home, ".config", "fish", "config.fish"), nil
	case shell.Sh:
		return filepath.Join(home, ".profile"), nil
	}
	return "", fmt.Errorf("no rc file known for shell %q", sh)
}

// AliasLine returns the rc file line that defines the alias function name.
func AliasLine(sh shell.Shell, name string) string {
	cmd := "oops alias"
	if name != "" && name != "fuck" {
		cmd += " " + name
	}

	switch sh {
	case shell.Fish:
		return cmd + " | source"
	case shell.PowerShell:
		return `iex "$(` + cmd + `)"`
	}
	return `eval "$(` + cmd + `)"`
}

// AliasConfigured reports whether rcFile already loads the oops function.
func AliasConfigured(rcFile string) (bool, error) {
	content, err := os.ReadFile(rcFile)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return strings.Contains(string(content), aliasMarker), nil
}

// InstallAlias appends line to rcFile unless the alias is already configured.
// It reports whether the file was changed.
func InstallAlias(rcFile, line string) (bool, error) {
	exists, err := AliasConfigured(rcFile)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(rcFile), 0o755); err != nil {
		return false, fmt.Errorf("create %s: %w", filepath.Dir(rcFile), err)
	}

	f, err := os.OpenFile(rcFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return false, fmt.Errorf("open %s: %w", rcFile, err)
	}

	content := fmt.Sprintf("\n# oops shell function (added by oops init)\n%s\n", line)
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return false, fmt.Errorf("write alias: %w", err)
	}

	return true, f.Close()
}
