package commands

import (
	"os"
	"path/filepath"

	"github.com/colonyops/oops/internal/core/config"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	RulesDir   string
	Debug      bool

	// Settings is loaded in the Before hook and available to all commands
	Settings *config.Settings
}

// DefaultConfigPath returns the default settings file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "oops", "settings.yaml")
}

// settings returns the loaded settings, or the defaults when the Before hook
// did not run.
func (f *Flags) settings() *config.Settings {
	if f.Settings == nil {
		s := config.DefaultSettings()
		f.Settings = &s
	}
	return f.Settings
}
