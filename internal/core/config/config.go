// Package config handles settings loading and validation for oops.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/colonyops/oops/internal/core/styles"
)

// AllRules enables every rule that is enabled by default.
const AllRules = "ALL"

// defaultRulesAlias is accepted in place of ALL.
const defaultRulesAlias = "DEFAULT_RULES"

// EnvPrefix prefixes every environment variable that overrides a setting.
const EnvPrefix = "OOPS_"

// Settings holds the user configuration. Values come from the defaults, then
// the settings file, then OOPS_* environment variables.
type Settings struct {
	// Rules lists enabled rules. ALL enables every rule enabled by default.
	Rules []string `yaml:"rules" json:"rules" env:"RULES" envSeparator:":"`
	// ExcludeRules always wins over Rules.
	ExcludeRules []string `yaml:"exclude_rules" json:"exclude_rules" env:"EXCLUDE_RULES" envSeparator:":"`
	// Priority overrides rule priorities by name.
	Priority map[string]int `yaml:"priority" json:"priority" env:"PRIORITY" envSeparator:":" envKeyValSeparator:"="`

	RequireConfirmation bool `yaml:"require_confirmation" json:"require_confirmation" env:"REQUIRE_CONFIRMATION"`
	// WaitCommand bounds the re-run of the failed command, in seconds.
	WaitCommand int `yaml:"wait_command" json:"wait_command" env:"WAIT_COMMAND"`
	// WaitSlowCommand replaces WaitCommand for SlowCommands.
	WaitSlowCommand int      `yaml:"wait_slow_command" json:"wait_slow_command" env:"WAIT_SLOW_COMMAND"`
	SlowCommands    []string `yaml:"slow_commands" json:"slow_commands" env:"SLOW_COMMANDS" envSeparator:":"`

	NoColors bool   `yaml:"no_colors" json:"no_colors" env:"NO_COLORS"`
	Theme    string `yaml:"theme" json:"theme" env:"THEME"`
	Debug    bool   `yaml:"debug" json:"debug" env:"DEBUG"`

	NumCloseMatches            int      `yaml:"num_close_matches" json:"num_close_matches" env:"NUM_CLOSE_MATCHES"`
	ExcludedSearchPathPrefixes []string `yaml:"excluded_search_path_prefixes" json:"excluded_search_path_prefixes" env:"EXCLUDED_SEARCH_PATH_PREFIXES" envSeparator:":"`

	// Env is added to the environment of the re-run command.
	Env          map[string]string `yaml:"env" json:"env"`
	AlterHistory bool              `yaml:"alter_history" json:"alter_history" env:"ALTER_HISTORY"`

	// RulesDir holds user rule files. Defaults to <config dir>/rules.
	RulesDir string `yaml:"rules_dir" json:"rules_dir" env:"RULES_DIR"`
}

// DefaultSettings returns Settings with sensible defaults.
func DefaultSettings() Settings {
	return Settings{
		Rules:               []string{AllRules},
		ExcludeRules:        []string{},
		Priority:            map[string]int{},
		RequireConfirmation: true,
		WaitCommand:         3,
		WaitSlowCommand:     15,
		SlowCommands:        []string{"lein", "react-native", "gradle", "./gradlew", "vagrant"},
		NumCloseMatches:     3,
		Theme:               styles.DefaultTheme,
		Env: map[string]string{
			"LC_ALL":    "C",
			"LANG":      "C",
			"GIT_TRACE": "1",
		},
		AlterHistory: true,
	}
}

// Load reads settings from the given path and applies OOPS_* environment
// overrides. A missing file yields the defaults.
func Load(configPath string) (*Settings, error) {
	return load(configPath, nil)
}

// load is Load with an explicit environment; nil means the process environment.
func load(configPath string, environ map[string]string) (*Settings, error) {
	cfg := DefaultSettings()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read settings file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse settings file: %w", err)
			}
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix, Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	cfg.applyDefaults(configPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills unset options and normalises aliases.
func (s *Settings) applyDefaults(configPath string) {
	defaults := DefaultSettings()

	if len(s.Rules) == 0 {
		s.Rules = defaults.Rules
	}
	for i, name := range s.Rules {
		if name == defaultRulesAlias {
			s.Rules[i] = AllRules
		}
	}
	if s.Priority == nil {
		s.Priority = map[string]int{}
	}
	if s.NumCloseMatches == 0 {
		s.NumCloseMatches = defaults.NumCloseMatches
	}
	if s.Theme == "" {
		s.Theme = defaults.Theme
	}
	if s.RulesDir == "" && configPath != "" {
		s.RulesDir = filepath.Join(filepath.Dir(configPath), "rules")
	}
}

// Validate checks that the settings are structurally valid.
func (s *Settings) Validate() error {
	if s.WaitCommand < 0 {
		return fmt.Errorf("wait_command must not be negative")
	}
	if s.WaitSlowCommand < 0 {
		return fmt.Errorf("wait_slow_command must not be negative")
	}
	if s.NumCloseMatches < 1 {
		return fmt.Errorf("num_close_matches must be at least 1")
	}
	for _, name := range s.Rules {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("rules must not contain empty names")
		}
	}
	return nil
}

// IsRuleEnabled reports whether a rule with the given name takes part in
// matching. Exclusion always wins; an explicit entry in Rules enables rules
// that are off by default.
func (s *Settings) IsRuleEnabled(name string, enabledByDefault bool) bool {
	if slices.Contains(s.ExcludeRules, name) {
		return false
	}
	if slices.Contains(s.Rules, name) {
		return true
	}
	return enabledByDefault && slices.Contains(s.Rules, AllRules)
}

// RulePriority returns the configured priority for name, or def.
func (s *Settings) RulePriority(name string, def int) int {
	if p, ok := s.Priority[name]; ok {
		return p
	}
	return def
}

// IsSlowCommand reports whether the script's program is listed in
// SlowCommands.
func (s *Settings) IsSlowCommand(script string) bool {
	fields := strings.Fields(script)
	if len(fields) == 0 {
		return false
	}
	return slices.Contains(s.SlowCommands, fields[0])
}

// Timeout returns how long the failed command may run when it is re-run to
// capture its output.
func (s *Settings) Timeout(script string) time.Duration {
	if s.IsSlowCommand(script) {
		return time.Duration(s.WaitSlowCommand) * time.Second
	}
	return time.Duration(s.WaitCommand) * time.Second
}

// Environ returns Env as KEY=VALUE pairs sorted by key.
func (s *Settings) Environ() []string {
	keys := make([]string, 0, len(s.Env))
	for k := range s.Env {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+s.Env[k])
	}
	return out
}
