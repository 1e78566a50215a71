package config

import (
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/oops/internal/core/styles"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the settings including
// file accessibility. The configPath argument specifies the settings file
// location to validate (empty string skips the file check).
// This calls Validate() first for basic structural validation.
func (s *Settings) ValidateDeep(configPath string) error {
	if err := s.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("rules_dir", s.RulesDir, isDirectoryOrNotExist),
		s.validatePriorities(),
		s.validateEnv(),
		criterio.Run("slow_commands", s.SlowCommands, noEmptyEntries),
		criterio.Run("exclude_rules", s.ExcludeRules, noEmptyEntries),
		criterio.Run("theme", s.Theme, knownTheme),
	)
}

// Warnings returns non-fatal issues: settings that reference rule names not
// in known.
func (s *Settings) Warnings(known []string) []ValidationWarning {
	var warnings []ValidationWarning

	check := func(category, name string) {
		if name == AllRules || slices.Contains(known, name) {
			return
		}
		warnings = append(warnings, ValidationWarning{
			Category: category,
			Item:     name,
			Message:  "references an unknown rule",
		})
	}

	for _, name := range s.Rules {
		check("rules", name)
	}
	for _, name := range s.ExcludeRules {
		check("exclude_rules", name)
	}
	for _, name := range sortedKeys(s.Priority) {
		check("priority", name)
	}

	return warnings
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

func knownTheme(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q, available: %s", name, strings.Join(styles.ThemeNames(), ", "))
	}
	return nil
}

func noEmptyEntries(entries []string) error {
	for i, e := range entries {
		if strings.TrimSpace(e) == "" {
			return fmt.Errorf("entry %d is empty", i)
		}
	}
	return nil
}

func (s *Settings) validatePriorities() error {
	var errs criterio.FieldErrorsBuilder
	for _, name := range sortedKeys(s.Priority) {
		if s.Priority[name] < 0 {
			errs = errs.Append(fmt.Sprintf("priority[%q]", name), fmt.Errorf("must not be negative, got %d", s.Priority[name]))
		}
	}
	return errs.ToError()
}

func (s *Settings) validateEnv() error {
	var errs criterio.FieldErrorsBuilder
	for _, key := range sortedKeys(s.Env) {
		if key == "" || strings.Contains(key, "=") {
			errs = errs.Append("env", fmt.Errorf("invalid variable name %q", key))
		}
	}
	return errs.ToError()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
