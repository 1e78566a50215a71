package doctor

import (
	"context"
	"fmt"
	"os"

	"github.com/colonyops/oops/internal/core/config"
)

// ConfigCheck verifies the settings file and the resolved settings.
type ConfigCheck struct {
	path     string
	settings *config.Settings
}

// NewConfigCheck creates a new settings check for the file at path.
func NewConfigCheck(path string, settings *config.Settings) *ConfigCheck {
	return &ConfigCheck{path: path, settings: settings}
}

func (c *ConfigCheck) Name() string {
	return "Settings"
}

func (c *ConfigCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	info, err := os.Stat(c.path)
	switch {
	case os.IsNotExist(err):
		result.Items = append(result.Items, CheckItem{
			Label:  "settings file",
			Status: StatusWarn,
			Detail: fmt.Sprintf("%s not found, using defaults (run 'oops init')", c.path),
		})
	case err != nil:
		result.Items = append(result.Items, CheckItem{
			Label:  "settings file",
			Status: StatusFail,
			Detail: fmt.Sprintf("inaccessible: %v", err),
		})
	case info.IsDir():
		result.Items = append(result.Items, CheckItem{
			Label:  "settings file",
			Status: StatusFail,
			Detail: "path is a directory",
		})
	default:
		result.Items = append(result.Items, CheckItem{
			Label:  "settings file",
			Status: StatusPass,
			Detail: c.path,
		})
	}

	if err := c.settings.ValidateDeep(c.path); err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "settings",
			Status: StatusFail,
			Detail: err.Error(),
		})
	} else {
		result.Items = append(result.Items, CheckItem{
			Label:  "settings",
			Status: StatusPass,
			Detail: "valid",
		})
	}

	return result
}
