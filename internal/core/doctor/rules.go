package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/colonyops/oops/internal/core/config"
	"github.com/colonyops/oops/internal/core/registry"
	"github.com/colonyops/oops/internal/core/rule"
	"github.com/colonyops/oops/pkg/utils"
)

// RulesCheck verifies that the user rules compile and that the settings only
// reference rules that exist.
type RulesCheck struct {
	builtins []rule.Rule
	settings *config.Settings
	autofix  bool
}

// NewRulesCheck creates a new rules check. With autofix, a missing rules
// directory is created.
func NewRulesCheck(builtins []rule.Rule, settings *config.Settings, autofix bool) *RulesCheck {
	return &RulesCheck{builtins: builtins, settings: settings, autofix: autofix}
}

func (c *RulesCheck) Name() string {
	return "Rules"
}

func (c *RulesCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	dirItem := c.checkDir()
	result.Items = append(result.Items, dirItem)
	if dirItem.Status == StatusFail {
		return result
	}

	decls, loadErr := config.LoadUserRules(c.settings.RulesDir)
	if loadErr != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "rule files",
			Status: StatusFail,
			Detail: loadErr.Error(),
		})
	}

	set, buildErr := registry.Build(c.builtins, decls, c.settings)
	for _, err := range utils.FlattenErrors(buildErr) {
		var defErr *rule.DefinitionError
		label := "user rule"
		if errors.As(err, &defErr) {
			label = defErr.Rule
		}
		result.Items = append(result.Items, CheckItem{
			Label:  label,
			Status: StatusFail,
			Detail: err.Error(),
		})
	}

	for _, w := range c.settings.Warnings(set.Known()) {
		result.Items = append(result.Items, CheckItem{
			Label:  w.Item,
			Status: StatusWarn,
			Detail: fmt.Sprintf("%s %s", w.Category, w.Message),
		})
	}

	result.Items = append(result.Items, CheckItem{
		Label:  "enabled rules",
		Status: StatusPass,
		Detail: fmt.Sprintf("%d enabled, %d disabled, %d user rule(s)", set.Len(), len(set.Disabled()), len(decls)),
	})

	return result
}

func (c *RulesCheck) checkDir() CheckItem {
	dir := c.settings.RulesDir
	if dir == "" {
		return CheckItem{Label: "rules_dir", Status: StatusPass, Detail: "none configured"}
	}

	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		if c.autofix {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return CheckItem{Label: dir, Status: StatusFail, Detail: fmt.Sprintf("create: %v", err)}
			}
			return CheckItem{Label: dir, Status: StatusPass, Detail: "created"}
		}
		return CheckItem{Label: dir, Status: StatusWarn, Detail: "rules directory does not exist", Fixable: true}
	case err != nil:
		return CheckItem{Label: dir, Status: StatusFail, Detail: fmt.Sprintf("inaccessible: %v", err)}
	case !info.IsDir():
		return CheckItem{Label: dir, Status: StatusFail, Detail: "path is not a directory"}
	}
	return CheckItem{Label: dir, Status: StatusPass}
}
