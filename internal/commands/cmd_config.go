package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/colonyops/oops/internal/core/config"
	"github.com/colonyops/oops/internal/core/rule"
	"github.com/colonyops/oops/internal/printer"
	"github.com/colonyops/oops/pkg/utils"
)

type ConfigCmd struct {
	flags  *Flags
	format string
}

// NewConfigCmd creates a new config command.
func NewConfigCmd(flags *Flags) *ConfigCmd {
	return &ConfigCmd{flags: flags}
}

// Register adds the config command and its subcommands to the application.
func (cmd *ConfigCmd) Register(app *cli.Command) *cli.Command {
	formatFlag := func(usage string) *cli.StringFlag {
		return &cli.StringFlag{
			Name:        "format",
			Usage:       usage,
			Destination: &cmd.format,
		}
	}

	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Settings management commands",
		Commands: []*cli.Command{
			{
				Name:        "show",
				Usage:       "Print the resolved settings",
				UsageText:   "oops config show [--format yaml|json]",
				Description: "Prints the settings after defaults, the settings file and OOPS_* environment variables are applied.",
				Flags:       []cli.Flag{formatFlag("output format (yaml, json)")},
				Action:      cmd.runShow,
			},
			{
				Name:        "validate",
				Usage:       "Validate the settings file and user rules",
				UsageText:   "oops config validate [--format text|json]",
				Description: "Validates the settings, compiles every user rule and reports settings that reference unknown rules.",
				Flags:       []cli.Flag{formatFlag("output format (text, json)")},
				Action:      cmd.runValidate,
			},
		},
	})

	return app
}

func (cmd *ConfigCmd) runShow(_ context.Context, c *cli.Command) error {
	settings := cmd.flags.settings()
	out := c.Root().Writer

	switch cmd.format {
	case "json":
		return writeJSON(out, settings)
	case "", "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(settings); err != nil {
			return fmt.Errorf("encode settings: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want yaml or json)", cmd.format)
	}
}

// validationReport is the outcome of oops config validate.
type validationReport struct {
	Valid    bool                       `json:"valid"`
	Errors   []validationError          `json:"errors,omitempty"`
	Warnings []config.ValidationWarning `json:"warnings,omitempty"`
	Rules    int                        `json:"rules"`
}

type validationError struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

func (cmd *ConfigCmd) validate() validationReport {
	settings := cmd.flags.settings()
	var report validationReport

	if err := settings.ValidateDeep(cmd.flags.ConfigPath); err != nil {
		report.Errors = append(report.Errors, validationError{
			Category: "settings",
			Item:     cmd.flags.ConfigPath,
			Message:  err.Error(),
		})
	}

	set, err := loadRuleSet(settings)
	for _, e := range utils.FlattenErrors(err) {
		item := validationError{Category: "rules", Message: e.Error()}
		var defErr *rule.DefinitionError
		if errors.As(e, &defErr) {
			item.Item = defErr.Rule
			item.Message = defErr.Err.Error()
			if defErr.Source != "" {
				item.Item = fmt.Sprintf("%s (%s)", defErr.Rule, defErr.Source)
			}
		}
		report.Errors = append(report.Errors, item)
	}

	report.Warnings = settings.Warnings(set.Known())
	report.Rules = set.Len()
	report.Valid = len(report.Errors) == 0
	return report
}

func (cmd *ConfigCmd) runValidate(ctx context.Context, c *cli.Command) error {
	report := cmd.validate()

	if cmd.format == "json" {
		if err := writeJSON(c.Root().Writer, report); err != nil {
			return err
		}
		if !report.Valid {
			return cli.Exit("", 1)
		}
		return nil
	}

	p := printer.Ctx(ctx)

	for _, warn := range report.Warnings {
		p.Warnf("%s: %s %s", warn.Category, warn.Item, warn.Message)
	}

	for _, e := range report.Errors {
		p.Errorf("%s: %s", e.Category, e.Message)
		if e.Item != "" {
			p.Printf("  Item: %s", e.Item)
		}
	}

	p.Printf("")
	if report.Valid {
		p.Successf("Configuration is valid (%d rules enabled)", report.Rules)
		return nil
	}

	p.Errorf("%d error(s) found", len(report.Errors))
	return cli.Exit("", 1)
}
