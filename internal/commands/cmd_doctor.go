package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/oops/internal/core/doctor"
	"github.com/colonyops/oops/internal/core/styles"
)

type DoctorCmd struct {
	flags   *Flags
	getenv  func(string) string
	errOut  io.Writer
	format  string
	autofix bool
}

func NewDoctorCmd(flags *Flags) *DoctorCmd {
	return &DoctorCmd{flags: flags, getenv: os.Getenv, errOut: os.Stderr}
}

func (cmd *DoctorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "doctor",
		Usage:       "Run health checks on your oops setup",
		UsageText:   "oops doctor [options]",
		Description: "Runs diagnostic checks on the settings file, user rules and shell integration.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
			&cli.BoolFlag{
				Name:        "autofix",
				Usage:       "automatically fix issues (e.g., create a missing rules directory)",
				Destination: &cmd.autofix,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *DoctorCmd) checks() []doctor.Check {
	settings := cmd.flags.settings()
	return []doctor.Check{
		doctor.NewConfigCheck(cmd.flags.ConfigPath, settings),
		doctor.NewRulesCheck(builtinRules(settings), settings, cmd.autofix),
		doctor.NewShellCheck(cmd.getenv),
	}
}

func (cmd *DoctorCmd) run(ctx context.Context, c *cli.Command) error {
	results := doctor.RunAll(ctx, cmd.checks())

	if cmd.format == "json" {
		return cmd.outputJSON(c, results)
	}

	return cmd.outputText(results)
}

func (cmd *DoctorCmd) outputJSON(c *cli.Command, results []doctor.Result) error {
	counts := doctor.Tally(results)

	out := struct {
		Healthy bool            `json:"healthy"`
		Summary doctor.Counts   `json:"summary"`
		Checks  []doctor.Result `json:"checks"`
	}{
		Healthy: counts.Healthy(),
		Summary: counts,
		Checks:  results,
	}

	if err := writeJSON(c.Root().Writer, out); err != nil {
		return err
	}
	if !counts.Healthy() {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *DoctorCmd) outputText(results []doctor.Result) error {
	w := cmd.errOut
	divider := styles.DividerStyle.Render(strings.Repeat("─", 40))

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, styles.HeaderStyle.Render("Oops Doctor"))
	_, _ = fmt.Fprintln(w, divider)
	_, _ = fmt.Fprintln(w)

	for _, result := range results {
		_, _ = fmt.Fprintln(w, styles.HeaderStyle.Render(result.Name))

		for _, item := range result.Items {
			var detail string
			if item.Detail != "" {
				detail = " " + styles.MutedStyle.Render(item.Detail)
			}

			var icon string
			switch item.Status {
			case doctor.StatusPass:
				icon = styles.SuccessStyle.Render("✔")
			case doctor.StatusWarn:
				icon = styles.WarningStyle.Render("●")
			case doctor.StatusFail:
				icon = styles.ErrorStyle.Render("✘")
			}

			_, _ = fmt.Fprintf(w, "  %s %s%s\n", icon, item.Label, detail)
		}

		_, _ = fmt.Fprintln(w)
	}

	counts := doctor.Tally(results)
	summary := fmt.Sprintf("%s  %s  %s",
		styles.SuccessStyle.Render(fmt.Sprintf("%d passed", counts.Passed)),
		styles.WarningStyle.Render(fmt.Sprintf("%d warnings", counts.Warned)),
		styles.ErrorStyle.Render(fmt.Sprintf("%d failed", counts.Failed)),
	)
	_, _ = fmt.Fprintln(w, summary)

	if !cmd.autofix {
		if counts.Fixable > 0 {
			_, _ = fmt.Fprintln(w)
			hint := styles.MutedStyle.Render(fmt.Sprintf("Run 'oops doctor --autofix' to fix %d issue(s)", counts.Fixable))
			_, _ = fmt.Fprintln(w, hint)
		}
	}

	if !counts.Healthy() {
		return cli.Exit("", 1)
	}

	return nil
}
