package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/oops/internal/commands/setup"
)

type InitCmd struct {
	flags *Flags
	yes   bool
	force bool
}

func NewInitCmd(flags *Flags) *InitCmd {
	return &InitCmd{flags: flags}
}

func (cmd *InitCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "init",
		Usage:     "Initialize oops configuration with an interactive wizard",
		UsageText: "oops init [options]",
		Description: `Sets up oops for first-time use with an interactive wizard.

The wizard will:
  - Generate ~/.config/oops/settings.yaml with sensible defaults
  - Create the user rules directory with a disabled example rule
  - Optionally load the shell function from your shell rc file

Use --yes to accept all defaults without prompts.
Use --force to overwrite existing configuration.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "accept defaults without prompting",
				Destination: &cmd.yes,
			},
			&cli.BoolFlag{
				Name:        "force",
				Aliases:     []string{"f"},
				Usage:       "overwrite existing configuration",
				Destination: &cmd.force,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *InitCmd) run(ctx context.Context, _ *cli.Command) error {
	wizard := setup.NewWizard(setup.Options{
		ConfigPath: cmd.flags.ConfigPath,
		Yes:        cmd.yes,
		Force:      cmd.force,
	})
	return wizard.Run(ctx)
}
