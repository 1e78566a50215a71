package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/oops/internal/core/shell"
)

type AliasCmd struct {
	flags  *Flags
	getenv func(string) string

	// flags
	shell  string
	binary string
}

// NewAliasCmd creates a new alias command.
func NewAliasCmd(flags *Flags) *AliasCmd {
	return &AliasCmd{flags: flags, getenv: os.Getenv}
}

// Register adds the alias command to the application.
func (cmd *AliasCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "alias",
		Usage:     "Print the shell function that wires oops into your shell",
		UsageText: "oops alias [--shell SHELL] [NAME]",
		Description: `Prints a shell function named NAME (default "fuck") that hands the previous
command to oops and evaluates the correction it prints.

Add it to your shell rc file:

  eval "$(oops alias)"           # bash, zsh, sh
  oops alias | source            # fish
  iex "$(oops alias)"            # powershell`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "shell",
				Usage:       "shell dialect (bash, zsh, fish, sh, powershell); detected when empty",
				Destination: &cmd.shell,
			},
			&cli.StringFlag{
				Name:        "binary",
				Usage:       "oops executable the function calls",
				Value:       "oops",
				Destination: &cmd.binary,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *AliasCmd) run(_ context.Context, c *cli.Command) error {
	sh := shell.Detect(cmd.getenv)
	if cmd.shell != "" {
		sh = shell.Parse(cmd.shell)
	}

	out, err := sh.Alias(shell.AliasData{
		Name:         c.Args().First(),
		Binary:       cmd.binary,
		AlterHistory: cmd.flags.settings().AlterHistory,
	})
	if err != nil {
		return fmt.Errorf("%w; pass --shell", err)
	}

	_, err = fmt.Fprint(c.Root().Writer, out)
	return err
}
