package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/oops/internal/core/capture"
	"github.com/colonyops/oops/internal/core/command"
	"github.com/colonyops/oops/internal/core/logging"
	"github.com/colonyops/oops/internal/core/rule"
	"github.com/colonyops/oops/internal/core/shell"
	"github.com/colonyops/oops/internal/printer"
	"github.com/colonyops/oops/internal/tui"
	"github.com/colonyops/oops/pkg/executil"
)

// FixCmd corrects the previous command. It is the root action: the shell
// alias runs it and evaluates whatever it prints on stdout.
type FixCmd struct {
	flags *Flags
	exec  executil.Executor

	getenv   func(string) string
	isTTY    func() bool
	selectFn func(context.Context, []rule.CorrectedCommand, tui.Options) (rule.CorrectedCommand, error)

	// flags
	forceCommand string
	yes          bool
}

// NewFixCmd creates the fix command.
func NewFixCmd(flags *Flags, exec executil.Executor) *FixCmd {
	return &FixCmd{
		flags:    flags,
		exec:     exec,
		getenv:   os.Getenv,
		isTTY:    func() bool { return term.IsTerminal(int(os.Stderr.Fd())) },
		selectFn: tui.Select,
	}
}

// Flags returns the flags the fix command adds to the root command.
func (cmd *FixCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "force-command",
			Usage:       "correct this command instead of the last one in history",
			Local:       true,
			Destination: &cmd.forceCommand,
		},
		&cli.BoolFlag{
			Name:        "yes",
			Aliases:     []string{"y"},
			Usage:       "print the first correction without confirmation",
			Sources:     cli.EnvVars("OOPS_YES"),
			Local:       true,
			Destination: &cmd.yes,
		},
	}
}

// Register installs the fix command as the root action.
func (cmd *FixCmd) Register(app *cli.Command) *cli.Command {
	app.Flags = append(app.Flags, cmd.Flags()...)
	app.Action = cmd.Run
	return app
}

// Run corrects the previous command and prints the chosen script on stdout.
func (cmd *FixCmd) Run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)
	settings := cmd.flags.settings()

	script := cmd.script(c.Args().Slice())
	if script == "" {
		p.Errorf("no previous command to correct")
		return cli.Exit("", 1)
	}

	sh := shell.Detect(cmd.getenv)
	ctx = logging.WithScript(ctx, script)
	ctx = logging.WithShell(ctx, sh.String())
	log.Debug().Ctx(ctx).Msg("correcting")

	output, err := capture.Output(ctx, cmd.exec, settings, sh, script)
	if err != nil {
		log.Warn().Ctx(ctx).Err(err).Msg("could not capture output, continuing without it")
	}

	res := correct(ctx, settings, command.New(script, output, sh))
	for _, w := range res.Warnings {
		p.Warnf("%v", w)
	}

	if len(res.Corrections) == 0 {
		p.Errorf("no corrections found")
		return cli.Exit("", 1)
	}

	chosen := res.Corrections[0]
	if settings.RequireConfirmation && !cmd.yes && cmd.isTTY() {
		chosen, err = cmd.selectFn(ctx, res.Corrections, tui.Options{ShowRule: settings.Debug})
		if err != nil {
			if errors.Is(err, tui.ErrAborted) {
				p.Errorf("aborted")
				return cli.Exit("", 1)
			}
			return err
		}
	}

	_, err = fmt.Fprintln(c.Root().Writer, chosen.Script)
	return err
}

// script resolves the command to correct: positional arguments, then
// --force-command, then the history handed over by the alias.
func (cmd *FixCmd) script(args []string) string {
	if len(args) > 0 {
		return strings.TrimSpace(strings.Join(args, " "))
	}
	if cmd.forceCommand != "" {
		return strings.TrimSpace(cmd.forceCommand)
	}
	return shell.LastCommand(cmd.getenv("OOPS_HISTORY"), cmd.getenv("OOPS_ALIAS"))
}
