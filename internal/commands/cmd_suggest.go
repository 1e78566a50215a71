package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/oops/internal/core/command"
	"github.com/colonyops/oops/internal/core/logging"
	"github.com/colonyops/oops/internal/core/rule"
	"github.com/colonyops/oops/internal/core/shell"
	"github.com/colonyops/oops/internal/printer"
	"github.com/colonyops/oops/pkg/iojson"
)

// SuggestInput is the JSON document read by oops suggest.
type SuggestInput struct {
	Script string `json:"script"`
	Output string `json:"output"`
	Shell  string `json:"shell"`
}

// Validate checks the input for required fields.
func (in SuggestInput) Validate() error {
	if strings.TrimSpace(in.Script) == "" {
		return criterio.NewFieldErrors("script", fmt.Errorf("is required"))
	}
	return nil
}

type suggestOutput struct {
	Script      string                  `json:"script"`
	Corrections []rule.CorrectedCommand `json:"corrections"`
	Warnings    []string                `json:"warnings,omitempty"`
}

type SuggestCmd struct {
	flags *Flags
	input iojson.FileReader[SuggestInput]

	// flags
	format string
}

// NewSuggestCmd creates a new suggest command.
func NewSuggestCmd(flags *Flags) *SuggestCmd {
	return &SuggestCmd{flags: flags}
}

// Register adds the suggest command to the application.
func (cmd *SuggestCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "suggest",
		Usage:     "List every correction for a recorded command",
		UsageText: "oops suggest [--file input.json] [--format text|json]",
		Description: `Replays a failed command without re-running it and prints the full ranked
list of corrections.

Input is a JSON object read from --file or stdin:

  {"script": "git psuh", "output": "git: 'psuh' is not a git command...", "shell": "zsh"}

An omitted shell falls back to the detected one.`,
		Flags: []cli.Flag{
			cmd.input.Flag(),
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *SuggestCmd) run(ctx context.Context, c *cli.Command) error {
	in, err := cmd.input.Read()
	if err != nil {
		return err
	}
	if err := in.Validate(); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}

	return cmd.suggest(ctx, c, in)
}

func (cmd *SuggestCmd) suggest(ctx context.Context, c *cli.Command, in SuggestInput) error {
	sh := shell.Detect(os.Getenv)
	if in.Shell != "" {
		sh = shell.Parse(in.Shell)
	}

	ctx = logging.WithScript(ctx, in.Script)
	ctx = logging.WithShell(ctx, sh.String())
	res := correct(ctx, cmd.flags.settings(), command.New(in.Script, in.Output, sh))

	if cmd.format == "json" {
		out := suggestOutput{
			Script:      in.Script,
			Corrections: res.Corrections,
		}
		if out.Corrections == nil {
			out.Corrections = []rule.CorrectedCommand{}
		}
		for _, w := range res.Warnings {
			out.Warnings = append(out.Warnings, w.Error())
		}
		return iojson.WriteWith(c.Root().Writer, os.Stderr, out)
	}

	p := printer.Ctx(ctx)
	for _, w := range res.Warnings {
		p.Warnf("%v", w)
	}

	if len(res.Corrections) == 0 {
		p.Errorf("no corrections found")
		return cli.Exit("", 1)
	}

	for _, corr := range res.Corrections {
		if _, err := fmt.Fprintln(c.Root().Writer, corr.Script); err != nil {
			return err
		}
	}
	return nil
}
