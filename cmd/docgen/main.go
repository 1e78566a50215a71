// Command docgen generates CLI reference documentation from the oops command
// definitions. Output is written to docs/cli-reference.md.
package main

import (
	"fmt"
	"os"

	docs "github.com/urfave/cli-docs/v3"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/oops/internal/commands"
	"github.com/colonyops/oops/pkg/executil"
)

func main() {
	flags := &commands.Flags{}

	root := &cli.Command{
		Name:      "oops",
		Usage:     "Correct the previous console command",
		UsageText: "oops [global options] [command [command options]] [-- failed command...]",
		Description: `oops looks at the command that just failed, re-runs it to capture its output
and proposes corrected commands ranked by likelihood.

Load the shell function with 'eval "$(oops alias)"' and type 'fuck' after a
command fails. Run 'oops init' to create a settings file.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error, fatal, panic)",
				Sources: cli.EnvVars("OOPS_LOG_LEVEL"),
				Value:   "warn",
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "append JSON logs to this file instead of stderr",
				Sources: cli.EnvVars("OOPS_LOG_FILE"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to settings file",
				Sources: cli.EnvVars("OOPS_CONFIG"),
				Value:   "~/.config/oops/settings.yaml",
			},
			&cli.StringFlag{
				Name:  "rules-dir",
				Usage: "directory holding user rule files (overrides rules_dir)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging and show rule names",
			},
		},
	}

	root = commands.NewFixCmd(flags, &executil.RealExecutor{}).Register(root)
	root = commands.NewSuggestCmd(flags).Register(root)
	root = commands.NewAliasCmd(flags).Register(root)
	root = commands.NewRulesCmd(flags).Register(root)
	root = commands.NewConfigCmd(flags).Register(root)
	root = commands.NewDoctorCmd(flags).Register(root)
	root = commands.NewInitCmd(flags).Register(root)
	root = commands.NewDocCmd(flags).Register(root)

	md, err := docs.ToMarkdown(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error generating docs: %v\n", err)
		os.Exit(1)
	}

	outPath := "docs/cli-reference.md"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	if err := os.WriteFile(outPath, []byte(md), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s\n", outPath)
}
