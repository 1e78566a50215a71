package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/oops/internal/core/styles"
)

type DocCmd struct {
	flags *Flags
	raw   bool
}

func NewDocCmd(flags *Flags) *DocCmd {
	return &DocCmd{flags: flags}
}

func (cmd *DocCmd) Register(app *cli.Command) *cli.Command {
	rawFlag := &cli.BoolFlag{
		Name:        "raw",
		Usage:       "print markdown source instead of rendering it",
		Destination: &cmd.raw,
	}

	app.Commands = append(app.Commands, &cli.Command{
		Name:  "doc",
		Usage: "Documentation for settings and rule files",
		Description: `Prints reference documentation for oops.

Use 'oops doc rules' to learn how to write your own rule files.
Use 'oops doc settings' to see every settings option.`,
		Commands: []*cli.Command{
			{
				Name:   "rules",
				Usage:  "Show the rule file format",
				Flags:  []cli.Flag{rawFlag},
				Action: cmd.guide(ruleFilesGuide),
			},
			{
				Name:   "settings",
				Usage:  "Show every settings option",
				Flags:  []cli.Flag{rawFlag},
				Action: cmd.guide(settingsGuide),
			},
		},
	})
	return app
}

func (cmd *DocCmd) guide(md string) cli.ActionFunc {
	return func(_ context.Context, c *cli.Command) error {
		return writeMarkdown(c.Root().Writer, md, cmd.raw)
	}
}

// writeMarkdown renders md through glamour when w is a terminal, otherwise it
// writes the source unchanged.
func writeMarkdown(w io.Writer, md string, raw bool) error {
	f, ok := w.(*os.File)
	if raw || !ok || !term.IsTerminal(int(f.Fd())) {
		_, err := fmt.Fprint(w, md)
		return err
	}

	rendered, err := styles.RenderMarkdown(md, terminalWidth(w))
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = fmt.Fprint(w, rendered)
	return err
}

const ruleFilesGuide = `# Rule Files

Every ` + "`.yaml`" + ` or ` + "`.yml`" + ` file below the rules directory
(` + "`rules_dir`" + `, default ` + "`~/.config/oops/rules`" + `) defines one rule.
Files are loaded in path order, after the built-in rules.

## Fields

| Field | Required | Default | Description |
|-------|----------|---------|-------------|
| ` + "`name`" + ` | no | file name | Unique rule name |
| ` + "`enabled`" + ` | no | ` + "`true`" + ` | ` + "`false`" + ` keeps the rule off unless listed in ` + "`rules`" + ` |
| ` + "`priority`" + ` | no | ` + "`1000`" + ` | Lower values run and rank first |
| ` + "`match_script`" + ` | yes | | Regular expression the failed command must match |
| ` + "`match_output`" + ` | no | | Regular expression the captured output must match |
| ` + "`new_command`" + ` | one of | | Literal replacement command |
| ` + "`new_command_pattern`" + ` | one of | | Replacement with capture references |
| ` + "`requires_output`" + ` | no | ` + "`true`" + ` | Skip the rule when no output was captured |

Exactly one of ` + "`new_command`" + ` and ` + "`new_command_pattern`" + ` must be set.

## Capture references

` + "`new_command_pattern`" + ` replaces the first match of ` + "`match_script`" + `.
Use ` + "`$1`" + ` or ` + "`${1}`" + ` for numbered groups, ` + "`$name`" + ` or
` + "`${name}`" + ` for named groups and ` + "`$$`" + ` for a literal dollar sign.

## Example

` + "```yaml" + `
name: checkout_new_branch
priority: 900
match_script: '^git checkout (?P<branch>\S+)$'
match_output: "did not match any file"
new_command_pattern: 'git checkout -b ${branch}'
` + "```" + `

Run ` + "`oops config validate`" + ` to check your rules and
` + "`oops rules`" + ` to see where they rank.
`

const settingsGuide = `# Settings

Settings live in ` + "`~/.config/oops/settings.yaml`" + `. Every option can be
overridden with an ` + "`OOPS_`" + ` environment variable; list values are colon
separated and ` + "`OOPS_PRIORITY`" + ` takes ` + "`rule=10:other=20`" + `.

| Option | Default | Description |
|--------|---------|-------------|
| ` + "`rules`" + ` | ` + "`[ALL]`" + ` | Enabled rules; ` + "`ALL`" + ` (or ` + "`DEFAULT_RULES`" + `) enables every rule that is on by default |
| ` + "`exclude_rules`" + ` | ` + "`[]`" + ` | Rules that never run |
| ` + "`priority`" + ` | ` + "`{}`" + ` | Per-rule priority overrides |
| ` + "`require_confirmation`" + ` | ` + "`true`" + ` | Show the selector before printing a correction |
| ` + "`wait_command`" + ` | ` + "`3`" + ` | Seconds to wait when re-running the failed command; 0 waits forever |
| ` + "`wait_slow_command`" + ` | ` + "`15`" + ` | Timeout for commands listed in ` + "`slow_commands`" + ` |
| ` + "`slow_commands`" + ` | lein, gradle, ... | Programs that get the slow timeout |
| ` + "`no_colors`" + ` | ` + "`false`" + ` | Disable colored output |
| ` + "`theme`" + ` | ` + "`tokyo-night`" + ` | Color theme |
| ` + "`debug`" + ` | ` + "`false`" + ` | Debug logging and rule names in the selector |
| ` + "`num_close_matches`" + ` | ` + "`3`" + ` | Suggestions offered by ` + "`no_command`" + ` |
| ` + "`excluded_search_path_prefixes`" + ` | ` + "`[]`" + ` | PATH entries ignored when looking for commands |
| ` + "`env`" + ` | ` + "`LC_ALL=C ...`" + ` | Extra environment for re-running the failed command |
| ` + "`alter_history`" + ` | ` + "`true`" + ` | Push the corrected command into shell history |
| ` + "`rules_dir`" + ` | ` + "`<config dir>/rules`" + ` | Directory holding user rule files |
`
