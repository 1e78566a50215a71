package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/oops/internal/core/registry"
	"github.com/colonyops/oops/internal/core/rule"
	"github.com/colonyops/oops/internal/core/styles"
)

type RulesCmd struct {
	flags *Flags

	// flags
	format string
	all    bool
}

// NewRulesCmd creates a new rules command.
func NewRulesCmd(flags *Flags) *RulesCmd {
	return &RulesCmd{flags: flags}
}

// Register adds the rules command to the application.
func (cmd *RulesCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "rules",
		Usage:     "List the effective rule set",
		UsageText: "oops rules [--format text|json|markdown] [--all] [NAME...]",
		Description: `Lists the enabled rules in evaluation order with their effective priority,
source and whether they need captured output. Pass rule names to show only
those rules.

The default format is markdown on a terminal and text otherwise.`,
		ShellComplete: RuleNameCompleter(cmd.flags),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json, markdown)",
				Destination: &cmd.format,
			},
			&cli.BoolFlag{
				Name:        "all",
				Usage:       "include disabled rules",
				Destination: &cmd.all,
			},
		},
		Action: cmd.run,
	})

	return app
}

// ruleInfo is the JSON output format for oops rules.
type ruleInfo struct {
	Name           string `json:"name"`
	Priority       int    `json:"priority"`
	Source         string `json:"source"`
	RequiresOutput bool   `json:"requires_output"`
	Enabled        bool   `json:"enabled"`
	Description    string `json:"description,omitempty"`
}

func newRuleInfo(e registry.Entry, enabled bool) ruleInfo {
	source := e.Source
	if e.Builtin {
		source = "builtin"
	}
	return ruleInfo{
		Name:           e.Name(),
		Priority:       e.Priority,
		Source:         source,
		RequiresOutput: e.Rule.RequiresOutput(),
		Enabled:        enabled,
		Description:    rule.Describe(e.Rule),
	}
}

func (cmd *RulesCmd) run(_ context.Context, c *cli.Command) error {
	set, err := loadRuleSet(cmd.flags.settings())
	if err != nil {
		log.Warn().Err(err).Msg("some user rules were skipped")
	}

	infos := make([]ruleInfo, 0, set.Len())
	for _, e := range set.Entries() {
		infos = append(infos, newRuleInfo(e, true))
	}
	if cmd.all {
		for _, e := range set.Disabled() {
			infos = append(infos, newRuleInfo(e, false))
		}
	}
	if names := c.Args().Slice(); len(names) > 0 {
		infos = slices.DeleteFunc(infos, func(r ruleInfo) bool {
			return !slices.Contains(names, r.Name)
		})
	}

	out := c.Root().Writer

	format := cmd.format
	if format == "" {
		format = "text"
		if isTerminal(out) {
			format = "markdown"
		}
	}

	switch format {
	case "json":
		return writeJSON(out, infos)
	case "markdown":
		rendered, err := styles.RenderMarkdown(rulesMarkdown(infos), terminalWidth(out))
		if err != nil {
			return fmt.Errorf("render rules: %w", err)
		}
		_, err = fmt.Fprint(out, rendered)
		return err
	case "text":
		return writeRulesText(out, infos)
	default:
		return fmt.Errorf("unknown format %q (want text, json or markdown)", format)
	}
}

func writeRulesText(out io.Writer, infos []ruleInfo) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tPRIORITY\tSOURCE\tOUTPUT\tENABLED")
	for _, r := range infos {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", r.Name, r.Priority, r.Source, yesNo(r.RequiresOutput), yesNo(r.Enabled))
	}
	return w.Flush()
}

func rulesMarkdown(infos []ruleInfo) string {
	var b strings.Builder
	b.WriteString("# Rules\n\n")
	b.WriteString("| Rule | Priority | Source | Needs output | Enabled | Description |\n")
	b.WriteString("|------|---------:|--------|--------------|---------|-------------|\n")
	for _, r := range infos {
		fmt.Fprintf(&b, "| `%s` | %d | %s | %s | %s | %s |\n",
			r.Name, r.Priority, r.Source, yesNo(r.RequiresOutput), yesNo(r.Enabled),
			strings.ReplaceAll(r.Description, "|", `\|`))
	}
	return b.String()
}

func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return 100
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
