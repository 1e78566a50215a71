package commands

import (
	"context"
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"
)

// RuleNameCompleter returns a ShellCompleteFunc that suggests the names of all
// known rules, built-in and user defined, as positional completions. Names
// already on the command line are skipped.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func RuleNameCompleter(flags *Flags) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		args := cmd.Args().Slice()
		if len(args) > 0 {
			last := args[len(args)-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		set, _ := loadRuleSet(flags.settings())

		w := cmd.Root().Writer
		for _, name := range set.Known() {
			if slices.Contains(args, name) {
				continue
			}
			_, _ = fmt.Fprintln(w, name)
		}
	}
}
