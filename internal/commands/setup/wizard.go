// Package setup implements 'oops init': it writes a default settings file,
// creates the user rules directory and optionally hooks the shell function
// into the user's rc file.
package setup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"

	"github.com/colonyops/oops/internal/core/config"
	"github.com/colonyops/oops/internal/core/doctor"
	"github.com/colonyops/oops/internal/core/rules"
	"github.com/colonyops/oops/internal/core/shell"
	"github.com/colonyops/oops/internal/core/styles"
	"github.com/colonyops/oops/internal/printer"
)

// Options configures the wizard behavior.
type Options struct {
	ConfigPath string
	Yes        bool // skip prompts, use defaults
	Force      bool // overwrite existing config

	// Getenv resolves the shell; defaults to os.Getenv.
	Getenv func(string) string
	// Home is the directory holding the rc files; defaults to the user's home.
	Home string
}

// Answers are the choices the wizard collects.
type Answers struct {
	RequireConfirmation bool
	AlterHistory        bool
	Theme               string
	AliasName           string
	InstallAlias        bool
}

// DefaultAnswers returns the choices used with --yes.
func DefaultAnswers() Answers {
	defaults := config.DefaultSettings()
	return Answers{
		RequireConfirmation: defaults.RequireConfirmation,
		AlterHistory:        defaults.AlterHistory,
		Theme:               defaults.Theme,
		AliasName:           "fuck",
	}
}

// Wizard orchestrates the init process.
type Wizard struct {
	opts Options
}

// NewWizard creates a new init wizard.
func NewWizard(opts Options) *Wizard {
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	if opts.Home == "" {
		opts.Home, _ = os.UserHomeDir()
	}
	return &Wizard{opts: opts}
}

// Run executes the wizard.
func (w *Wizard) Run(ctx context.Context) error {
	p := printer.Ctx(ctx)

	if ConfigExists(w.opts.ConfigPath) && !w.opts.Force {
		if w.opts.Yes {
			return fmt.Errorf("config exists at %s; use --force to overwrite", w.opts.ConfigPath)
		}

		var overwrite bool
		err := huh.NewConfirm().
			Title("Settings file already exists").
			Description(w.opts.ConfigPath + "\nOverwrite? (a backup will be created)").
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			p.Infof("Init cancelled")
			return nil
		}
	}

	sh := shell.Detect(w.opts.Getenv)
	rcFile, rcErr := RCFile(sh, w.opts.Home)
	if rcErr != nil {
		p.Warnf("Could not detect your shell rc file: %v", rcErr)
	}

	answers := DefaultAnswers()
	if !w.opts.Yes {
		if err := w.promptUser(&answers, rcFile); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				p.Infof("Init cancelled")
				return nil
			}
			return err
		}
	}

	if ConfigExists(w.opts.ConfigPath) {
		backupPath, err := BackupConfig(w.opts.ConfigPath)
		if err != nil {
			return fmt.Errorf("backup config: %w", err)
		}
		if backupPath != "" {
			p.Successf("Backed up settings to: %s", backupPath)
		}
	}

	if err := WriteSettings(w.opts.ConfigPath, answers); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	p.Successf("Created settings: %s", w.opts.ConfigPath)

	settings, err := config.Load(w.opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load generated settings: %w", err)
	}

	written, err := WriteExampleRule(settings.RulesDir)
	if err != nil {
		return err
	}
	if written {
		p.Successf("Created example rule: %s", filepath.Join(settings.RulesDir, ExampleRuleFile))
	} else {
		p.Infof("Rules directory ready: %s", settings.RulesDir)
	}

	if answers.InstallAlias && rcFile != "" {
		changed, err := InstallAlias(rcFile, AliasLine(sh, answers.AliasName))
		switch {
		case err != nil:
			p.Warnf("Failed to setup shell alias: %v", err)
		case changed:
			p.Successf("Added alias to %s", rcFile)
		default:
			p.Infof("Alias already configured in %s", rcFile)
		}
	}

	p.Printf("")
	checks := []doctor.Check{
		doctor.NewConfigCheck(w.opts.ConfigPath, settings),
		doctor.NewRulesCheck(rules.Builtin(rules.Options{}), settings, false),
	}
	for _, result := range doctor.RunAll(ctx, checks) {
		p.Section(result.Name)
		for _, item := range result.Items {
			switch item.Status {
			case doctor.StatusPass:
				p.CheckItem(item.Label, item.Detail)
			case doctor.StatusWarn:
				p.WarnItem(item.Label, item.Detail)
			case doctor.StatusFail:
				p.FailItem(item.Label, item.Detail)
			}
		}
	}

	w.printNextSteps(p, sh, answers, rcFile)

	return nil
}

func (w *Wizard) promptUser(a *Answers, rcFile string) error {
	themes := make([]huh.Option[string], 0, len(styles.ThemeNames()))
	for _, name := range styles.ThemeNames() {
		themes = append(themes, huh.NewOption(name, name))
	}

	a.InstallAlias = rcFile != ""

	fields := []huh.Field{
		huh.NewConfirm().
			Title("Confirm corrections before running them?").
			Description("Shows a selector; otherwise the first correction runs immediately").
			Value(&a.RequireConfirmation),
		huh.NewConfirm().
			Title("Add corrected commands to shell history?").
			Value(&a.AlterHistory),
		huh.NewSelect[string]().
			Title("Color theme").
			Options(themes...).
			Value(&a.Theme),
		huh.NewInput().
			Title("Alias name").
			Description("The shell function you type after a failed command").
			Value(&a.AliasName),
	}

	if rcFile != "" {
		fields = append(fields,
			huh.NewConfirm().
				Title("Load the alias from "+rcFile+"?").
				Value(&a.InstallAlias),
		)
	}

	return huh.NewForm(huh.NewGroup(fields...)).Run()
}

func (w *Wizard) printNextSteps(p *printer.Printer, sh shell.Shell, a Answers, rcFile string) {
	p.Printf("")
	p.Section("Next Steps")

	step := 1
	if a.InstallAlias && rcFile != "" {
		p.Printf("  %d. Run 'source %s' or restart your shell", step, rcFile)
	} else {
		p.Printf("  %d. Add this line to your shell rc file: %s", step, AliasLine(sh, a.AliasName))
	}
	step++

	p.Printf("  %d. Run 'oops doctor' to check your setup", step)
	step++

	name := a.AliasName
	if name == "" {
		name = "fuck"
	}
	p.Printf("  %d. Type '%s' after a command fails", step, name)
}
