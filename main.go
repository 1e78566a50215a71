package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/oops/internal/commands"
	"github.com/colonyops/oops/internal/core/config"
	"github.com/colonyops/oops/internal/core/logging"
	"github.com/colonyops/oops/internal/core/styles"
	"github.com/colonyops/oops/internal/printer"
	"github.com/colonyops/oops/pkg/executil"
	"github.com/colonyops/oops/pkg/logutils"
	"github.com/colonyops/oops/pkg/utils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		logBuffer = &utils.DeferredWriter{}
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "oops",
		Usage:     "Correct the previous console command",
		UsageText: "oops [global options] [command [command options]] [-- failed command...]",
		Description: `oops looks at the command that just failed, re-runs it to capture its output
and proposes corrected commands ranked by likelihood.

Load the shell function with 'eval "$(oops alias)"' and type 'fuck' after a
command fails. Run 'oops init' to create a settings file.`,
		Version:               build(),
		EnableShellCompletion: true,
		Writer:                os.Stdout,
		ErrWriter:             os.Stderr,
		// Exit codes are mapped in main so the After hook always runs.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("OOPS_LOG_LEVEL"),
				Value:       "warn",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "append JSON logs to this file instead of stderr",
				Sources:     cli.EnvVars("OOPS_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to settings file",
				Sources:     cli.EnvVars("OOPS_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "rules-dir",
				Usage:       "directory holding user rule files (overrides rules_dir)",
				Destination: &flags.RulesDir,
			},
			&cli.BoolFlag{
				Name:        "debug",
				Usage:       "enable debug logging and show rule names",
				Destination: &flags.Debug,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			settings, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load settings: %w", err)
			}
			if flags.RulesDir != "" {
				settings.RulesDir = flags.RulesDir
			}
			if flags.Debug {
				settings.Debug = true
			}
			flags.Settings = settings

			level := flags.LogLevel
			if settings.Debug {
				level = "debug"
			}

			// Console logs are held back until After so they never
			// interleave with the selector.
			logger, closer, err := logutils.New(level, flags.LogFile, logBuffer)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})
			logCloser = closer

			// Apply configured theme (validation ensures name is valid)
			if settings.NoColors || os.Getenv("NO_COLOR") != "" {
				styles.Disable()
			} else if palette, ok := styles.GetPalette(settings.Theme); ok {
				styles.SetTheme(palette)
			} else {
				log.Warn().Str("theme", settings.Theme).Msg("unknown theme, using default")
			}

			return printer.NewContext(ctx, printer.New(os.Stderr)), nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			_ = logBuffer.Flush(os.Stderr)

			// Close log file
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	app = commands.NewFixCmd(flags, &executil.RealExecutor{}).Register(app)
	app = commands.NewSuggestCmd(flags).Register(app)
	app = commands.NewAliasCmd(flags).Register(app)
	app = commands.NewRulesCmd(flags).Register(app)
	app = commands.NewConfigCmd(flags).Register(app)
	app = commands.NewDoctorCmd(flags).Register(app)
	app = commands.NewInitCmd(flags).Register(app)
	app = commands.NewDocCmd(flags).Register(app)

	// stdout is evaluated by the shell alias; errors go to stderr only.
	exitCode := 0
	if err := app.Run(ctx, os.Args); err != nil {
		exitCode = 1

		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		if msg := err.Error(); msg != "" {
			_, _ = fmt.Fprintln(os.Stderr, msg)
		}
	}

	os.Exit(exitCode)
}
