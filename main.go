package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/gim/internal/commands"
	"github.com/hay-kot/gim/internal/core/config"
	"github.com/hay-kot/gim/internal/printer"
	"github.com/hay-kot/gim/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, ldflags aren't set
	// and build() reads runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

// releaseVersion returns the module version the binary was built from,
// "dev" for local builds.
func releaseVersion() string {
	if version != "dev" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if mv := info.Main.Version; mv != "" && mv != "(devel)" {
			return mv
		}
	}
	return version
}

func build() string {
	v, c, d := releaseVersion(), commit, date

	// When installed via `go install module@version`, ldflags aren't set.
	// Fall back to the VCS metadata Go records in the build info.
	if version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
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

	var logCloser func()

	flags := &commands.Flags{Version: releaseVersion()}

	app := &cli.Command{
		Name:      "gim",
		Usage:     "Write commit messages with an AI model",
		UsageText: "gim [global options] [command [command options]]",
		Description: `gim collects your staged changes, asks a chat model to summarize them and
commits with the generated subject and body.

Run 'gim' to commit the staged changes, 'gim -a' to stage everything first or
'gim -A' to rewrite the message of the last commit.
Run 'gim ai --model <model> --apikey <key>' once to configure the model.`,
		Version:               build(),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("GIM_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file",
				Sources:     cli.EnvVars("GIM_LOG_FILE"),
				Value:       commands.DefaultLogFile(),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file (.toml, or .yaml/.yml)",
				Sources:     cli.EnvVars("GIM_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			flags.Store = config.NewStore(flags.ConfigPath)
			cfg, err := flags.Store.Load()
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			log.Debug().Str("config", flags.ConfigPath).Str("version", flags.Version).Msg("gim starting")

			return printer.NewContext(ctx, printer.New(c.Root().ErrWriter)), nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	app = commands.NewCommitCmd(flags).Register(app)
	app = commands.NewAICmd(flags).Register(app)
	app = commands.NewConfigCmd(flags).Register(app)
	app = commands.NewPromptCmd(flags).Register(app)
	app = commands.NewUpdateCmd(flags).Register(app)
	app = commands.NewDoctorCmd(flags).Register(app)

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		_, _ = fmt.Fprintln(os.Stderr, runErr.Error())
		exitCode = 1

		var outcomeErr *commands.OutcomeError
		if errors.As(runErr, &outcomeErr) {
			exitCode = outcomeErr.Outcome.ExitCode()
		}
	}

	os.Exit(exitCode)
}
