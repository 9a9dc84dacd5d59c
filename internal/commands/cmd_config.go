package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/gim/internal/core/config"
	"github.com/hay-kot/gim/internal/printer"
)

type ConfigCmd struct {
	flags      *Flags
	linesLimit int
	show       bool
}

// NewConfigCmd creates a new config command
func NewConfigCmd(flags *Flags) *ConfigCmd {
	return &ConfigCmd{flags: flags}
}

// Register adds the config command to the application
func (cmd *ConfigCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "config",
		Usage:     "Show or change user settings",
		UsageText: "gim config [--lines-limit n] [--show]",
		Description: `Changes the user settings stored in the config file.

--lines-limit sets how many lines of collected changes are sent before gim
refuses to run. --show prints the config file with the API key masked.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "lines-limit",
				Usage:       "maximum number of changed lines to send",
				Destination: &cmd.linesLimit,
			},
			&cli.BoolFlag{
				Name:        "show",
				Usage:       "print the current configuration",
				Destination: &cmd.show,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ConfigCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	if !c.IsSet("lines-limit") && !cmd.show {
		return fmt.Errorf("nothing to do; use --lines-limit or --show")
	}

	if c.IsSet("lines-limit") {
		if cmd.linesLimit < 1 {
			return fmt.Errorf("lines limit must be at least 1, got %d", cmd.linesLimit)
		}

		cfg, err := cmd.flags.Store.Update(func(cfg *config.Config) error {
			cfg.User.LinesLimit = cmd.linesLimit
			return nil
		})
		if err != nil {
			return fmt.Errorf("save lines limit: %w", err)
		}
		cmd.flags.Config = cfg
		p.Successf("Lines limit set to %d", cfg.User.LinesLimit)
	}

	if cmd.show {
		masked := *cmd.flags.Config
		masked.AI.APIKey = masked.AI.MaskedKey()

		data, err := cmd.flags.Store.Encode(&masked)
		if err != nil {
			return fmt.Errorf("encode config: %w", err)
		}

		p.Header(cmd.flags.Store.Path())
		_, _ = fmt.Fprint(c.Root().Writer, string(data))
	}

	return nil
}
