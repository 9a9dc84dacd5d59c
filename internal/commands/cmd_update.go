package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/gim/internal/core/reminder"
	"github.com/hay-kot/gim/internal/core/styles"
	"github.com/hay-kot/gim/internal/gim"
	"github.com/hay-kot/gim/internal/printer"
	"github.com/hay-kot/gim/internal/updatecheck"
	"github.com/hay-kot/gim/pkg/executil"
)

// upgrader is implemented by release sources gim can install from.
type upgrader interface {
	Upgrade(ctx context.Context, stdout, stderr io.Writer) error
}

type UpdateCmd struct {
	flags   *Flags
	install bool
	force   bool

	exec executil.Executor
}

// NewUpdateCmd creates a new update command
func NewUpdateCmd(flags *Flags) *UpdateCmd {
	return &UpdateCmd{flags: flags, exec: &executil.RealExecutor{}}
}

// Register adds the update command to the application
func (cmd *UpdateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "update",
		Usage:     "Check for a newer gim release",
		UsageText: "gim update [--install] [--force]",
		Description: `Looks up the latest release from the configured source (update.source,
"brew" or "github") and compares it with the running version.

Running this command restarts the update reminder window. --install upgrades
through Homebrew when a newer version exists; --force reinstalls even when the
running version is current.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "install",
				Aliases:     []string{"i"},
				Usage:       "upgrade with Homebrew when a newer version exists",
				Destination: &cmd.install,
			},
			&cli.BoolFlag{
				Name:        "force",
				Usage:       "upgrade even when already on the latest version",
				Destination: &cmd.force,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *UpdateCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	checker, err := newChecker(cmd.flags, cmd.exec)
	if err != nil {
		return err
	}
	rem := reminder.New(gim.NewReminderStore(cmd.flags.Store), checker, reminder.Options{})

	res, err := checker.Latest(ctx)
	cmd.markChecked(rem)

	switch {
	case errors.Is(err, updatecheck.ErrUnversioned):
		p.Infof("Running a development build (%s); nothing to compare", cmd.flags.Version)
		return nil
	case err != nil:
		return fmt.Errorf("check for updates: %w", err)
	}

	if res.Newer() {
		p.Infof("New version available: %s %s %s", res.Current, styles.IconArrow, res.Latest)
		if !cmd.install && !cmd.force {
			p.Printf("Run 'gim update --install' to upgrade.")
			return nil
		}
	} else {
		p.Successf("You're already on the latest version: %s", res.Current)
		if !cmd.force {
			p.Printf("Run with --force to reinstall anyway.")
			return nil
		}
	}

	up, ok := checker.Source().(upgrader)
	if !ok {
		return fmt.Errorf("%s releases cannot be installed by gim; download %s from https://github.com/%s/releases",
			checker.Source().Name(), res.Latest, updatecheck.DefaultRepository)
	}

	p.Infof("%s Upgrading via %s...", styles.IconUpgrade, checker.Source().Name())
	if err := up.Upgrade(ctx, c.Root().Writer, c.Root().ErrWriter); err != nil {
		return err
	}

	p.Successf("Upgraded to version %s", res.Latest)
	cmd.markChecked(rem)

	return nil
}

func (cmd *UpdateCmd) markChecked(rem *reminder.Reminder) {
	if err := rem.MarkChecked(); err != nil {
		log.Warn().Err(err).Msg("failed to reset update reminder")
	}
}
