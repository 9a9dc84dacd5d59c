package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/gim/internal/core/chat"
	"github.com/hay-kot/gim/internal/core/config"
	"github.com/hay-kot/gim/internal/core/git"
	"github.com/hay-kot/gim/internal/core/prompt"
	"github.com/hay-kot/gim/internal/core/reminder"
	"github.com/hay-kot/gim/internal/gim"
	"github.com/hay-kot/gim/internal/printer"
	"github.com/hay-kot/gim/internal/updatecheck"
	"github.com/hay-kot/gim/pkg/executil"
)

// OutcomeError reports a commit run that did not finish. main maps it to
// the process exit code.
type OutcomeError struct {
	Outcome gim.Outcome
	Err     error
}

func (e *OutcomeError) Error() string { return e.Err.Error() }
func (e *OutcomeError) Unwrap() error { return e.Err }

// CommitCmd is the root action: draft a commit message and commit.
type CommitCmd struct {
	flags   *Flags
	message string
	autoAdd bool
	amend   bool
	verbose bool

	exec executil.Executor
	http *http.Client
	dir  string
	wait gim.Waiter
}

// NewCommitCmd creates the root commit command
func NewCommitCmd(flags *Flags) *CommitCmd {
	return &CommitCmd{flags: flags, exec: &executil.RealExecutor{}}
}

// Flags returns the root-level flags of the commit action.
func (cmd *CommitCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "message",
			Aliases:     []string{"m"},
			Usage:       "use this commit subject and only generate the body",
			Destination: &cmd.message,
		},
		&cli.BoolFlag{
			Name:        "auto-add",
			Aliases:     []string{"a"},
			Usage:       "stage all changes, including untracked files, before committing",
			Destination: &cmd.autoAdd,
		},
		&cli.BoolFlag{
			Name:        "amend",
			Aliases:     []string{"A"},
			Usage:       "rewrite the message of the last commit from its changes",
			Destination: &cmd.amend,
		},
		&cli.BoolFlag{
			Name:        "verbose",
			Aliases:     []string{"v"},
			Usage:       "print the endpoint, prompts and responses to stderr",
			Destination: &cmd.verbose,
		},
	}
}

// versionFlag replaces the cli default, whose -v alias would shadow --verbose.
var versionFlag = &cli.BoolFlag{
	Name:        "version",
	Aliases:     []string{"V"},
	Usage:       "print the version",
	HideDefault: true,
	Local:       true,
}

// Register installs the commit flags and action on the root command. The
// version flag moves to -V so -v stays with --verbose.
func (cmd *CommitCmd) Register(app *cli.Command) *cli.Command {
	cli.VersionFlag = versionFlag
	app.Flags = append(app.Flags, cmd.Flags()...)
	app.Action = cmd.Run
	return app
}

// Run generates the commit message and commits.
func (cmd *CommitCmd) Run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() > 0 {
		return fmt.Errorf("unknown command %q. Run 'gim --help' for usage", c.Args().First())
	}

	p := printer.Ctx(ctx)

	dir := cmd.dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}
		dir = wd
	}

	out, errOut := c.Root().Writer, c.Root().ErrWriter
	if errOut == nil {
		errOut = os.Stderr
	}

	wait := cmd.wait
	if wait == nil {
		wait = spinnerWaiter()
	}

	gen := gim.NewGenerator(gim.Deps{
		Config:   cmd.flags.Config,
		Git:      git.NewExecutor("git", cmd.exec),
		Chat:     chat.NewClient(cmd.http, errOut),
		Prompts:  prompt.NewStore(cmd.flags.Store.Dir()),
		Reminder: newReminder(cmd.flags, cmd.exec, cmd.verbose, out, errOut),
		Wait:     wait,
		Dir:      dir,
		Out:      out,
		ErrOut:   errOut,
	})

	outcome, err := gen.GenerateCommit(ctx, gim.Options{
		Title:   cmd.message,
		AutoAdd: cmd.autoAdd,
		Amend:   cmd.amend,
		Verbose: cmd.verbose,
	})
	log.Debug().Str("outcome", outcome.String()).Msg("commit run finished")
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, config.ErrMissing):
		p.Warnf("Set the model and API key with 'gim ai --model <model> --apikey <key>'")
	case errors.Is(err, chat.ErrProviderUnresolved):
		p.Warnf("Set the endpoint with 'gim ai --url <url>'")
	}

	return &OutcomeError{Outcome: outcome, Err: err}
}

// newReminder wires the passive update notice. It returns nil when the
// configured release source is unusable.
func newReminder(flags *Flags, exec executil.Executor, verbose bool, out, verboseOut io.Writer) gim.Notifier {
	checker, err := newChecker(flags, exec)
	if err != nil {
		log.Warn().Err(err).Msg("update reminder disabled")
		return nil
	}

	return reminder.New(gim.NewReminderStore(flags.Store), checker, reminder.Options{
		Out:        out,
		VerboseOut: verboseOut,
		Verbose:    verbose,
	})
}

func newChecker(flags *Flags, exec executil.Executor) (*updatecheck.Checker, error) {
	source, err := updatecheck.NewSource(flags.Config.Update.Source, exec)
	if err != nil {
		return nil, err
	}
	return updatecheck.New(source, flags.Version), nil
}
