package reminder

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/hay-kot/gim/internal/updatecheck"
	"github.com/hay-kot/gim/pkg/logutils"
	"github.com/rs/zerolog"
)

// Checker reports a newer release, or nil when the running version is current.
type Checker interface {
	Check(ctx context.Context) (*updatecheck.Result, error)
}

// Store persists the throttle state.
type Store interface {
	LoadState() (State, error)
	SaveState(State) error
}

// Options configures a Reminder.
type Options struct {
	// Out receives the advisory notice.
	Out io.Writer
	// VerboseOut receives the -v side channel; nil discards it.
	VerboseOut io.Writer
	Verbose    bool
	// Now overrides the clock in tests.
	Now func() time.Time
}

// Reminder runs the passive update notice.
type Reminder struct {
	store   Store
	checker Checker
	out     io.Writer
	vlog    zerolog.Logger
	now     func() time.Time
}

// New creates a Reminder.
func New(store Store, checker Checker, opts Options) *Reminder {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	verboseOut := opts.VerboseOut
	if verboseOut == nil {
		verboseOut = io.Discard
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Reminder{
		store:   store,
		checker: checker,
		out:     out,
		vlog:    logutils.NewVerbose(opts.Verbose, verboseOut),
		now:     now,
	}
}

// Run prints the advisory when a check is due and a newer release exists,
// then uses up one try. Every failure is reported on the verbose channel
// only, and a failed lookup leaves the state untouched. It returns true
// when the advisory was printed.
func (r *Reminder) Run(ctx context.Context) bool {
	state, err := r.store.LoadState()
	if err != nil {
		r.vlog.Info().Msgf("update reminder: load state: %v", err)
		return false
	}
	r.vlog.Info().Msgf("checking for a new version: %s", state)

	now := r.now()
	due := state.ShouldCheck(now)
	r.vlog.Info().Msgf("update reminder due: %t", due)
	if !due {
		return false
	}

	result, err := r.checker.Check(ctx)
	if err != nil {
		r.vlog.Info().Msgf("update reminder: version check failed: %v", err)
		return false
	}
	r.vlog.Info().Msgf("newer version published: %t", result != nil)
	if result == nil {
		return false
	}

	_, _ = fmt.Fprintf(r.out, "A new version is available (%s -> %s). Run 'gim update' to upgrade.\n",
		result.Current, result.Latest)

	state.Advance(now)
	if err := r.store.SaveState(state); err != nil {
		r.vlog.Info().Msgf("update reminder: save state: %v", err)
	}
	return true
}

// MarkChecked restarts the window after an explicit user-requested check,
// whatever that check's outcome.
func (r *Reminder) MarkChecked() error {
	state, err := r.store.LoadState()
	if err != nil {
		return fmt.Errorf("load reminder state: %w", err)
	}

	state.Reset(r.now())
	if err := r.store.SaveState(state); err != nil {
		return fmt.Errorf("save reminder state: %w", err)
	}
	return nil
}
