package gim

import (
	"errors"

	"github.com/hay-kot/gim/internal/core/chat"
	"github.com/hay-kot/gim/internal/core/config"
)

// Outcome is the terminal state of one GenerateCommit call.
type Outcome int

const (
	Committed Outcome = iota
	SkippedNoChanges
	AbortedSizeExceeded
	AbortedConfigMissing
	AbortedChatError
	AbortedProcessError
)

func (o Outcome) String() string {
	switch o {
	case Committed:
		return "committed"
	case SkippedNoChanges:
		return "skipped: no changes"
	case AbortedSizeExceeded:
		return "aborted: diff too large"
	case AbortedConfigMissing:
		return "aborted: configuration missing"
	case AbortedChatError:
		return "aborted: chat error"
	case AbortedProcessError:
		return "aborted: process error"
	default:
		return "unknown"
	}
}

// ExitCode maps the outcome to a process exit status.
func (o Outcome) ExitCode() int {
	switch o {
	case Committed, SkippedNoChanges:
		return 0
	default:
		return 1
	}
}

// OutcomeOf classifies an error returned by a pipeline stage. A nil error
// is Committed.
func OutcomeOf(err error) Outcome {
	if err == nil {
		return Committed
	}

	var (
		sizeErr  *SizeExceededError
		stageErr *StageError
	)

	switch {
	case errors.As(err, &sizeErr):
		return AbortedSizeExceeded
	case errors.Is(err, config.ErrMissing), errors.Is(err, chat.ErrProviderUnresolved):
		return AbortedConfigMissing
	case errors.As(err, &stageErr):
		return AbortedChatError
	default:
		return AbortedProcessError
	}
}
