package gim

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse is returned when a chat stage answers with blank text.
var ErrEmptyResponse = errors.New("chat endpoint returned an empty message")

// SizeExceededError is returned when the assembled diff has more lines than
// user.lines_limit allows. No chat request is made.
type SizeExceededError struct {
	Lines int
	Limit int
	// Staged is set when auto-add staged files before the limit was hit.
	Staged bool
}

func (e *SizeExceededError) Error() string {
	msg := fmt.Sprintf("diff has %d lines, over the limit of %d (raise it with 'gim config --lines-limit')", e.Lines, e.Limit)
	if e.Staged {
		msg += "; changes remain staged"
	}
	return msg
}

// StageError wraps any failure of a chat stage, transport errors included.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
