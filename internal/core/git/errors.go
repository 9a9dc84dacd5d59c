package git

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hay-kot/gim/pkg/executil"
)

// ErrNotRepository indicates the target directory is not inside a git working tree.
var ErrNotRepository = errors.New("not a git repository")

// ProcessError represents a failed subprocess invocation. It captures the
// tool, its arguments and the diagnostic output the tool printed.
type ProcessError struct {
	Tool   string
	Args   []string
	Output string
	Err    error
}

// Error implements the error interface with the tool's diagnostic output.
func (e *ProcessError) Error() string {
	op := e.Tool
	if len(e.Args) > 0 {
		op = fmt.Sprintf("%s %s", e.Tool, e.Args[0])
	}
	msg := fmt.Sprintf("%s failed", op)
	if e.Output != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Output)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *ProcessError) Unwrap() error {
	return e.Err
}

// NewProcessError wraps err from running tool with args. The tool's stderr is
// lifted out of an *executil.ExitError when present.
func NewProcessError(tool string, args []string, err error) *ProcessError {
	pe := &ProcessError{Tool: tool, Args: args, Err: err}

	var exitErr *executil.ExitError
	if errors.As(err, &exitErr) {
		pe.Output = strings.TrimSpace(exitErr.Stderr)
		pe.Err = exitErr.Err
	}
	return pe
}
