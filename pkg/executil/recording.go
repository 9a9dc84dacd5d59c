package executil

import (
	"context"
	"io"
	"strings"
	"sync"
)

// RecordedCommand captures a command that was executed.
type RecordedCommand struct {
	Dir  string
	Cmd  string
	Args []string
}

// Line returns the command and its arguments joined by spaces.
func (r RecordedCommand) Line() string {
	return strings.TrimSpace(r.Cmd + " " + strings.Join(r.Args, " "))
}

// RecordingExecutor captures commands for testing.
//
// Outputs and Errors are keyed by a command-line prefix such as "git" or
// "git diff --cached --name-status". The longest matching key wins, so a
// test can give "git status" and "git diff" different answers.
type RecordingExecutor struct {
	mu       sync.Mutex
	Commands []RecordedCommand

	Outputs map[string][]byte
	Errors  map[string]error
}

// Run records the command and returns configured output/error.
func (e *RecordingExecutor) Run(_ context.Context, cmd string, args ...string) ([]byte, error) {
	return e.record("", cmd, args...)
}

// RunDir records the command with directory and returns configured output/error.
func (e *RecordingExecutor) RunDir(_ context.Context, dir, cmd string, args ...string) ([]byte, error) {
	return e.record(dir, cmd, args...)
}

// RunStream records the command and writes the configured output to stdout.
func (e *RecordingExecutor) RunStream(_ context.Context, stdout, _ io.Writer, cmd string, args ...string) error {
	out, err := e.record("", cmd, args...)
	if len(out) > 0 && stdout != nil {
		_, _ = stdout.Write(out)
	}
	return err
}

func (e *RecordingExecutor) record(dir, cmd string, args ...string) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rc := RecordedCommand{Dir: dir, Cmd: cmd, Args: args}
	e.Commands = append(e.Commands, rc)

	line := rc.Line()
	return e.Outputs[longestPrefix(e.Outputs, line)], e.Errors[longestPrefix(e.Errors, line)]
}

// Ran reports whether any recorded command line starts with prefix.
func (e *RecordingExecutor) Ran(prefix string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, c := range e.Commands {
		if hasWordPrefix(c.Line(), prefix) {
			return true
		}
	}
	return false
}

// Reset clears recorded commands.
func (e *RecordingExecutor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Commands = nil
}

func longestPrefix[V any](m map[string]V, line string) string {
	best := ""
	found := false
	for key := range m {
		if hasWordPrefix(line, key) && (!found || len(key) > len(best)) {
			best = key
			found = true
		}
	}
	return best
}

// hasWordPrefix matches prefix on word boundaries so "git st" does not
// match "git status".
func hasWordPrefix(line, prefix string) bool {
	if !strings.HasPrefix(line, prefix) {
		return false
	}
	return len(line) == len(prefix) || line[len(prefix)] == ' '
}
