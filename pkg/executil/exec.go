// Package executil provides subprocess execution utilities.
package executil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
)

const maxOutputLen = 4096

// limitedWriter caps writes to a bytes.Buffer at a maximum byte count.
// Bytes beyond the limit are silently discarded.
type limitedWriter struct {
	buf *bytes.Buffer
	n   int64
	max int64
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	if w.n >= w.max {
		return len(p), nil
	}
	remaining := w.max - w.n
	origLen := len(p)
	if int64(origLen) > remaining {
		p = p[:remaining]
	}
	n, err := w.buf.Write(p)
	w.n += int64(n)
	if err != nil {
		return n, err
	}
	return origLen, nil
}

// Executor runs external commands.
type Executor interface {
	// Run executes a command and returns its stdout. On failure the returned
	// error is an *ExitError carrying the (capped) stderr.
	Run(ctx context.Context, cmd string, args ...string) ([]byte, error)
	// RunDir executes a command in a specific directory.
	RunDir(ctx context.Context, dir, cmd string, args ...string) ([]byte, error)
	// RunStream executes a command and streams stdout/stderr to the provided writers.
	RunStream(ctx context.Context, stdout, stderr io.Writer, cmd string, args ...string) error
}

// ExitError is returned when a command fails. Stderr holds the command's
// diagnostic output, capped to keep large output out of logs.
type ExitError struct {
	Cmd    string
	Args   []string
	Stderr string
	Err    error
}

func (e *ExitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("exec %s: %s: %v", e.Cmd, e.Stderr, e.Err)
	}
	return fmt.Sprintf("exec %s: %v", e.Cmd, e.Err)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// RealExecutor calls actual commands.
type RealExecutor struct{}

// Run executes a command and returns its stdout.
func (e *RealExecutor) Run(ctx context.Context, cmd string, args ...string) ([]byte, error) {
	return e.RunDir(ctx, "", cmd, args...)
}

// RunDir executes a command in a specific directory (empty means inherit cwd).
func (e *RealExecutor) RunDir(ctx context.Context, dir, cmd string, args ...string) ([]byte, error) {
	c := exec.CommandContext(ctx, cmd, args...)
	if dir != "" {
		c.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &limitedWriter{buf: &stderr, max: maxOutputLen}

	if err := c.Run(); err != nil {
		return stdout.Bytes(), &ExitError{
			Cmd:    cmd,
			Args:   args,
			Stderr: string(bytes.TrimSpace(stderr.Bytes())),
			Err:    err,
		}
	}
	return stdout.Bytes(), nil
}

// RunStream executes a command and streams stdout/stderr to the provided writers.
func (e *RealExecutor) RunStream(ctx context.Context, stdout, stderr io.Writer, cmd string, args ...string) error {
	c := exec.CommandContext(ctx, cmd, args...)
	c.Stdout = stdout
	c.Stderr = stderr
	if err := c.Run(); err != nil {
		return &ExitError{Cmd: cmd, Args: args, Err: err}
	}
	return nil
}
