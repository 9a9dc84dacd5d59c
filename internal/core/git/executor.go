package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/hay-kot/gim/pkg/executil"
)

// Executor implements Git using the git command-line tool.
type Executor struct {
	gitPath string
	exec    executil.Executor
}

// NewExecutor creates a new git executor with the specified git binary path.
func NewExecutor(gitPath string, exec executil.Executor) *Executor {
	if gitPath == "" {
		gitPath = "git"
	}
	return &Executor{gitPath: gitPath, exec: exec}
}

func (e *Executor) run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	out, err := e.exec.RunDir(ctx, dir, e.gitPath, args...)
	if err != nil {
		return out, NewProcessError(e.gitPath, args, err)
	}
	return out, nil
}

func (e *Executor) IsRepository(ctx context.Context, dir string) error {
	args := []string{"rev-parse", "--is-inside-work-tree"}
	out, err := e.exec.RunDir(ctx, dir, e.gitPath, args...)
	if err != nil {
		pe := NewProcessError(e.gitPath, args, err)
		pe.Err = fmt.Errorf("%w: %w", ErrNotRepository, pe.Err)
		return pe
	}

	if strings.TrimSpace(string(out)) != "true" {
		return &ProcessError{Tool: e.gitPath, Args: args, Output: strings.TrimSpace(string(out)), Err: ErrNotRepository}
	}
	return nil
}

func (e *Executor) Status(ctx context.Context, dir string, includeUntracked bool) ([]StatusEntry, error) {
	untracked := "--untracked-files=no"
	if includeUntracked {
		untracked = "--untracked-files=all"
	}

	out, err := e.run(ctx, dir, "status", "--porcelain", "-z", untracked)
	if err != nil {
		return nil, err
	}
	return parseStatus(string(out))
}

func (e *Executor) StageAll(ctx context.Context, dir string) error {
	if _, err := e.run(ctx, dir, "add", "-A"); err != nil {
		return err
	}
	return nil
}

func (e *Executor) NameStatus(ctx context.Context, dir string, src DiffSource) ([]FileChange, error) {
	args, err := src.args([]string{"--name-status", "-z"})
	if err != nil {
		return nil, err
	}

	out, err := e.run(ctx, dir, args...)
	if err != nil {
		return nil, err
	}
	return parseNameStatus(string(out))
}

func (e *Executor) FileDiff(ctx context.Context, dir string, src DiffSource, path string) (string, error) {
	args, err := src.args([]string{"-p", "--diff-filter=AM"}, path)
	if err != nil {
		return "", err
	}

	out, err := e.run(ctx, dir, args...)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (e *Executor) Commit(ctx context.Context, dir string, msg CommitMessage) (string, error) {
	args := []string{"commit", "-m", msg.Subject}
	if strings.TrimSpace(msg.Body) != "" {
		args = append(args, "-m", msg.Body)
	}
	if msg.Amend {
		args = append(args, "--amend")
	}

	out, err := e.run(ctx, dir, args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
