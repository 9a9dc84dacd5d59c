// Package git provides an abstraction over the git command-line operations gim needs.
package git

import "context"

// Git defines git operations needed by gim. Every method runs against the
// working tree at dir.
type Git interface {
	// IsRepository returns an error wrapping ErrNotRepository when dir is
	// not inside a git working tree.
	IsRepository(ctx context.Context, dir string) error
	// Status lists changed paths. Untracked files are included only when
	// includeUntracked is set.
	Status(ctx context.Context, dir string, includeUntracked bool) ([]StatusEntry, error)
	// StageAll stages every change in the working tree, untracked files included.
	StageAll(ctx context.Context, dir string) error
	// NameStatus lists the files changed in src with their status letters.
	NameStatus(ctx context.Context, dir string, src DiffSource) ([]FileChange, error)
	// FileDiff returns the patch for a single added or modified path in src.
	FileDiff(ctx context.Context, dir string, src DiffSource, path string) (string, error)
	// Commit records a commit with subject and body as separate message
	// paragraphs, amending HEAD when amend is set. It returns git's summary output.
	Commit(ctx context.Context, dir string, msg CommitMessage) (string, error)
}

// CommitMessage is the message and mode for a single git commit.
type CommitMessage struct {
	Subject string
	Body    string
	Amend   bool
}

// FileChange is a path and its status letter from --name-status output
// (A, M, D, R, C, T). Additions and Deletions are filled in by callers
// that parse the patch.
type FileChange struct {
	Path      string
	OrigPath  string // set for renames and copies
	Status    string
	Additions int
	Deletions int
}

// Changed returns the number of added plus deleted lines.
func (f FileChange) Changed() int {
	return f.Additions + f.Deletions
}

// HasBody reports whether the change gets a patch body. Deletions are
// summarized by name only.
func (f FileChange) HasBody() bool {
	return f.Status == "A" || f.Status == "M"
}
