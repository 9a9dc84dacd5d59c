package gim

import (
	"context"
	"fmt"
	"io"

	"github.com/hay-kot/gim/internal/core/git"
)

// CommitSpec is the message and mode of the commit to record.
type CommitSpec struct {
	Subject string
	Body    string
	Amend   bool
}

// Committer records commits in the work tree at dir.
type Committer struct {
	git git.Git
	dir string
	out io.Writer
}

// NewCommitter creates a committer. Confirmation is written to out.
func NewCommitter(g git.Git, dir string, out io.Writer) *Committer {
	if out == nil {
		out = io.Discard
	}
	return &Committer{git: g, dir: dir, out: out}
}

// Commit runs git commit with the subject and body as separate paragraphs.
func (c *Committer) Commit(ctx context.Context, spec CommitSpec) error {
	if spec.Subject == "" {
		return fmt.Errorf("commit: subject is empty")
	}

	summary, err := c.git.Commit(ctx, c.dir, git.CommitMessage{
		Subject: spec.Subject,
		Body:    spec.Body,
		Amend:   spec.Amend,
	})
	if err != nil {
		return err
	}

	if summary != "" {
		_, _ = fmt.Fprintln(c.out, summary)
	}
	return nil
}
