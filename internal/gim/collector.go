package gim

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"github.com/hay-kot/gim/internal/core/git"
	"github.com/hay-kot/gim/internal/core/logging"
)

// ChangeSet is the collected state of one commit: the changed files and the
// text sent to the first chat stage.
type ChangeSet struct {
	Files []git.FileChange
	Diff  string
	Lines int
}

// Empty reports whether there is nothing to commit.
func (c ChangeSet) Empty() bool {
	return len(c.Files) == 0
}

// Collector gathers the changes a commit will record.
type Collector struct {
	git    git.Git
	dir    string
	ignore []string
	out    io.Writer
	vlog   zerolog.Logger
}

// NewCollector creates a collector for the work tree at dir. Files matching
// any ignore glob are listed but their patch bodies are left out.
func NewCollector(g git.Git, dir string, ignore []string, out io.Writer, vlog zerolog.Logger) *Collector {
	if out == nil {
		out = io.Discard
	}
	return &Collector{git: g, dir: dir, ignore: ignore, out: out, vlog: vlog}
}

// Collect builds the ChangeSet for the next commit, or for HEAD when amend
// is set. With autoAdd, every working tree change is staged first and stays
// staged whatever happens later. A diff longer than sizeLimit lines returns
// *SizeExceededError.
func (c *Collector) Collect(ctx context.Context, autoAdd, amend bool, sizeLimit int) (ChangeSet, error) {
	log := logging.Component("collector")

	if err := c.git.IsRepository(ctx, c.dir); err != nil {
		return ChangeSet{}, err
	}

	staged, err := c.stage(ctx, autoAdd)
	if err != nil {
		return ChangeSet{}, err
	}

	src := git.DiffStaged
	if amend {
		src = git.DiffLastCommit
	}

	files, err := c.git.NameStatus(ctx, c.dir, src)
	if err != nil {
		return ChangeSet{}, err
	}
	c.vlog.Info().Msgf("%d files changed in %s", len(files), src)
	if len(files) == 0 {
		return ChangeSet{}, nil
	}

	var bodies strings.Builder
	for i := range files {
		f := &files[i]
		if !f.HasBody() {
			continue
		}

		patch, err := c.git.FileDiff(ctx, c.dir, src, f.Path)
		if err != nil {
			return ChangeSet{}, err
		}

		f.Additions, f.Deletions, err = git.PatchStats(patch)
		if err != nil {
			// binary or unparsable patches still get summarized by name
			log.Debug().Err(err).Str("path", f.Path).Msg("count changed lines")
		}

		if c.ignored(f.Path) {
			c.vlog.Info().Msgf("skipping diff body for ignored file %s", f.Path)
			continue
		}
		fmt.Fprintf(&bodies, "\nChanges for %s:\n%s\n", f.Path, strings.TrimRight(patch, "\n"))
	}

	diff := summarize(files) + bodies.String()
	cs := ChangeSet{
		Files: files,
		Diff:  diff,
		Lines: countLines(diff),
	}
	log.Debug().Ctx(ctx).Int("files", len(files)).Int("lines", cs.Lines).Msg("collected changes")

	if sizeLimit > 0 && cs.Lines > sizeLimit {
		return cs, &SizeExceededError{Lines: cs.Lines, Limit: sizeLimit, Staged: staged}
	}
	return cs, nil
}

// stage runs `git add -A` when autoAdd is set and anything is unstaged. It
// reports whether staging happened.
func (c *Collector) stage(ctx context.Context, autoAdd bool) (bool, error) {
	entries, err := c.git.Status(ctx, c.dir, autoAdd)
	if err != nil {
		return false, err
	}

	pending := 0
	for _, e := range entries {
		if e.Unstaged() {
			pending++
			c.vlog.Info().Msgf("%s  %s", e.Code(), e.Path)
		}
	}

	if pending == 0 {
		return false, nil
	}
	if !autoAdd {
		_, _ = fmt.Fprintf(c.out, "%d files have unstaged changes that will not be committed (use -a to add them)\n", pending)
		return false, nil
	}

	if err := c.git.StageAll(ctx, c.dir); err != nil {
		return false, err
	}
	_, _ = fmt.Fprintf(c.out, "Staged %d changed files\n", pending)
	return true, nil
}

func (c *Collector) ignored(path string) bool {
	for _, pattern := range c.ignore {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}

// summarize renders the "Changed files" header: one line per file with its
// status letter and changed-line count.
func summarize(files []git.FileChange) string {
	var b strings.Builder
	b.WriteString("Changed files:\n")
	for _, f := range files {
		name := f.Path
		if f.OrigPath != "" {
			name = f.OrigPath + " -> " + f.Path
		}
		if f.HasBody() {
			fmt.Fprintf(&b, "%s %s (%d)\n", f.Status, name, f.Changed())
		} else {
			fmt.Fprintf(&b, "%s %s\n", f.Status, name)
		}
	}
	return b.String()
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}
