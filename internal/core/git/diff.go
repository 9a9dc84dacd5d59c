package git

import (
	"fmt"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
)

// DiffSource specifies which change set a diff is taken from.
type DiffSource int

const (
	// DiffStaged diffs the index against HEAD: what the next commit records.
	DiffStaged DiffSource = iota
	// DiffLastCommit diffs HEAD against its parent, for amending.
	DiffLastCommit
)

// args builds the git argument list for s with opts, limited to paths when given.
func (s DiffSource) args(opts []string, paths ...string) ([]string, error) {
	var args []string
	switch s {
	case DiffStaged:
		args = append([]string{"diff", "--cached", "--no-color"}, opts...)
	case DiffLastCommit:
		// --root makes the initial commit diff against the empty tree.
		args = append([]string{"diff-tree", "-r", "--root", "--no-commit-id", "--no-color"}, opts...)
		args = append(args, "HEAD")
	default:
		return nil, fmt.Errorf("unknown diff source: %d", s)
	}

	if len(paths) > 0 {
		args = append(args, "--")
		args = append(args, paths...)
	}
	return args, nil
}

// String returns a human-readable description of the diff source.
func (s DiffSource) String() string {
	switch s {
	case DiffStaged:
		return "staged changes"
	case DiffLastCommit:
		return "last commit"
	default:
		return "unknown"
	}
}

// parseNameStatus parses `--name-status -z` output. Entries are NUL
// separated: a status token followed by one path, or two for renames and
// copies (R100, C075).
func parseNameStatus(output string) ([]FileChange, error) {
	tokens := strings.Split(output, "\x00")
	var changes []FileChange

	for i := 0; i < len(tokens); i++ {
		status := strings.TrimSpace(tokens[i])
		if status == "" {
			continue
		}

		letter := status[:1]
		if i+1 >= len(tokens) {
			return nil, fmt.Errorf("name-status: missing path for %q", status)
		}

		fc := FileChange{Status: letter}
		if letter == "R" || letter == "C" {
			if i+2 >= len(tokens) {
				return nil, fmt.Errorf("name-status: missing destination for %q", status)
			}
			fc.OrigPath = tokens[i+1]
			fc.Path = tokens[i+2]
			i += 2
		} else {
			fc.Path = tokens[i+1]
			i++
		}
		changes = append(changes, fc)
	}

	return changes, nil
}

// PatchStats counts added and deleted lines across every file in patch.
func PatchStats(patch string) (additions, deletions int, err error) {
	if strings.TrimSpace(patch) == "" {
		return 0, 0, nil
	}

	files, _, err := gitdiff.Parse(strings.NewReader(patch))
	if err != nil {
		return 0, 0, fmt.Errorf("parse patch: %w", err)
	}

	for _, f := range files {
		for _, frag := range f.TextFragments {
			additions += int(frag.LinesAdded)
			deletions += int(frag.LinesDeleted)
		}
	}
	return additions, deletions, nil
}
