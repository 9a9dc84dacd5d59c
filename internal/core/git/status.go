package git

import (
	"fmt"
	"strings"
)

// StatusEntry is one path from `git status --porcelain`.
type StatusEntry struct {
	Path     string
	OrigPath string // set for renames and copies in the index
	Index    byte   // X column: staged state
	Worktree byte   // Y column: unstaged state
}

// Code returns the two-letter porcelain status code, e.g. "M ", " M", "??".
func (s StatusEntry) Code() string {
	return string([]byte{s.Index, s.Worktree})
}

// Untracked reports whether the path is not yet known to git.
func (s StatusEntry) Untracked() bool {
	return s.Index == '?' && s.Worktree == '?'
}

// Unstaged reports whether the path has working tree changes that are not in the index.
func (s StatusEntry) Unstaged() bool {
	return s.Worktree != ' '
}

// parseStatus parses `git status --porcelain -z` output. Each entry is
// "XY path" terminated by NUL; renames and copies are followed by an extra
// NUL-terminated source path.
func parseStatus(output string) ([]StatusEntry, error) {
	tokens := strings.Split(output, "\x00")
	var entries []StatusEntry

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok == "" {
			continue
		}
		if len(tok) < 4 || tok[2] != ' ' {
			return nil, fmt.Errorf("status: malformed entry %q", tok)
		}

		entry := StatusEntry{
			Index:    tok[0],
			Worktree: tok[1],
			Path:     tok[3:],
		}
		if entry.Index == 'R' || entry.Index == 'C' {
			if i+1 >= len(tokens) {
				return nil, fmt.Errorf("status: missing source path for %q", tok)
			}
			entry.OrigPath = tokens[i+1]
			i++
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
