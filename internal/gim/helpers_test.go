package gim

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/hay-kot/gim/internal/core/chat"
	"github.com/hay-kot/gim/internal/core/git"
	"github.com/hay-kot/gim/internal/core/prompt"
	"github.com/hay-kot/gim/pkg/executil"
)

// fakeRepo wires a real git.Executor to a RecordingExecutor primed with
// porcelain output for a repo with the given staged changes.
func fakeRepo(nameStatus string, patches map[string]string) (*executil.RecordingExecutor, git.Git) {
	rec := &executil.RecordingExecutor{
		Outputs: map[string][]byte{
			"git rev-parse": []byte("true\n"),
			"git diff --cached --no-color --name-status": []byte(nameStatus),
			"git commit": []byte("[main abc1234] commit\n"),
		},
	}
	for path, patch := range patches {
		rec.Outputs["git diff --cached --no-color -p --diff-filter=AM -- "+path] = []byte(patch)
		rec.Outputs["git diff-tree -r --root --no-commit-id --no-color -p --diff-filter=AM HEAD -- "+path] = []byte(patch)
	}
	return rec, git.NewExecutor("git", rec)
}

// addedPatch returns a patch adding n lines to path.
func addedPatch(path string, n int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "diff --git a/%s b/%s\n", path, path)
	b.WriteString("index 1111111..2222222 100644\n")
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", path, path)
	fmt.Fprintf(&b, "@@ -1,1 +1,%d @@\n", n+1)
	b.WriteString(" package main\n")
	for i := range n {
		fmt.Fprintf(&b, "+var v%d = %d\n", i, i)
	}
	return b.String()
}

func commitArgs(t *testing.T, rec *executil.RecordingExecutor) []string {
	t.Helper()
	for _, c := range rec.Commands {
		if len(c.Args) > 0 && c.Args[0] == "commit" {
			return c.Args
		}
	}
	t.Fatal("git commit was not run")
	return nil
}

type fakeChat struct {
	replies []string
	err     error
	reqs    []chat.Request
}

func (f *fakeChat) Send(_ context.Context, _, _ string, req chat.Request, _ bool) (string, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "", nil
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	return reply, nil
}

type fakePrompts struct{}

func (fakePrompts) Load(kind prompt.Kind) string {
	return string(kind) + " system prompt"
}
