package commands

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/gim/internal/core/config"
	"github.com/hay-kot/gim/internal/gim"
	"github.com/hay-kot/gim/pkg/executil"
)

const mainPatch = `diff --git a/main.go b/main.go
index 1111111..2222222 100644
--- a/main.go
+++ b/main.go
@@ -1,1 +1,3 @@
 package main
+
+func main() {}
`

func chatReplies(t *testing.T, replies ...string) *httptest.Server {
	t.Helper()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reply := ""
		if calls < len(replies) {
			reply = replies[calls]
		}
		calls++
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": reply}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func stagedRepo() *executil.RecordingExecutor {
	return &executil.RecordingExecutor{
		Outputs: map[string][]byte{
			"git rev-parse": []byte("true\n"),
			"git diff --cached --no-color --name-status":                   []byte("M\x00main.go\x00"),
			"git diff --cached --no-color -p --diff-filter=AM -- main.go": []byte(mainPatch),
			"git commit": []byte("[main abc1234] feat: add main\n"),
		},
	}
}

func newTestCommitCmd(flags *Flags, rec *executil.RecordingExecutor, srv *httptest.Server) *CommitCmd {
	cmd := NewCommitCmd(flags)
	cmd.exec = rec
	cmd.dir = "/repo"
	cmd.wait = func(ctx context.Context, _ string, fn func(context.Context) error) error { return fn(ctx) }
	if srv != nil {
		cmd.http = srv.Client()
	}
	return cmd
}

func TestCommitCmd_Commits(t *testing.T) {
	srv := chatReplies(t, "main.go: Add entry point (2)", "feat: add main")
	flags := testFlags(t, func(cfg *config.Config) {
		cfg.AI.Model = "gpt-4o-mini"
		cfg.AI.APIKey = "sk-test"
		cfg.AI.URL = srv.URL + "/v1"
	})
	rec := stagedRepo()

	res, err := runApp(t, newTestCommitCmd(flags, rec, srv))
	require.NoError(t, err)

	var commit []string
	for _, c := range rec.Commands {
		if len(c.Args) > 0 && c.Args[0] == "commit" {
			commit = c.Args
		}
	}
	assert.Equal(t, []string{"commit", "-m", "feat: add main", "-m", "main.go: Add entry point (2)"}, commit)
	assert.Contains(t, res.out.String(), "[main abc1234] feat: add main")
	assert.False(t, rec.Ran("brew"), "development builds never query releases")
}

func TestCommitCmd_MessageFlag(t *testing.T) {
	srv := chatReplies(t, "main.go: Add entry point (2)")
	flags := testFlags(t, func(cfg *config.Config) {
		cfg.AI.Model = "gpt-4o-mini"
		cfg.AI.APIKey = "sk-test"
		cfg.AI.URL = srv.URL
	})
	rec := stagedRepo()

	_, err := runApp(t, newTestCommitCmd(flags, rec, srv), "-m", "chore: bootstrap")
	require.NoError(t, err)
	assert.True(t, rec.Ran("git commit -m chore: bootstrap -m main.go: Add entry point (2)"))
}

func TestCommitCmd_ConfigMissing(t *testing.T) {
	flags := testFlags(t, nil)
	rec := stagedRepo()

	res, err := runApp(t, newTestCommitCmd(flags, rec, nil), "-a")
	require.Error(t, err)

	var outcomeErr *OutcomeError
	require.ErrorAs(t, err, &outcomeErr)
	assert.Equal(t, gim.AbortedConfigMissing, outcomeErr.Outcome)
	assert.Equal(t, 1, outcomeErr.Outcome.ExitCode())
	assert.ErrorIs(t, err, config.ErrMissing)
	assert.Contains(t, res.status.String(), "gim ai --model")
	assert.Empty(t, rec.Commands, "nothing is staged without a usable config")
}

func TestCommitCmd_UnknownArgument(t *testing.T) {
	_, err := runApp(t, newTestCommitCmd(testFlags(t, nil), stagedRepo(), nil), "comit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "comit"`)
}

func TestCommitCmd_VerboseWithVersionedRoot(t *testing.T) {
	for _, arg := range []string{"-v", "--verbose"} {
		t.Run(arg, func(t *testing.T) {
			srv := chatReplies(t, "main.go: Add entry point (2)", "feat: add main")
			flags := testFlags(t, func(cfg *config.Config) {
				cfg.AI.Model = "gpt-4o-mini"
				cfg.AI.APIKey = "sk-test"
				cfg.AI.URL = srv.URL + "/v1"
			})
			rec := stagedRepo()

			res, err := runVersionedApp(t, "1.0.0", newTestCommitCmd(flags, rec, srv), arg)
			require.NoError(t, err)

			assert.NotContains(t, res.out.String(), "version 1.0.0")
			assert.True(t, rec.Ran("git commit"), "the commit action ran")
			assert.Contains(t, res.errOut.String(), "[VERBOSE]")
		})
	}
}

func TestCommitCmd_VersionFlagMovesToV(t *testing.T) {
	rec := stagedRepo()

	res, err := runVersionedApp(t, "1.0.0", newTestCommitCmd(testFlags(t, nil), rec, nil), "-V")
	require.NoError(t, err)
	assert.Contains(t, res.out.String(), "gim version 1.0.0")
	assert.Empty(t, rec.Commands)
}
