package updatecheck

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hay-kot/gim/pkg/executil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	version string
	err     error
	calls   int
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) LatestVersion(context.Context) (string, error) {
	s.calls++
	return s.version, s.err
}

func TestCheck_DevVersion(t *testing.T) {
	src := &stubSource{version: "v9.9.9"}
	result, err := New(src, "dev").Check(context.Background())
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Equal(t, 0, src.calls)
}

func TestCheck_EmptyVersion(t *testing.T) {
	result, err := New(&stubSource{}, "").Check(context.Background())
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestCheck_InvalidVersion(t *testing.T) {
	result, err := New(&stubSource{version: "v1.0.0"}, "not-semver").Check(context.Background())
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestCheck_CurrentIsLatest(t *testing.T) {
	result, err := New(&stubSource{version: "1.3.0"}, "v1.3.0").Check(context.Background())
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestCheck_CurrentIsNewer(t *testing.T) {
	result, err := New(&stubSource{version: "v1.2.0"}, "1.3.0").Check(context.Background())
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestCheck_UpdateAvailable(t *testing.T) {
	result, err := New(&stubSource{version: "2.0.0"}, "1.0.0").Check(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "v1.0.0", result.Current)
	assert.Equal(t, "v2.0.0", result.Latest)
}

func TestCheck_SourceFailure(t *testing.T) {
	boom := errors.New("offline")
	result, err := New(&stubSource{err: boom}, "v1.0.0").Check(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Nil(t, result)
}

func TestCheck_InvalidLatest(t *testing.T) {
	_, err := New(&stubSource{version: "latest"}, "v1.0.0").Check(context.Background())
	require.Error(t, err)
}

func TestLatest_Unversioned(t *testing.T) {
	_, err := New(&stubSource{version: "v1.0.0"}, "dev").Latest(context.Background())
	assert.ErrorIs(t, err, ErrUnversioned)
}

func TestBrewSource(t *testing.T) {
	rec := &executil.RecordingExecutor{
		Outputs: map[string][]byte{
			"brew info": []byte(`{"formulae":[{"name":"gim","versions":{"stable":"0.4.2"},"installed":[{"version":"0.4.1"}]}],"casks":[]}`),
		},
	}

	v, err := NewBrewSource(rec, "").LatestVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0.4.2", v)
	assert.Equal(t, "brew info --json=v2 gim", rec.Commands[0].Line())
}

func TestBrewSource_Errors(t *testing.T) {
	tests := []struct {
		name string
		rec  *executil.RecordingExecutor
	}{
		{
			name: "command fails",
			rec:  &executil.RecordingExecutor{Errors: map[string]error{"brew": errors.New("brew: command not found")}},
		},
		{
			name: "bad json",
			rec:  &executil.RecordingExecutor{Outputs: map[string][]byte{"brew": []byte("Error: No available formula")}},
		},
		{
			name: "no formulae",
			rec:  &executil.RecordingExecutor{Outputs: map[string][]byte{"brew": []byte(`{"formulae":[]}`)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBrewSource(tt.rec, "gim").LatestVersion(context.Background())
			require.Error(t, err)
		})
	}
}

func TestBrewSource_Upgrade(t *testing.T) {
	rec := &executil.RecordingExecutor{}
	require.NoError(t, NewBrewSource(rec, "gim").Upgrade(context.Background(), nil, nil))
	assert.True(t, rec.Ran("brew upgrade gim"))
}

func TestGitHubSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/hay-kot/gim/releases/latest", r.URL.Path)
		assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"tag_name":"v0.5.0","published_at":"2026-01-02T00:00:00Z"}`))
	}))
	defer srv.Close()

	src := NewGitHubSource("")
	src.baseURL = srv.URL
	src.client = srv.Client()

	v, err := src.LatestVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v0.5.0", v)
}

func TestGitHubSource_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "not found", status: http.StatusNotFound, body: `{"message":"Not Found"}`},
		{name: "missing tag", status: http.StatusOK, body: `{}`},
		{name: "bad json", status: http.StatusOK, body: `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			src := NewGitHubSource("hay-kot/gim")
			src.baseURL = srv.URL
			src.client = srv.Client()

			_, err := src.LatestVersion(context.Background())
			require.Error(t, err)
		})
	}
}

func TestNewSource(t *testing.T) {
	rec := &executil.RecordingExecutor{}

	src, err := NewSource("brew", rec)
	require.NoError(t, err)
	assert.Equal(t, "homebrew", src.Name())

	src, err = NewSource("github", rec)
	require.NoError(t, err)
	assert.Equal(t, "github", src.Name())

	_, err = NewSource("apt", rec)
	require.Error(t, err)
}
