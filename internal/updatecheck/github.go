package updatecheck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultRepository is the GitHub repository gim releases are published to.
const DefaultRepository = "hay-kot/gim"

var releaseHTTPClient = &http.Client{Timeout: 5 * time.Second}

// GitHubSource reads the tag of the latest GitHub release.
type GitHubSource struct {
	baseURL string
	repo    string
	client  *http.Client
}

// NewGitHubSource creates a source for repo ("owner/name").
func NewGitHubSource(repo string) *GitHubSource {
	if repo == "" {
		repo = DefaultRepository
	}
	return &GitHubSource{
		baseURL: "https://api.github.com",
		repo:    repo,
		client:  releaseHTTPClient,
	}
}

func (g *GitHubSource) Name() string { return "github" }

// ReleaseInfo holds the fields of a GitHub release gim uses.
type ReleaseInfo struct {
	TagName     string `json:"tag_name"`
	PublishedAt string `json:"published_at"`
}

// LatestVersion returns the tag name of the latest release.
func (g *GitHubSource) LatestVersion(ctx context.Context) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", g.baseURL, g.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "gim-update-checker")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request latest release: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Debug().Err(err).Msg("update check: close latest release response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("request latest release: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read latest release body: %w", err)
	}

	var info ReleaseInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return "", fmt.Errorf("decode latest release: %w", err)
	}
	if info.TagName == "" {
		return "", errors.New("decode latest release: missing tag_name")
	}

	return info.TagName, nil
}
