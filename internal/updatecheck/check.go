// Package updatecheck looks up the latest published gim release.
package updatecheck

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/gim/pkg/executil"
	"github.com/rs/zerolog/log"
	"golang.org/x/mod/semver"
)

// ErrUnversioned is returned by Latest when the running binary has no
// comparable version, as with development builds.
var ErrUnversioned = errors.New("current build has no release version")

// Source reports the latest released version string.
type Source interface {
	Name() string
	LatestVersion(ctx context.Context) (string, error)
}

// Result pairs the running version with the latest release.
type Result struct {
	Current string
	Latest  string
}

// Newer reports whether Latest is a higher version than Current.
func (r Result) Newer() bool {
	return semver.Compare(r.Current, r.Latest) < 0
}

// Checker compares the running version against a Source.
type Checker struct {
	source  Source
	current string
}

// New creates a checker for the running version current.
func New(source Source, current string) *Checker {
	return &Checker{source: source, current: current}
}

// Source returns the release source the checker consults.
func (c *Checker) Source() Source {
	return c.source
}

// Latest fetches the latest release and returns both normalized versions.
func (c *Checker) Latest(ctx context.Context) (Result, error) {
	current, ok := normalizeVersion(c.current)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnversioned, c.current)
	}

	raw, err := c.source.LatestVersion(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("fetch latest version from %s: %w", c.source.Name(), err)
	}

	latest, ok := normalizeVersion(raw)
	if !ok {
		return Result{}, fmt.Errorf("invalid version %q from %s", raw, c.source.Name())
	}

	return Result{Current: current, Latest: latest}, nil
}

// Check returns a non-nil Result only when an update is available.
// Development builds never report an update. Lookup failures are returned
// so callers can decide whether they matter.
func (c *Checker) Check(ctx context.Context) (*Result, error) {
	res, err := c.Latest(ctx)
	if errors.Is(err, ErrUnversioned) {
		log.Debug().Str("version", c.current).Msg("update check: skipping unversioned build")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if !res.Newer() {
		return nil, nil
	}
	return &res, nil
}

func normalizeVersion(version string) (string, bool) {
	if version == "" || version == "dev" {
		return "", false
	}

	if semver.IsValid(version) {
		return version, true
	}

	withPrefix := "v" + version
	if semver.IsValid(withPrefix) {
		return withPrefix, true
	}

	return "", false
}

// NewSource returns the release source named by kind ("brew" or "github").
func NewSource(kind string, exec executil.Executor) (Source, error) {
	switch kind {
	case "", "brew":
		return NewBrewSource(exec, DefaultFormula), nil
	case "github":
		return NewGitHubSource(DefaultRepository), nil
	default:
		return nil, fmt.Errorf("unknown update source %q", kind)
	}
}
