package updatecheck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/hay-kot/gim/pkg/executil"
)

// DefaultFormula is the Homebrew formula gim is published as.
const DefaultFormula = "gim"

// BrewSource reads the stable version of a Homebrew formula.
type BrewSource struct {
	exec    executil.Executor
	formula string
}

// NewBrewSource creates a Homebrew source for formula.
func NewBrewSource(exec executil.Executor, formula string) *BrewSource {
	if formula == "" {
		formula = DefaultFormula
	}
	return &BrewSource{exec: exec, formula: formula}
}

func (b *BrewSource) Name() string { return "homebrew" }

type brewInfo struct {
	Formulae []struct {
		Name     string `json:"name"`
		Versions struct {
			Stable string `json:"stable"`
		} `json:"versions"`
	} `json:"formulae"`
}

// LatestVersion runs `brew info --json=v2` and returns the stable version.
func (b *BrewSource) LatestVersion(ctx context.Context) (string, error) {
	out, err := b.exec.Run(ctx, "brew", "info", "--json=v2", b.formula)
	if err != nil {
		return "", fmt.Errorf("brew info %s: %w", b.formula, err)
	}

	var info brewInfo
	if err := json.Unmarshal(out, &info); err != nil {
		return "", fmt.Errorf("decode brew info: %w", err)
	}
	if len(info.Formulae) == 0 || info.Formulae[0].Versions.Stable == "" {
		return "", errors.New("brew info: no stable version")
	}

	return info.Formulae[0].Versions.Stable, nil
}

// Upgrade runs `brew upgrade` for the formula, streaming brew's output.
func (b *BrewSource) Upgrade(ctx context.Context, stdout, stderr io.Writer) error {
	if err := b.exec.RunStream(ctx, stdout, stderr, "brew", "upgrade", b.formula); err != nil {
		return fmt.Errorf("brew upgrade %s: %w", b.formula, err)
	}
	return nil
}
