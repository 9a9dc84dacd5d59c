package config

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
)

// Validate checks that the configuration is structurally valid. It runs once
// at load time; fields needed only for commit generation are checked by
// ValidateAI.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("ai.language", c.AI.Language, notBlank),
		criterio.Run("ai.temperature", c.AI.Temperature, temperatureInRange),
		criterio.Run("update.max_try", c.Update.MaxTry, atLeast(1)),
		criterio.Run("update.try_interval_days", c.Update.TryIntervalDays, atLeast(0)),
		criterio.Run("update.tried", c.Update.Tried, triedBelow(c.Update.MaxTry)),
		criterio.Run("update.last_try_day", c.Update.LastTryDay, validDate),
		criterio.Run("update.source", c.Update.Source, validSource),
		criterio.Run("user.lines_limit", c.User.LinesLimit, atLeast(1)),
		c.validateIgnore(),
	)
}

// ValidateAI checks the fields commit generation cannot run without. The
// returned error wraps ErrMissing and the criterio field errors.
func (c *Config) ValidateAI() error {
	err := criterio.ValidateStruct(
		criterio.Run("ai.model", c.AI.Model, notBlank),
		criterio.Run("ai.apikey", c.AI.APIKey, notBlank),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMissing, err)
	}
	return nil
}

func (c *Config) validateIgnore() error {
	for i, pattern := range c.User.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return criterio.NewFieldErrors(fmt.Sprintf("user.ignore[%d]", i), fmt.Errorf("invalid glob %q", pattern))
		}
	}
	return nil
}

func notBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("is required")
	}
	return nil
}

func atLeast(n int) func(int) error {
	return func(v int) error {
		if v < n {
			return fmt.Errorf("must be at least %d", n)
		}
		return nil
	}
}

// triedBelow keeps the reminder count inside its cycle. A count at or past
// max_try would never fire again.
func triedBelow(maxTry int) func(int) error {
	return func(v int) error {
		if v < 0 {
			return fmt.Errorf("must be at least 0")
		}
		if maxTry >= 1 && v >= maxTry {
			return fmt.Errorf("must be less than update.max_try (%d)", maxTry)
		}
		return nil
	}
}

func temperatureInRange(v *float64) error {
	if v == nil {
		return nil
	}
	if *v < 0 || *v > 2 {
		return fmt.Errorf("must be between 0 and 2")
	}
	return nil
}

func validDate(s string) error {
	if _, err := (UpdateConfig{LastTryDay: s}).LastTry(); err != nil {
		return fmt.Errorf("must be a %s date", DateLayout)
	}
	return nil
}

func validSource(s string) error {
	switch s {
	case SourceBrew, SourceGitHub:
		return nil
	default:
		return fmt.Errorf("must be %q or %q", SourceBrew, SourceGitHub)
	}
}
