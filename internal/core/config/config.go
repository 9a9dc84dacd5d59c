// Package config handles configuration loading, validation and persistence for gim.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultLanguage is the language prompts are written in. Any other value
// makes the prompt builder append a language directive.
const DefaultLanguage = "English"

// DefaultTemperature is used when ai.temperature is not set.
const DefaultTemperature = 0.1

// DateLayout is the on-disk format of update.last_try_day.
const DateLayout = "2006-01-02"

// Version sources for the update reminder.
const (
	SourceBrew   = "brew"
	SourceGitHub = "github"
)

// ErrMissing is returned when a field required for commit generation is absent.
var ErrMissing = errors.New("missing required configuration")

// Config holds the application configuration.
type Config struct {
	AI     AIConfig     `toml:"ai" yaml:"ai"`
	Update UpdateConfig `toml:"update" yaml:"update"`
	User   UserConfig   `toml:"user" yaml:"user"`

	// Settings is an unused legacy section kept so it survives a rewrite.
	Settings map[string]any `toml:"settings,omitempty" yaml:"settings,omitempty"`
}

// AIConfig holds the chat endpoint credentials and preferences.
type AIConfig struct {
	Model       string  `toml:"model" yaml:"model"`
	APIKey      string  `toml:"apikey" yaml:"apikey"`
	URL         string  `toml:"url" yaml:"url"`           // optional; overrides the provider table
	Language    string  `toml:"language" yaml:"language"` // response language
	Temperature *float64 `toml:"temperature,omitempty" yaml:"temperature,omitempty"` // nil means DefaultTemperature
}

// UpdateConfig holds the update reminder throttle state.
type UpdateConfig struct {
	Tried           int    `toml:"tried" yaml:"tried"`
	MaxTry          int    `toml:"max_try" yaml:"max_try"`
	TryIntervalDays int    `toml:"try_interval_days" yaml:"try_interval_days"`
	LastTryDay      string `toml:"last_try_day" yaml:"last_try_day"`
	Source          string `toml:"source" yaml:"source"` // brew or github
}

// UserConfig holds user tunables.
type UserConfig struct {
	LinesLimit int      `toml:"lines_limit" yaml:"lines_limit"`
	Ignore     []string `toml:"ignore" yaml:"ignore"` // globs whose diff bodies are skipped
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		AI: AIConfig{
			Language:    DefaultLanguage,
			Temperature: ptr(DefaultTemperature),
		},
		Update: UpdateConfig{
			Tried:           0,
			MaxTry:          5,
			TryIntervalDays: 30,
			LastTryDay:      "2000-01-01",
			Source:          SourceBrew,
		},
		User: UserConfig{
			LinesLimit: 1000,
			Ignore: []string{
				"**/Cargo.lock",
				"**/package-lock.json",
				"**/pnpm-lock.yaml",
				"**/yarn.lock",
				"**/go.sum",
			},
		},
	}
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if strings.TrimSpace(c.AI.Language) == "" {
		c.AI.Language = defaults.AI.Language
	}
	if c.AI.Temperature == nil {
		c.AI.Temperature = defaults.AI.Temperature
	}
	if c.Update.MaxTry == 0 {
		c.Update.MaxTry = defaults.Update.MaxTry
	}
	if c.Update.TryIntervalDays == 0 {
		c.Update.TryIntervalDays = defaults.Update.TryIntervalDays
	}
	if c.Update.LastTryDay == "" {
		c.Update.LastTryDay = defaults.Update.LastTryDay
	}
	if c.Update.Source == "" {
		c.Update.Source = defaults.Update.Source
	}
	if c.User.LinesLimit == 0 {
		c.User.LinesLimit = defaults.User.LinesLimit
	}
}

// TemperatureValue returns the configured sampling temperature. An explicit 0
// is kept.
func (a AIConfig) TemperatureValue() float64 {
	if a.Temperature == nil {
		return DefaultTemperature
	}
	return *a.Temperature
}

func ptr[T any](v T) *T { return &v }

// LastTry parses update.last_try_day in the local time zone.
func (u UpdateConfig) LastTry() (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, u.LastTryDay, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse last_try_day %q: %w", u.LastTryDay, err)
	}
	return t, nil
}

// SetLastTry formats t into update.last_try_day.
func (u *UpdateConfig) SetLastTry(t time.Time) {
	u.LastTryDay = t.Format(DateLayout)
}

// MaskedKey returns the API key with everything but the last four characters hidden.
func (a AIConfig) MaskedKey() string {
	if a.APIKey == "" {
		return ""
	}
	if len(a.APIKey) <= 4 {
		return strings.Repeat("*", len(a.APIKey))
	}
	return strings.Repeat("*", len(a.APIKey)-4) + a.APIKey[len(a.APIKey)-4:]
}
