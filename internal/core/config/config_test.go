package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_CreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gim", "config.toml")
	store := NewStore(path)

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), *cfg)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[ai]")
	assert.Contains(t, string(data), "[update]")
	assert.Contains(t, string(data), "lines_limit = 1000")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoad_ReadsTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[settings]
example = "value"

[ai]
model = "moonshot-v1-8k"
apikey = "sk-123"
url = ""
language = "Chinese"

[update]
tried = 2
max_try = 3
try_interval_days = 7
last_try_day = "2025-01-02"

[user]
lines_limit = 250
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := NewStore(path).Load()
	require.NoError(t, err)

	assert.Equal(t, "moonshot-v1-8k", cfg.AI.Model)
	assert.Equal(t, "sk-123", cfg.AI.APIKey)
	assert.Equal(t, "Chinese", cfg.AI.Language)
	assert.InDelta(t, DefaultTemperature, cfg.AI.TemperatureValue(), 1e-9, "unset temperature gets the default")
	assert.Equal(t, 2, cfg.Update.Tried)
	assert.Equal(t, 3, cfg.Update.MaxTry)
	assert.Equal(t, 7, cfg.Update.TryIntervalDays)
	assert.Equal(t, SourceBrew, cfg.Update.Source)
	assert.Equal(t, 250, cfg.User.LinesLimit)
	assert.Equal(t, "value", cfg.Settings["example"])

	last, err := cfg.Update.LastTry()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, time.Local), last)
}

func TestLoad_ReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
ai:
  model: gpt-4o-mini
  apikey: sk-abc
user:
  lines_limit: 42
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := NewStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", cfg.AI.Model)
	assert.Equal(t, DefaultLanguage, cfg.AI.Language)
	assert.Equal(t, 42, cfg.User.LinesLimit)
	assert.Equal(t, 5, cfg.Update.MaxTry)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ai\nmodel="), 0o600))

	_, err := NewStore(path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[user]\nlines_limit = -5\n"), 0o600))

	_, err := NewStore(path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user.lines_limit")
}

func TestLoad_RejectsExhaustedReminder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[update]\ntried = 5\nmax_try = 5\n"), 0o600))

	_, err := NewStore(path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "update.tried")
}

func TestLoad_KeepsZeroTemperature(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ai]\ntemperature = 0.0\n"), 0o600))

	cfg, err := NewStore(path).Load()
	require.NoError(t, err)
	require.NotNil(t, cfg.AI.Temperature)
	assert.Zero(t, cfg.AI.TemperatureValue())
}

func TestStore_UpdateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	store := NewStore(path)

	_, err := store.Update(func(c *Config) error {
		c.AI.Model = "qwen-plus"
		c.Update.Tried = 4
		c.Update.SetLastTry(time.Date(2026, 3, 9, 15, 4, 5, 0, time.Local))
		return nil
	})
	require.NoError(t, err)

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "qwen-plus", cfg.AI.Model)
	assert.Equal(t, 4, cfg.Update.Tried)
	assert.Equal(t, "2026-03-09", cfg.Update.LastTryDay)
}

func TestStore_UpdateRejectsInvalid(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "config.toml"))

	_, err := store.Update(func(c *Config) error {
		c.User.LinesLimit = -1
		return nil
	})
	require.Error(t, err)

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.User.LinesLimit, "invalid update must not be written")
}

func TestMaskedKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"", ""},
		{"abc", "***"},
		{"sk-123456", "*****3456"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, AIConfig{APIKey: tt.key}.MaskedKey())
		})
	}
}
