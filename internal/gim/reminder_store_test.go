package gim

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/hay-kot/gim/internal/core/config"
	"github.com/hay-kot/gim/internal/core/reminder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReminderStore_RoundTrip(t *testing.T) {
	cfgStore := config.NewStore(filepath.Join(t.TempDir(), "config.toml"))
	store := NewReminderStore(cfgStore)

	state, err := store.LoadState()
	require.NoError(t, err)
	def := reminder.DefaultState()
	assert.True(t, def.LastCheck.Equal(state.LastCheck))
	assert.Equal(t, def.Count, state.Count)
	assert.Equal(t, def.MaxTries, state.MaxTries)
	assert.Equal(t, def.IntervalDays, state.IntervalDays)

	state.Count = 2
	state.LastCheck = time.Date(2026, time.October, 15, 0, 0, 0, 0, time.Local)
	require.NoError(t, store.SaveState(state))

	cfg, err := cfgStore.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Update.Tried)
	assert.Equal(t, "2026-10-15", cfg.Update.LastTryDay)

	reloaded, err := store.LoadState()
	require.NoError(t, err)
	assert.True(t, state.LastCheck.Equal(reloaded.LastCheck))
	assert.Equal(t, state.Count, reloaded.Count)
}

func TestReminderStore_PreservesOtherSections(t *testing.T) {
	cfgStore := config.NewStore(filepath.Join(t.TempDir(), "config.toml"))
	_, err := cfgStore.Update(func(c *config.Config) error {
		c.AI.Model = "qwen-plus"
		c.AI.APIKey = "sk-keep"
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, NewReminderStore(cfgStore).SaveState(reminder.State{LastCheck: time.Now(), MaxTries: 5, IntervalDays: 30}))

	cfg, err := cfgStore.Load()
	require.NoError(t, err)
	assert.Equal(t, "qwen-plus", cfg.AI.Model)
	assert.Equal(t, "sk-keep", cfg.AI.APIKey)
}
