package gim

import (
	"github.com/hay-kot/gim/internal/core/config"
	"github.com/hay-kot/gim/internal/core/reminder"
)

// ReminderStore keeps the update reminder state in the update section of
// the config file.
type ReminderStore struct {
	store *config.Store
}

// NewReminderStore adapts a config store to reminder.Store.
func NewReminderStore(store *config.Store) *ReminderStore {
	return &ReminderStore{store: store}
}

// LoadState reads the reminder state from the config file.
func (s *ReminderStore) LoadState() (reminder.State, error) {
	cfg, err := s.store.Load()
	if err != nil {
		return reminder.State{}, err
	}
	return StateFromConfig(cfg.Update)
}

// SaveState writes the try count and last check day back to the config file.
// Other sections are re-read first so concurrent edits to them survive.
func (s *ReminderStore) SaveState(state reminder.State) error {
	_, err := s.store.Update(func(cfg *config.Config) error {
		cfg.Update.Tried = state.Count
		cfg.Update.SetLastTry(state.LastCheck)
		return nil
	})
	return err
}

// StateFromConfig converts the update config section to a reminder state.
func StateFromConfig(u config.UpdateConfig) (reminder.State, error) {
	last, err := u.LastTry()
	if err != nil {
		return reminder.State{}, err
	}
	return reminder.State{
		LastCheck:    last,
		Count:        u.Tried,
		MaxTries:     u.MaxTry,
		IntervalDays: u.TryIntervalDays,
	}, nil
}
