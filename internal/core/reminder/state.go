// Package reminder throttles the passive "new version available" notice.
//
// A reminder cycle starts at LastCheck. Once IntervalDays have passed the
// latest version is probed on each run, and every run that finds a newer
// release prints the notice and uses up one try. When the tries for the
// cycle are spent, the window restarts from that day.
package reminder

import (
	"fmt"
	"time"
)

// Default throttle values for a fresh config.
const (
	DefaultMaxTries     = 5
	DefaultIntervalDays = 30
)

// DefaultLastCheck starts new installs with an elapsed window.
var DefaultLastCheck = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.Local)

// State is the persisted throttle state. 0 <= Count < MaxTries.
type State struct {
	LastCheck    time.Time
	Count        int
	MaxTries     int
	IntervalDays int
}

// DefaultState returns the state used when nothing has been persisted.
func DefaultState() State {
	return State{
		LastCheck:    DefaultLastCheck,
		MaxTries:     DefaultMaxTries,
		IntervalDays: DefaultIntervalDays,
	}
}

// DaysSince returns the number of calendar days between the date of
// LastCheck and the date of now. Times of day are ignored.
func (s State) DaysSince(now time.Time) int {
	return int(civil(now).Sub(civil(s.LastCheck)).Hours() / 24)
}

// ShouldCheck reports whether the interval has elapsed and tries remain.
func (s State) ShouldCheck(now time.Time) bool {
	return s.DaysSince(now) >= s.IntervalDays && s.Count < s.MaxTries
}

// Advance records a notified run. The last try of a cycle restarts the window.
func (s *State) Advance(now time.Time) {
	if s.Count >= s.MaxTries-1 {
		s.Reset(now)
		return
	}
	s.Count++
}

// Reset starts a new window at now with no tries used.
func (s *State) Reset(now time.Time) {
	y, m, d := now.Date()
	s.Count = 0
	s.LastCheck = time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

func (s State) String() string {
	return fmt.Sprintf("last check: %s, reminders: %d/%d, interval: %d days",
		s.LastCheck.Format(time.DateOnly), s.Count, s.MaxTries, s.IntervalDays)
}

// civil maps the calendar date of t to midnight UTC, where every day is 24h.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
