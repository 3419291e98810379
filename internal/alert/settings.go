// Package alert runs the repeating interval announcer: a one-shot timer
// that re-arms itself after each firing until an optional target count
// is reached.
package alert

import "time"

type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StateCompleted State = "completed"
)

// DefaultIntervalMinutes is the interval a fresh or cleared session
// starts with.
const DefaultIntervalMinutes = 5

// Settings is the persisted interval session. Interval is in minutes;
// Target of zero means run until stopped. Counter survives a stop so a
// resumed session keeps counting from where it left off.
type Settings struct {
	Interval  int
	Target    int
	Counter   int
	State     State
	StartedAt *time.Time
}

func (s Settings) Active() bool {
	return s.State == StateRunning
}

// Completed reports whether a target was set and has been reached.
func (s Settings) Completed() bool {
	return s.Target > 0 && s.Counter >= s.Target
}
