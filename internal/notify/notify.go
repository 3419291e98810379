// Package notify delivers desktop notifications and spoken announcements
// through whatever tooling the host platform carries. Delivery is best
// effort: callers treat every failure as non-fatal.
package notify

import (
	"fmt"
	"os/exec"
	"runtime"
	"sync"
)

// Notifier posts a desktop notification under a stable identifier so a
// later post or cancellation can replace it.
type Notifier interface {
	Post(id, title, body string) error
	Cancel(id string) error
}

// Speaker voices a short phrase.
type Speaker interface {
	Speak(text string) error
}

// Identifier for the self-rescheduling interval alert. A single slot:
// each firing replaces the previous banner.
const IntervalAlertID = "repeating-interval"

// TaskStartID returns the notification identifier for a task's start
// boundary on a given day.
func TaskStartID(title string, day int64) string {
	return fmt.Sprintf("task-start-%s-%d", title, day)
}

// TaskEndID returns the notification identifier for a task's end boundary.
func TaskEndID(title string, day int64) string {
	return fmt.Sprintf("task-end-%s-%d", title, day)
}

// System delivers through notify-send/osascript and say/espeak depending
// on the platform. Posted identifiers are tracked so Cancel can tell a
// live banner from an unknown one, even though most Linux notifiers have
// no real revoke call.
type System struct {
	mu     sync.Mutex
	posted map[string]bool
}

func NewSystem() *System {
	return &System{posted: make(map[string]bool)}
}

func (s *System) Post(id, title, body string) error {
	s.mu.Lock()
	s.posted[id] = true
	s.mu.Unlock()

	switch runtime.GOOS {
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q", body, title)
		return exec.Command("osascript", "-e", script).Run()
	default:
		return exec.Command("notify-send", title, body).Run()
	}
}

func (s *System) Cancel(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.posted[id] {
		return nil
	}
	delete(s.posted, id)
	return nil
}

func (s *System) Speak(text string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("say", text).Run()
	default:
		return exec.Command("espeak", text).Run()
	}
}

// Noop satisfies both interfaces for environments without a desktop
// session, and for tests.
type Noop struct{}

func (Noop) Post(id, title, body string) error { return nil }
func (Noop) Cancel(id string) error            { return nil }
func (Noop) Speak(text string) error           { return nil }
