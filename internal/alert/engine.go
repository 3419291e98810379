package alert

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"focusflow/internal/notify"
)

var ErrInvalidInterval = errors.New("alert: invalid interval")

// Event is emitted on every firing so the UI can refresh its counter.
type Event struct {
	Count     int
	Completed bool
	At        time.Time
}

// Engine drives one interval session at a time. Each Start spawns a
// goroutine that waits out the interval, announces the firing, and
// re-arms itself until the target count is reached or Stop is called.
type Engine struct {
	mu       sync.Mutex
	settings Settings
	clock    Clock
	notifier notify.Notifier
	speaker  notify.Speaker
	out      chan Event
	stopCh   chan struct{}
	doneCh   chan struct{}
	dropped  uint64
}

func NewEngine(clock Clock, n notify.Notifier, s notify.Speaker) *Engine {
	if clock == nil {
		clock = systemClock{}
	}
	return &Engine{
		settings: Settings{State: StateIdle, Interval: DefaultIntervalMinutes},
		clock:    clock,
		notifier: n,
		speaker:  s,
		out:      make(chan Event, 8),
	}
}

func (e *Engine) C() <-chan Event {
	return e.out
}

// Snapshot returns a copy of the current session state.
func (e *Engine) Snapshot() Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

// Start begins (or resumes) a session with the given interval in
// minutes and an optional target count. The counter carries over from
// any previous stopped session.
func (e *Engine) Start(interval, target int) error {
	if interval <= 0 {
		return ErrInvalidInterval
	}

	e.mu.Lock()
	if e.settings.State == StateRunning {
		e.mu.Unlock()
		return nil
	}
	now := e.clock.Now()
	e.settings.Interval = interval
	e.settings.Target = target
	e.settings.State = StateRunning
	if e.settings.StartedAt == nil {
		e.settings.StartedAt = &now
	}
	stopCh := make(chan struct{})
	doneCh := make(chan struct{})
	e.stopCh = stopCh
	e.doneCh = doneCh
	wait := time.Duration(interval) * time.Minute
	e.mu.Unlock()

	go e.loop(wait, stopCh, doneCh)
	return nil
}

// Stop halts the timer without touching the counter or start time, so
// a later Start resumes the session.
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.settings.State != StateRunning {
		e.mu.Unlock()
		return
	}
	e.settings.State = StateIdle
	stopCh, doneCh := e.stopCh, e.doneCh
	e.mu.Unlock()

	close(stopCh)
	<-doneCh
}

// Reset zeroes the counter and restarts the clock in place. A running
// session keeps running with a fresh count.
func (e *Engine) Reset() {
	e.mu.Lock()
	now := e.clock.Now()
	e.settings.Counter = 0
	e.settings.StartedAt = &now
	if e.settings.State == StateCompleted {
		e.settings.State = StateIdle
	}
	e.mu.Unlock()
}

// Clear stops the session and wipes it: target, counter, and start time
// go, and the interval returns to its default.
func (e *Engine) Clear() {
	e.Stop()
	e.mu.Lock()
	e.settings = Settings{State: StateIdle, Interval: DefaultIntervalMinutes}
	e.mu.Unlock()
	_ = e.notifier.Cancel(notify.IntervalAlertID)
}

// Restore seeds the engine from a persisted session. The timer itself
// does not survive a restart: a session stored as running comes back
// idle with its counter and start time intact, ready to resume.
func (e *Engine) Restore(s Settings) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.settings.State == StateRunning {
		return
	}
	if s.Interval <= 0 {
		s.Interval = DefaultIntervalMinutes
	}
	if s.State != StateCompleted {
		s.State = StateIdle
	}
	e.settings = s
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop(wait time.Duration, stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	timer := e.clock.NewTimer(wait)
	defer drainStop(timer)
	for {
		select {
		case <-timer.C():
			if e.fire() {
				return
			}
			timer.Reset(wait)
		case <-stopCh:
			return
		}
	}
}

// fire advances the counter, announces it, and reports whether the
// target has been reached.
func (e *Engine) fire() bool {
	e.mu.Lock()
	if e.settings.State != StateRunning {
		e.mu.Unlock()
		return true
	}
	e.settings.Counter++
	count := e.settings.Counter
	done := e.settings.Completed()
	if done {
		e.settings.State = StateCompleted
	}
	e.mu.Unlock()

	phrase := fmt.Sprintf("Interval %d", count)
	_ = e.speaker.Speak(phrase)
	body := phrase
	if done {
		body = fmt.Sprintf("Interval %d. Target reached.", count)
	}
	_ = e.notifier.Post(notify.IntervalAlertID, "Interval Alert", body)

	select {
	case e.out <- Event{Count: count, Completed: done, At: e.clock.Now()}:
	default:
		atomic.AddUint64(&e.dropped, 1)
	}
	return done
}

func drainStop(timer Timer) {
	if !timer.Stop() {
		select {
		case <-timer.C():
		default:
		}
	}
}
