package model

import (
	"errors"
	"strings"
	"time"

	"focusflow/internal/timeutil"
)

var ErrInvalidInterval = errors.New("model: invalid repeat interval")

// Task is a single scheduled (or floating) entry on the planner. Times are
// clock strings in "H:MM"/"HH:MM" form; a nil Date keeps the task out of
// every day-scoped view.
//
// Completed and NotCompleted are independent flags, not a tri-state: the
// source application toggles them separately and a record can legitimately
// carry both. Aggregation gives Completed precedence.
type Task struct {
	ID              string
	Title           string
	Tags            []string
	Notes           string
	PersistentNotes string
	StartTime       string
	EndTime         string
	Weight          float64
	Completed       bool
	NotCompleted    bool
	Reassign        bool
	RepeatAgain     *int
	Date            *time.Time
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if t.RepeatAgain != nil && *t.RepeatAgain <= 0 {
		return ErrInvalidInterval
	}
	return nil
}

// Repeating reports whether the task participates in habit tracking and
// recurrence generation.
func (t Task) Repeating() bool {
	return t.RepeatAgain != nil
}

// StartMinutes and EndMinutes tolerate garbled clock strings by coercing
// them to minute zero.
func (t Task) StartMinutes() int { return timeutil.TimeToMinutes(t.StartTime) }
func (t Task) EndMinutes() int   { return timeutil.TimeToMinutes(t.EndTime) }

// DurationMinutes is wrap-adjusted: a task whose end precedes its start
// crosses midnight.
func (t Task) DurationMinutes() int {
	return timeutil.WrapDuration(t.StartMinutes(), t.EndMinutes())
}

// ScheduledOn reports whether the task falls on the given calendar day.
// Undated tasks are on no day.
func (t Task) ScheduledOn(day time.Time) bool {
	if t.Date == nil {
		return false
	}
	return SameDay(*t.Date, day)
}

func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ParseTags splits a comma-joined tag string into trimmed tokens, dropping
// empties. The comma form exists only at the persistence and presentation
// boundaries; in memory tags are a genuine ordered set.
func ParseTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	out := make([]string, 0, 4)
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		out = append(out, token)
	}
	return out
}

// JoinTags is the inverse boundary helper; no tags yields the empty string.
func JoinTags(tags []string) string {
	return strings.Join(tags, ",")
}

// HasTag matches case-insensitively.
func (t Task) HasTag(tag string) bool {
	for _, have := range t.Tags {
		if strings.EqualFold(have, tag) {
			return true
		}
	}
	return false
}
