package model

import "time"

// NextOccurrence clones a repeating task onto its next scheduled day:
// the source date plus RepeatAgain calendar days, with month and year
// rollover handled by AddDate. The source task is never mutated; the clone
// gets a fresh identity and cleared completion flags.
//
// Returns false when the task has no interval or no date.
func NextOccurrence(t Task, newID func() string) (Task, bool) {
	if t.RepeatAgain == nil || t.Date == nil {
		return Task{}, false
	}
	next := t.Date.AddDate(0, 0, *t.RepeatAgain)
	return respawn(t, next, false, newID), true
}

// CarryOverOccurrence produces the one-day makeup slot for a missed
// multi-day-interval task: dated exactly one day after the source and
// flagged Reassign so it cannot itself chain further carry-overs. Tasks
// with a one-day interval get no makeup slot; their normal cadence already
// lands tomorrow.
func CarryOverOccurrence(t Task, newID func() string) (Task, bool) {
	if t.RepeatAgain == nil || t.Date == nil || *t.RepeatAgain <= 1 {
		return Task{}, false
	}
	next := t.Date.AddDate(0, 0, 1)
	return respawn(t, next, true, newID), true
}

// ShouldRecur gates recurrence generation on the mutation site: only a
// rising edge of Completed or NotCompleted triggers, and carried-over
// tasks never spawn again from the same completion event.
func ShouldRecur(before, after Task) bool {
	if before.Reassign {
		return false
	}
	completedRose := !before.Completed && after.Completed
	missedRose := !before.NotCompleted && after.NotCompleted
	return completedRose || missedRose
}

// ShouldCarryOver holds only on the rising edge of NotCompleted; a task
// completed on time needs no makeup slot.
func ShouldCarryOver(before, after Task) bool {
	if before.Reassign {
		return false
	}
	return !before.NotCompleted && after.NotCompleted
}

func respawn(t Task, date time.Time, reassign bool, newID func() string) Task {
	out := t
	out.ID = newID()
	out.Date = &date
	out.Completed = false
	out.NotCompleted = false
	out.Reassign = reassign
	if t.Tags != nil {
		out.Tags = append([]string(nil), t.Tags...)
	}
	return out
}
