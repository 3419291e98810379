// Package stats derives the dashboard views: habit completion over a date
// range, daily point totals, and per-tag time spent. Everything operates
// on plain task slices; nothing here touches storage.
package stats

import (
	"sort"
	"strings"
	"time"

	"focusflow/internal/model"
)

type HabitStatus string

const (
	StatusCompleted HabitStatus = "completed"
	StatusMissed    HabitStatus = "missed"
	StatusNoData    HabitStatus = "no_data"
)

// FilterMode partitions habit names by the literal token "routine" in the
// title. This is a naming convention, not a stored category.
type FilterMode string

const (
	FilterAll      FilterMode = "all"
	FilterRoutines FilterMode = "routines"
	FilterRepeats  FilterMode = "repeats"
)

type HabitStats struct {
	Completed  int
	Missed     int
	Total      int
	Percentage float64
}

type HabitDay struct {
	Date   time.Time
	Status HabitStatus
}

// HabitTasks narrows a task set to the habit view: tasks carrying a repeat
// interval, optionally partitioned by the routine naming convention.
func HabitTasks(tasks []model.Task, mode FilterMode) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.Repeating() {
			continue
		}
		isRoutine := strings.Contains(strings.ToLower(t.Title), "routine")
		switch mode {
		case FilterRoutines:
			if !isRoutine {
				continue
			}
		case FilterRepeats:
			if isRoutine {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// HabitNames lists the distinct titles among filtered habit tasks, sorted.
func HabitNames(tasks []model.Task, mode FilterMode) []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, t := range HabitTasks(tasks, mode) {
		if !seen[t.Title] {
			seen[t.Title] = true
			names = append(names, t.Title)
		}
	}
	sort.Strings(names)
	return names
}

// DayStatus resolves one habit's state for one day. Completed wins over
// missed when both flags appear across the day's matching tasks.
func DayStatus(tasks []model.Task, title string, day time.Time) HabitStatus {
	anyMissed := false
	for _, t := range tasks {
		if t.Title != title || !t.ScheduledOn(day) {
			continue
		}
		if t.Completed {
			return StatusCompleted
		}
		if t.NotCompleted {
			anyMissed = true
		}
	}
	if anyMissed {
		return StatusMissed
	}
	return StatusNoData
}

// HabitRange walks [from, to] inclusive and produces the per-day status
// trail plus aggregate stats. Days without data stay in the trail but are
// excluded from the percentage denominator.
func HabitRange(tasks []model.Task, title string, from, to time.Time) ([]HabitDay, HabitStats) {
	days := DateRange(from, to)
	trail := make([]HabitDay, 0, len(days))
	var stats HabitStats
	for _, day := range days {
		status := DayStatus(tasks, title, day)
		trail = append(trail, HabitDay{Date: day, Status: status})
		switch status {
		case StatusCompleted:
			stats.Completed++
		case StatusMissed:
			stats.Missed++
		}
	}
	stats.Total = stats.Completed + stats.Missed
	if stats.Total > 0 {
		stats.Percentage = float64(stats.Completed) / float64(stats.Total) * 100
	}
	return trail, stats
}

// ActiveDays filters a habit's trail down to days that actually carry a
// completed or missed mark, for the dashboard's day grid.
func ActiveDays(trail []HabitDay) []HabitDay {
	out := make([]HabitDay, 0, len(trail))
	for _, d := range trail {
		if d.Status != StatusNoData {
			out = append(out, d)
		}
	}
	return out
}

// DateRange enumerates calendar days from from to to inclusive, at
// midnight in from's location. An inverted range is empty.
func DateRange(from, to time.Time) []time.Time {
	out := make([]time.Time, 0)
	y, m, d := from.Date()
	cur := time.Date(y, m, d, 0, 0, 0, 0, from.Location())
	ey, em, ed := to.Date()
	end := time.Date(ey, em, ed, 0, 0, 0, 0, to.Location())
	for !cur.After(end) {
		out = append(out, cur)
		cur = cur.AddDate(0, 0, 1)
	}
	return out
}
