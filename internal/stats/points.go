package stats

import (
	"sort"
	"strings"
	"time"

	"focusflow/internal/model"
)

type PointsStats struct {
	Earned     float64
	Total      float64
	Percentage float64
}

type PointsDay struct {
	Date time.Time
	PointsStats
}

// DayPoints sums task weights for one day across every dated task,
// recurring or not. Earned counts only completed tasks.
func DayPoints(tasks []model.Task, day time.Time) PointsStats {
	var out PointsStats
	for _, t := range tasks {
		if !t.ScheduledOn(day) {
			continue
		}
		out.Total += t.Weight
		if t.Completed {
			out.Earned += t.Weight
		}
	}
	if out.Total > 0 {
		out.Percentage = out.Earned / out.Total * 100
	}
	return out
}

// PointsRange produces the dashboard grid for [from, to] inclusive.
func PointsRange(tasks []model.Task, from, to time.Time) []PointsDay {
	days := DateRange(from, to)
	out := make([]PointsDay, 0, len(days))
	for _, day := range days {
		out = append(out, PointsDay{Date: day, PointsStats: DayPoints(tasks, day)})
	}
	return out
}

// AllTags collects the distinct lowercase tags across a task set, sorted.
func AllTags(tasks []model.Task) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, t := range tasks {
		for _, tag := range t.Tags {
			tag = strings.ToLower(strings.TrimSpace(tag))
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			out = append(out, tag)
		}
	}
	sort.Strings(out)
	return out
}

type TagHoursDay struct {
	Date  time.Time
	Hours float64
}

// TagHours charts completed time per day over [from, to], optionally
// restricted to tasks carrying at least one of the given tags. Duration
// here is the raw end-start difference, not wrap-adjusted: this mirrors
// the analytics chart it feeds, where a cross-midnight task contributes
// negative minutes rather than a 20-hour bar.
func TagHours(tasks []model.Task, tags []string, from, to time.Time) ([]TagHoursDay, float64) {
	matches := func(t model.Task) bool {
		if len(tags) == 0 {
			return true
		}
		for _, tag := range tags {
			if t.HasTag(tag) {
				return true
			}
		}
		return false
	}

	days := DateRange(from, to)
	out := make([]TagHoursDay, 0, len(days))
	total := 0.0
	for _, day := range days {
		minutes := 0
		for _, t := range tasks {
			if !t.Completed || !t.ScheduledOn(day) || !matches(t) {
				continue
			}
			minutes += t.EndMinutes() - t.StartMinutes()
		}
		hours := float64(minutes) / 60
		out = append(out, TagHoursDay{Date: day, Hours: hours})
		total += hours
	}
	return out, total
}
