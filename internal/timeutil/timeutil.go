// Package timeutil holds the clock-string arithmetic shared by the
// timeline, the aggregators, and the planner. Task times are stored as
// "H:MM"/"HH:MM" strings; everything internal works in minute-of-day.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const MinutesPerDay = 24 * 60

// TimeToMinutes converts "H:MM" or "HH:MM" to minute-of-day. Malformed
// input (empty, wrong arity, non-numeric) yields 0 rather than an error;
// garbled task times render at midnight instead of failing.
func TimeToMinutes(s string) int {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0
	}
	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0
	}
	return hours*60 + minutes
}

// MinutesToTimeString is the inverse of TimeToMinutes, without zero-padding
// the hour.
func MinutesToTimeString(m int) string {
	return fmt.Sprintf("%d:%02d", m/60, m%60)
}

// FormatToAMPM converts a 24-hour clock string to 12-hour display form.
// Malformed input is passed through unchanged.
func FormatToAMPM(s string) string {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return s
	}
	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hours < 0 || hours > 23 {
		return s
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || minutes < 0 || minutes > 59 {
		return s
	}
	period := "AM"
	if hours >= 12 {
		period = "PM"
	}
	display := hours % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minutes, period)
}

// MinuteOfDay returns how many minutes have passed since midnight in
// t's location.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// RoundToNearestFiveMinutes floors the minute component to the lower
// multiple of five and zeroes seconds, matching the timeline's 5-minute
// slot grid.
func RoundToNearestFiveMinutes(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, t.Hour(), t.Minute()-t.Minute()%5, 0, 0, t.Location())
}

// WrapDuration returns the duration in minutes from start to end, wrapping
// across midnight when end <= start.
func WrapDuration(start, end int) int {
	if end > start {
		return end - start
	}
	return (MinutesPerDay - start) + end
}

// SlotLabel renders the gutter label for a timeline slot. Hour boundaries
// carry the AM/PM suffix; intermediate slots show only hour:minute.
func SlotLabel(hour, minute int) string {
	display := hour % 12
	if display == 0 {
		display = 12
	}
	if minute == 0 {
		period := "AM"
		if hour >= 12 {
			period = "PM"
		}
		return fmt.Sprintf("%d:00 %s", display, period)
	}
	return fmt.Sprintf("%d:%02d", display, minute)
}
