// Package views renders plain data structs into terminal panes. Render
// funcs are pure so screen content can be asserted in tests without a
// running program.
package views

import (
	"fmt"
	"strings"
	"time"
)

type TimelineRow struct {
	Label        string
	Title        string
	Tags         []string
	Weight       float64
	Completed    bool
	NotCompleted bool
	Reassigned   bool
	Current      bool
	Lane         int
	Lanes        int
}

type TimelinePanelData struct {
	Day           time.Time
	Rows          []TimelineRow
	Cursor        int
	MoveMode      bool
	MoveLabel     string
	PointsEarned  float64
	PointsTotal   float64
	PointsPercent float64
}

func RenderTimelinePanel(data TimelinePanelData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Timeline %s\n", data.Day.Format("Mon Jan 2 2006"))
	fmt.Fprintf(&b, "points %.1f/%.1f (%.1f%%)\n\n", data.PointsEarned, data.PointsTotal, data.PointsPercent)

	if len(data.Rows) == 0 {
		b.WriteString("no tasks scheduled\n")
	}
	for i, row := range data.Rows {
		cursor := "  "
		if i == data.Cursor {
			cursor = "> "
		}
		mark := "[ ]"
		switch {
		case row.Completed:
			mark = "[x]"
		case row.NotCompleted:
			mark = "[-]"
		}
		lane := ""
		if row.Lanes > 1 {
			lane = fmt.Sprintf(" (%d/%d)", row.Lane+1, row.Lanes)
		}
		now := ""
		if row.Current {
			now = " <- now"
		}
		reassigned := ""
		if row.Reassigned {
			reassigned = " ~carried"
		}
		fmt.Fprintf(&b, "%s%s %s %s%s%s%s\n", cursor, mark, row.Label, row.Title, lane, reassigned, now)
		if i == data.Cursor && len(row.Tags) > 0 {
			fmt.Fprintf(&b, "      #%s  w=%.1f\n", strings.Join(row.Tags, " #"), row.Weight)
		}
	}

	if data.MoveMode {
		fmt.Fprintf(&b, "\nmoving to %s (enter drop, esc cancel)\n", data.MoveLabel)
	}
	b.WriteString("\nactions: a add | c done | x skip | m move | n notes | N sticky notes | d delete | h/l day | t today")
	return b.String()
}

type TaskDetailData struct {
	Title           string
	TimeRange       string
	Tags            []string
	Weight          float64
	Notes           string
	PersistentNotes string
	RepeatDays      int
}

func RenderTaskDetail(data TaskDetailData) string {
	if data.Title == "" {
		return "no task selected"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s", data.Title, data.TimeRange)
	if data.RepeatDays > 0 {
		fmt.Fprintf(&b, "  repeats every %d day(s)", data.RepeatDays)
	}
	b.WriteString("\n")
	if len(data.Tags) > 0 {
		fmt.Fprintf(&b, "#%s\n", strings.Join(data.Tags, " #"))
	}
	fmt.Fprintf(&b, "weight %.1f\n", data.Weight)
	if data.Notes != "" {
		b.WriteString("\nnotes:\n")
		b.WriteString(RenderMarkdown(data.Notes))
		b.WriteString("\n")
	}
	if data.PersistentNotes != "" {
		b.WriteString("\nsticky notes:\n")
		b.WriteString(RenderMarkdown(data.PersistentNotes))
		b.WriteString("\n")
	}
	return b.String()
}

type HabitsPanelData struct {
	Mode      string
	RangeDays int
	Names     []string
	Cursor    int
}

func RenderHabitsPanel(data HabitsPanelData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Habits (%s, last %d days)\n\n", data.Mode, data.RangeDays)
	if len(data.Names) == 0 {
		b.WriteString("no repeating tasks yet\n")
	}
	for i, name := range data.Names {
		cursor := "  "
		if i == data.Cursor {
			cursor = "> "
		}
		fmt.Fprintf(&b, "%s%s\n", cursor, name)
	}
	b.WriteString("\nactions: f filter | +/- range | j/k select")
	return b.String()
}

type HabitCell struct {
	Date   time.Time
	Symbol string
}

type HabitDetailData struct {
	Name       string
	Trail      []HabitCell
	Completed  int
	Missed     int
	Percentage float64
}

func RenderHabitDetail(data HabitDetailData) string {
	if data.Name == "" {
		return "no habit selected"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", data.Name)
	for _, cell := range data.Trail {
		fmt.Fprintf(&b, "%s %s\n", cell.Date.Format("Jan 02"), cell.Symbol)
	}
	fmt.Fprintf(&b, "\ncompleted %d, missed %d, %.1f%%\n", data.Completed, data.Missed, data.Percentage)
	return b.String()
}

type PointsRow struct {
	Date       time.Time
	Earned     float64
	Total      float64
	Percentage float64
}

type PointsPanelData struct {
	RangeDays int
	Days      []PointsRow
}

func RenderPointsPanel(data PointsPanelData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Points (last %d days)\n\n", data.RangeDays)
	for _, row := range data.Days {
		fmt.Fprintf(&b, "%s %s %5.1f/%-5.1f %5.1f%%\n",
			row.Date.Format("Jan 02"), bar(row.Percentage, 20), row.Earned, row.Total, row.Percentage)
	}
	b.WriteString("\nactions: +/- range | j/k tag")
	return b.String()
}

type TagHoursRow struct {
	Date  time.Time
	Hours float64
}

type TagHoursData struct {
	Tag   string
	Days  []TagHoursRow
	Total float64
}

func RenderTagHours(data TagHoursData) string {
	var b strings.Builder
	if data.Tag == "" {
		b.WriteString("Completed hours (all tags)\n\n")
	} else {
		fmt.Fprintf(&b, "Completed hours #%s\n\n", data.Tag)
	}
	for _, row := range data.Days {
		fmt.Fprintf(&b, "%s %5.1fh\n", row.Date.Format("Jan 02"), row.Hours)
	}
	fmt.Fprintf(&b, "\ntotal %.1fh\n", data.Total)
	return b.String()
}

type AlertsPanelData struct {
	State         string
	Counter       int
	Target        int
	StartedAt     *time.Time
	IntervalInput string
	TargetInput   string
	Field         int
	Editing       bool
}

func RenderAlertsPanel(data AlertsPanelData) string {
	var b strings.Builder
	b.WriteString("Interval Alerts\n\n")
	fmt.Fprintf(&b, "state: %s\n", data.State)
	if data.Target > 0 {
		fmt.Fprintf(&b, "progress: %d/%d intervals\n", data.Counter, data.Target)
	} else {
		fmt.Fprintf(&b, "progress: %d intervals\n", data.Counter)
	}
	if data.StartedAt != nil {
		fmt.Fprintf(&b, "started: %s\n", data.StartedAt.Format("15:04:05"))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s interval minutes: %s\n", fieldMarker(data.Field == 0), data.IntervalInput)
	fmt.Fprintf(&b, "%s target count:     %s\n", fieldMarker(data.Field == 1), data.TargetInput)
	if data.Editing {
		b.WriteString("\nediting: digits append, enter done, esc cancel")
	}
	b.WriteString("\nactions: i interval | t target | s start | S stop | r reset | C clear")
	return b.String()
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("cmd> %s\n(add | ai | goto | range | retag | drop, esc to close)", input)
}

func RenderHelp() string {
	var b strings.Builder
	b.WriteString("Help\n\n")
	b.WriteString("1-4 switch views, / command palette, ? toggle help, q quit\n")
	b.WriteString("calendar: j/k select, h/l change day, t today, a quick add\n")
	b.WriteString("          c complete, x skip, m move, d delete, n/N notes\n")
	b.WriteString("habits:   f cycle filter, +/- range\n")
	b.WriteString("points:   j/k tag, +/- range\n")
	b.WriteString("alerts:   i/t edit fields, s start, S stop, r reset, C clear\n")
	return b.String()
}

func bar(percentage float64, width int) string {
	if percentage < 0 {
		percentage = 0
	}
	if percentage > 100 {
		percentage = 100
	}
	filled := int(percentage / 100 * float64(width))
	return strings.Repeat("#", filled) + strings.Repeat(".", width-filled)
}

func fieldMarker(active bool) string {
	if active {
		return ">"
	}
	return " "
}
