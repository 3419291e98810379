// Package timeline computes the day-view layout: which 5-minute slot a
// task anchors to, how tall it renders, and which horizontal lane it
// occupies when tasks overlap.
package timeline

import (
	"sort"
	"time"

	"focusflow/internal/model"
	"focusflow/internal/timeutil"
)

const (
	// SlotMinutes is the grid granularity; SlotCount covers 00:00-24:00.
	SlotMinutes = 5
	SlotCount   = timeutil.MinutesPerDay / SlotMinutes

	// SlotHeight is the render height of one empty slot row; anchor rows
	// never shrink below MinTaskHeight so short tasks stay selectable.
	SlotHeight    = 10.0
	MinTaskHeight = 40.0
)

type Slot struct {
	Hour   int
	Minute int
}

func (s Slot) MinuteOfDay() int { return s.Hour*60 + s.Minute }

func (s Slot) Label() string { return timeutil.SlotLabel(s.Hour, s.Minute) }

// Slots enumerates the fixed 5-minute grid for one day.
func Slots() []Slot {
	out := make([]Slot, 0, SlotCount)
	for hour := 0; hour < 24; hour++ {
		for minute := 0; minute < 60; minute += SlotMinutes {
			out = append(out, Slot{Hour: hour, Minute: minute})
		}
	}
	return out
}

// Placement is one task's computed geometry for the day view. WidthFrac
// and OffsetFrac are fractions of the container width.
type Placement struct {
	Task       model.Task
	SlotIndex  int
	Lane       int
	Lanes      int
	Height     float64
	WidthFrac  float64
	OffsetFrac float64
}

// Layout positions every task scheduled on the given day. A task is
// anchored to the slot whose minute-of-day equals its start minute; slots
// it merely spans get no placement of their own.
//
// The overlap set for each task is computed locally: all same-day tasks
// whose raw minute interval intersects its own, itself included, ordered
// by (start, title). Lane is the task's index in its own set and lane
// count the set's size. Two tasks that both overlap a third but not each
// other can therefore land in the same lane; that matches the upstream
// visual contract and is kept as-is rather than replaced with a global
// interval coloring.
func Layout(tasks []model.Task, day time.Time) []Placement {
	dayTasks := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ScheduledOn(day) {
			dayTasks = append(dayTasks, t)
		}
	}
	sortByStartThenTitle(dayTasks)

	out := make([]Placement, 0, len(dayTasks))
	for _, t := range dayTasks {
		start := t.StartMinutes()
		group := overlapSet(dayTasks, t)
		lane := 0
		for i, member := range group {
			if member.ID == t.ID {
				lane = i
				break
			}
		}
		lanes := len(group)
		height := float64(t.DurationMinutes()) / SlotMinutes * SlotHeight
		if height < MinTaskHeight {
			height = MinTaskHeight
		}
		out = append(out, Placement{
			Task:       t,
			SlotIndex:  start / SlotMinutes,
			Lane:       lane,
			Lanes:      lanes,
			Height:     height,
			WidthFrac:  1.0 / float64(lanes),
			OffsetFrac: float64(lane) / float64(lanes),
		})
	}
	return out
}

// overlapSet gathers every task intersecting t's interval, t included.
// Raw minute comparison on purpose: a cross-midnight end reads as an
// early-morning minute here even though duration math wraps it.
func overlapSet(dayTasks []model.Task, t model.Task) []model.Task {
	tStart, tEnd := t.StartMinutes(), t.EndMinutes()
	group := make([]model.Task, 0, 2)
	for _, other := range dayTasks {
		oStart, oEnd := other.StartMinutes(), other.EndMinutes()
		if oStart < tEnd && oEnd > tStart {
			group = append(group, other)
		}
	}
	sortByStartThenTitle(group)
	return group
}

func sortByStartThenTitle(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		si, sj := tasks[i].StartMinutes(), tasks[j].StartMinutes()
		if si == sj {
			return tasks[i].Title < tasks[j].Title
		}
		return si < sj
	})
}

// RescheduleToSlot applies the drag-and-drop contract: the dropped task
// starts at the slot's minute, runs for a fixed hour regardless of its
// previous duration, and moves to the day being viewed.
func RescheduleToSlot(t model.Task, slot Slot, day time.Time) model.Task {
	start := slot.MinuteOfDay()
	end := start + 60
	out := t
	out.StartTime = timeutil.MinutesToTimeString(start)
	out.EndTime = timeutil.MinutesToTimeString(end % timeutil.MinutesPerDay)
	d := day
	out.Date = &d
	return out
}

// CurrentTimeOffset places the now-line within the rendered day, in the
// same units as Placement.Height.
func CurrentTimeOffset(now time.Time) float64 {
	minutes := now.Hour()*60 + now.Minute()
	return float64(minutes) / SlotMinutes * SlotHeight
}

// IsCurrentTask reports whether now falls inside the task's interval on
// the viewed day. Only meaningful when viewing today.
func IsCurrentTask(t model.Task, now time.Time, day time.Time) bool {
	if !model.SameDay(now, day) {
		return false
	}
	minutes := now.Hour()*60 + now.Minute()
	return minutes >= t.StartMinutes() && minutes < t.EndMinutes()
}
