package update

import (
	"context"
	"strconv"
	"time"

	"focusflow/internal/model"
	"focusflow/internal/stats"
	"focusflow/internal/timeline"
)

func (m *Model) reloadCalendar() {
	tasks, err := m.svc.TasksForDay(context.Background(), m.Calendar.Day)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.Calendar.Tasks = tasks
	m.Calendar.Placements = timeline.Layout(tasks, m.Calendar.Day)
	if m.Calendar.Cursor >= len(m.Calendar.Placements) {
		m.Calendar.Cursor = len(m.Calendar.Placements) - 1
	}
	if m.Calendar.Cursor < 0 {
		m.Calendar.Cursor = 0
	}
}

func (m *Model) reloadHabits() {
	habits, err := m.svc.Habits(context.Background())
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.Habits.Names = stats.HabitNames(habits, m.Habits.Mode)
	if m.Habits.Cursor >= len(m.Habits.Names) {
		m.Habits.Cursor = len(m.Habits.Names) - 1
	}
	if m.Habits.Cursor < 0 {
		m.Habits.Cursor = 0
	}

	m.Habits.Trail = nil
	m.Habits.Stats = stats.HabitStats{}
	if len(m.Habits.Names) == 0 {
		return
	}
	to := today()
	from := to.AddDate(0, 0, -(m.Habits.RangeDays - 1))
	m.Habits.Trail, m.Habits.Stats = stats.HabitRange(habits, m.Habits.Names[m.Habits.Cursor], from, to)
}

func (m *Model) reloadPoints() {
	to := today()
	from := to.AddDate(0, 0, -(m.Points.RangeDays - 1))
	tasks, err := m.svc.TasksInRange(context.Background(), from, to)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.Points.Grid = stats.PointsRange(tasks, from, to)
	m.Points.Tags = stats.AllTags(tasks)
	if m.Points.TagCursor >= len(m.Points.Tags) {
		m.Points.TagCursor = len(m.Points.Tags) - 1
	}
	if m.Points.TagCursor < 0 {
		m.Points.TagCursor = 0
	}

	var filter []string
	if len(m.Points.Tags) > 0 {
		filter = []string{m.Points.Tags[m.Points.TagCursor]}
	}
	m.Points.TagDays, m.Points.TagTotal = stats.TagHours(tasks, filter, from, to)
}

func (m *Model) reloadAlerts() {
	m.Alerts.Settings = m.engine.Snapshot()
	if m.Alerts.Interval == "" && m.Alerts.Settings.Interval > 0 {
		m.Alerts.Interval = strconv.Itoa(m.Alerts.Settings.Interval)
	}
	if m.Alerts.Target == "" && m.Alerts.Settings.Target > 0 {
		m.Alerts.Target = strconv.Itoa(m.Alerts.Settings.Target)
	}
}

func (m *Model) persistAlerts() {
	m.svc.SaveAlertSettings(context.Background(), m.engine.Snapshot())
}

func (m *Model) announceBoundaries(at time.Time) {
	phrases := m.svc.CheckTaskBoundaries(context.Background(), at)
	if len(phrases) > 0 {
		m.Status = StatusBar{Text: phrases[len(phrases)-1], IsError: false}
	}
}

func (m *Model) selectedTask() (model.Task, bool) {
	if m.Calendar.Cursor < 0 || m.Calendar.Cursor >= len(m.Calendar.Placements) {
		return model.Task{}, false
	}
	return m.Calendar.Placements[m.Calendar.Cursor].Task, true
}
