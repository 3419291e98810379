package update

import (
	"fmt"

	"focusflow/internal/stats"
	"focusflow/internal/timeline"
	"focusflow/internal/views"
)

func (m Model) renderTimelinePane() string {
	rows := make([]views.TimelineRow, 0, len(m.Calendar.Placements))
	for _, p := range m.Calendar.Placements {
		rows = append(rows, views.TimelineRow{
			Label:        fmt.Sprintf("%s-%s", p.Task.StartTime, p.Task.EndTime),
			Title:        p.Task.Title,
			Tags:         p.Task.Tags,
			Weight:       p.Task.Weight,
			Completed:    p.Task.Completed,
			NotCompleted: p.Task.NotCompleted,
			Reassigned:   p.Task.Reassign,
			Current:      timeline.IsCurrentTask(p.Task, m.Now, m.Calendar.Day),
			Lane:         p.Lane,
			Lanes:        p.Lanes,
		})
	}
	points := stats.DayPoints(m.Calendar.Tasks, m.Calendar.Day)
	return views.RenderTimelinePanel(views.TimelinePanelData{
		Day:           m.Calendar.Day,
		Rows:          rows,
		Cursor:        m.Calendar.Cursor,
		MoveMode:      m.Calendar.MoveMode,
		MoveLabel:     m.Calendar.MoveSlot.Label(),
		PointsEarned:  points.Earned,
		PointsTotal:   points.Total,
		PointsPercent: points.Percentage,
	})
}

func (m Model) renderTaskDetailPane() string {
	task, ok := m.selectedTask()
	if !ok {
		return views.RenderTaskDetail(views.TaskDetailData{})
	}
	repeat := 0
	if task.RepeatAgain != nil {
		repeat = *task.RepeatAgain
	}
	return views.RenderTaskDetail(views.TaskDetailData{
		Title:           task.Title,
		TimeRange:       fmt.Sprintf("%s - %s", task.StartTime, task.EndTime),
		Tags:            task.Tags,
		Weight:          task.Weight,
		Notes:           task.Notes,
		PersistentNotes: task.PersistentNotes,
		RepeatDays:      repeat,
	})
}

func (m Model) renderEntryIfActive() string {
	if !m.EntryActive {
		return ""
	}
	return fmt.Sprintf("\n\nadd> %s\n(enter save, esc cancel)", m.quickAddInput.Value())
}

func (m Model) renderNotesIfActive() string {
	if !m.Notes.Active {
		return ""
	}
	kind := "notes"
	if m.Notes.Persistent {
		kind = "sticky notes"
	}
	return fmt.Sprintf("\n\nediting %s:\n%s\n(ctrl+s save, esc cancel)", kind, m.notesArea.View())
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return "\n\n" + views.RenderHelp()
}

func (m Model) renderHabitsPane() string {
	return views.RenderHabitsPanel(views.HabitsPanelData{
		Mode:      string(m.Habits.Mode),
		RangeDays: m.Habits.RangeDays,
		Names:     m.Habits.Names,
		Cursor:    m.Habits.Cursor,
	})
}

func (m Model) renderHabitDetailPane() string {
	name := ""
	if m.Habits.Cursor < len(m.Habits.Names) {
		name = m.Habits.Names[m.Habits.Cursor]
	}
	trail := make([]views.HabitCell, 0, len(m.Habits.Trail))
	for _, day := range m.Habits.Trail {
		trail = append(trail, views.HabitCell{Date: day.Date, Symbol: habitSymbol(day.Status)})
	}
	return views.RenderHabitDetail(views.HabitDetailData{
		Name:       name,
		Trail:      trail,
		Completed:  m.Habits.Stats.Completed,
		Missed:     m.Habits.Stats.Missed,
		Percentage: m.Habits.Stats.Percentage,
	})
}

func (m Model) renderPointsPane() string {
	days := make([]views.PointsRow, 0, len(m.Points.Grid))
	for _, day := range m.Points.Grid {
		days = append(days, views.PointsRow{
			Date:       day.Date,
			Earned:     day.Earned,
			Total:      day.Total,
			Percentage: day.Percentage,
		})
	}
	return views.RenderPointsPanel(views.PointsPanelData{
		RangeDays: m.Points.RangeDays,
		Days:      days,
	})
}

func (m Model) renderTagHoursPane() string {
	tag := ""
	if m.Points.TagCursor < len(m.Points.Tags) {
		tag = m.Points.Tags[m.Points.TagCursor]
	}
	days := make([]views.TagHoursRow, 0, len(m.Points.TagDays))
	for _, day := range m.Points.TagDays {
		days = append(days, views.TagHoursRow{Date: day.Date, Hours: day.Hours})
	}
	return views.RenderTagHours(views.TagHoursData{
		Tag:   tag,
		Days:  days,
		Total: m.Points.TagTotal,
	})
}

func (m Model) renderAlertsPane() string {
	return views.RenderAlertsPanel(views.AlertsPanelData{
		State:         string(m.Alerts.Settings.State),
		Counter:       m.Alerts.Settings.Counter,
		Target:        m.Alerts.Settings.Target,
		StartedAt:     m.Alerts.Settings.StartedAt,
		IntervalInput: m.Alerts.Interval,
		TargetInput:   m.Alerts.Target,
		Field:         m.Alerts.Field,
		Editing:       m.Alerts.Editing,
	})
}

func habitSymbol(status stats.HabitStatus) string {
	switch status {
	case stats.StatusCompleted:
		return "x"
	case stats.StatusMissed:
		return "-"
	default:
		return "."
	}
}
