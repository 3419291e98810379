package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"focusflow/internal/stats"
)

func (m Model) handleHabitsKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "j", "down":
		if m.Habits.Cursor < len(m.Habits.Names)-1 {
			m.Habits.Cursor++
			m.reloadHabits()
		}
	case "k", "up":
		if m.Habits.Cursor > 0 {
			m.Habits.Cursor--
			m.reloadHabits()
		}
	case "f":
		m.Habits.Mode = nextFilterMode(m.Habits.Mode)
		m.Habits.Cursor = 0
		m.reloadHabits()
	case "+", "=":
		m.Habits.RangeDays += 7
		m.reloadHabits()
	case "-":
		if m.Habits.RangeDays > 7 {
			m.Habits.RangeDays -= 7
			m.reloadHabits()
		}
	}
	return m
}

func nextFilterMode(mode stats.FilterMode) stats.FilterMode {
	switch mode {
	case stats.FilterAll:
		return stats.FilterRoutines
	case stats.FilterRoutines:
		return stats.FilterRepeats
	default:
		return stats.FilterAll
	}
}
