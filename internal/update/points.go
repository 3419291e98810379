package update

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handlePointsKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "j", "down":
		if m.Points.TagCursor < len(m.Points.Tags)-1 {
			m.Points.TagCursor++
			m.reloadPoints()
		}
	case "k", "up":
		if m.Points.TagCursor > 0 {
			m.Points.TagCursor--
			m.reloadPoints()
		}
	case "+", "=":
		m.Points.RangeDays += 7
		m.reloadPoints()
	case "-":
		if m.Points.RangeDays > 7 {
			m.Points.RangeDays -= 7
			m.reloadPoints()
		}
	}
	return m
}
