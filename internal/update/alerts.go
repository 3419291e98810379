package update

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// handleAlertsKey drives the interval alert controls. Field editing is
// an explicit submode so plain digits stay free for view switching.
func (m Model) handleAlertsKey(msg tea.KeyMsg) Model {
	key := msg.String()

	if m.Alerts.Editing {
		switch {
		case len(key) == 1 && key >= "0" && key <= "9":
			if m.Alerts.Field == 0 {
				m.Alerts.Interval += key
			} else {
				m.Alerts.Target += key
			}
		case key == "backspace":
			if m.Alerts.Field == 0 {
				m.Alerts.Interval = trimLast(m.Alerts.Interval)
			} else {
				m.Alerts.Target = trimLast(m.Alerts.Target)
			}
		case key == "enter", key == "esc":
			m.Alerts.Editing = false
		}
		return m
	}

	switch key {
	case "i":
		m.Alerts.Field = 0
		m.Alerts.Interval = ""
		m.Alerts.Editing = true
	case "t":
		m.Alerts.Field = 1
		m.Alerts.Target = ""
		m.Alerts.Editing = true
	case "s":
		interval, _ := strconv.Atoi(strings.TrimSpace(m.Alerts.Interval))
		target, _ := strconv.Atoi(strings.TrimSpace(m.Alerts.Target))
		if err := m.engine.Start(interval, target); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
		m.Status = StatusBar{Text: "interval alert started", IsError: false}
		m.reloadAlerts()
		m.persistAlerts()
	case "S":
		m.engine.Stop()
		m.Status = StatusBar{Text: "interval alert stopped", IsError: false}
		m.reloadAlerts()
		m.persistAlerts()
	case "r":
		m.engine.Reset()
		m.Status = StatusBar{Text: "interval counter reset", IsError: false}
		m.reloadAlerts()
		m.persistAlerts()
	case "C":
		m.engine.Clear()
		m.Alerts.Interval = ""
		m.Alerts.Target = ""
		m.Status = StatusBar{Text: "interval alert cleared", IsError: false}
		m.reloadAlerts()
		m.persistAlerts()
	}
	return m
}

func trimLast(s string) string {
	if s == "" {
		return s
	}
	return s[:len(s)-1]
}
