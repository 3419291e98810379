package update

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"focusflow/internal/alert"
	"focusflow/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.clockTickCmd()}
	if m.engine != nil {
		cmds = append(cmds, waitForAlertCmd(m.engine.C()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		if m.Notes.Active {
			return m.handleNotesKey(typed), nil
		}
		if m.EntryActive {
			return m.handleEntryKey(typed), nil
		}
		if m.CurrentView == ViewAlerts && m.Alerts.Editing {
			return m.handleAlertsKey(typed), nil
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Calendar:
			m.CurrentView = ViewCalendar
			return m, nil
		case m.Keys.Habits:
			m.CurrentView = ViewHabits
			m.reloadHabits()
			return m, nil
		case m.Keys.Points:
			m.CurrentView = ViewPoints
			m.reloadPoints()
			return m, nil
		case m.Keys.Alerts:
			m.CurrentView = ViewAlerts
			m.reloadAlerts()
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.persistAlerts()
			m.Quitting = true
			return m, tea.Quit
		}

		switch m.CurrentView {
		case ViewCalendar:
			return m.handleCalendarKey(typed), nil
		case ViewHabits:
			return m.handleHabitsKey(typed), nil
		case ViewPoints:
			return m.handlePointsKey(typed), nil
		case ViewAlerts:
			return m.handleAlertsKey(typed), nil
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case spinner.TickMsg:
		if !m.AssistPending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(typed)
		return m, cmd
	case AssistDoneMsg:
		m.AssistPending = false
		m.reloadCalendar()
		m.Status = StatusBar{Text: fmt.Sprintf("created %d task(s) from prompt", typed.Count), IsError: false}
		return m, nil
	case ClockTickMsg:
		m.Now = typed.At
		m.announceBoundaries(typed.At)
		if sameDay(m.Calendar.Day, typed.At) {
			m.reloadCalendar()
		}
		return m, m.clockTickCmd()
	case AlertFiredMsg:
		m.Alerts.Settings = m.engine.Snapshot()
		m.persistAlerts()
		if typed.Event.Completed {
			m.Status = StatusBar{Text: fmt.Sprintf("interval target reached after %d intervals", typed.Event.Count), IsError: false}
			return m, waitForAlertCmd(m.engine.C())
		}
		m.Status = StatusBar{Text: fmt.Sprintf("interval %d", typed.Event.Count), IsError: false}
		return m, waitForAlertCmd(m.engine.C())
	}

	return m, nil
}

func (m Model) View() string {
	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewCalendar:
		leftPane = m.renderTimelinePane()
		rightPane = m.renderTaskDetailPane() + m.renderEntryIfActive() + m.renderNotesIfActive() + m.renderHelpIfVisible()
	case ViewHabits:
		leftPane = m.renderHabitsPane()
		rightPane = m.renderHabitDetailPane() + m.renderHelpIfVisible()
	case ViewPoints:
		leftPane = m.renderPointsPane()
		rightPane = m.renderTagHoursPane() + m.renderHelpIfVisible()
	case ViewAlerts:
		leftPane = m.renderAlertsPane()
		rightPane = m.renderHelpIfVisible()
	}

	palette := ""
	if m.Palette.Active {
		palette = views.RenderCommandPalette(true, m.commandInput.Value())
	}

	statusLine := m.Status.Text
	if m.AssistPending {
		statusLine = m.spinner.View() + " extracting tasks from prompt"
	}

	return views.RenderApp(views.AppData{
		Header:      fmt.Sprintf("focusflow | view: %s | day: %s", m.CurrentView, m.Calendar.Day.Format("2006-01-02")),
		LeftPane:    leftPane,
		RightPane:   rightPane,
		StatusLine:  statusLine,
		StatusError: m.Status.IsError,
		Overlay:     palette,
		Footer:      fmt.Sprintf("keys: %s calendar | %s habits | %s points | %s alerts | / cmd | %s help | %s quit", m.Keys.Calendar, m.Keys.Habits, m.Keys.Points, m.Keys.Alerts, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) clockTickCmd() tea.Cmd {
	interval := time.Duration(m.cfg.RefreshMinutes) * time.Minute
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return tea.Tick(interval, func(at time.Time) tea.Msg {
		return ClockTickMsg{At: at}
	})
}

func waitForAlertCmd(ch <-chan alert.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return AlertFiredMsg{Event: ev}
	}
}

func isKnownView(v View) bool {
	switch v {
	case ViewCalendar, ViewHabits, ViewPoints, ViewAlerts:
		return true
	default:
		return false
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
