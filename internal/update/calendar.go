package update

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"focusflow/internal/timeline"
)

func (m Model) handleCalendarKey(msg tea.KeyMsg) Model {
	if m.Calendar.MoveMode {
		return m.handleMoveKey(msg)
	}

	switch msg.String() {
	case "j", "down":
		if m.Calendar.Cursor < len(m.Calendar.Placements)-1 {
			m.Calendar.Cursor++
		}
	case "k", "up":
		if m.Calendar.Cursor > 0 {
			m.Calendar.Cursor--
		}
	case "h", "left":
		m.Calendar.Day = m.Calendar.Day.AddDate(0, 0, -1)
		m.Calendar.Cursor = 0
		m.reloadCalendar()
	case "l", "right":
		m.Calendar.Day = m.Calendar.Day.AddDate(0, 0, 1)
		m.Calendar.Cursor = 0
		m.reloadCalendar()
	case "t":
		m.Calendar.Day = today()
		m.Calendar.Cursor = 0
		m.reloadCalendar()
	case "a":
		m.EntryActive = true
		m.quickAddInput.SetValue("")
		m.quickAddInput.Focus()
	case "c", "enter":
		if task, ok := m.selectedTask(); ok {
			if _, err := m.svc.ToggleCompleted(context.Background(), task.ID); err != nil {
				m.Status = StatusBar{Text: err.Error(), IsError: true}
			} else {
				m.reloadCalendar()
			}
		}
	case "x":
		if task, ok := m.selectedTask(); ok {
			if _, err := m.svc.ToggleNotCompleted(context.Background(), task.ID); err != nil {
				m.Status = StatusBar{Text: err.Error(), IsError: true}
			} else {
				m.reloadCalendar()
			}
		}
	case "d":
		if task, ok := m.selectedTask(); ok {
			if err := m.svc.Delete(context.Background(), task.ID); err != nil {
				m.Status = StatusBar{Text: err.Error(), IsError: true}
			} else {
				m.Status = StatusBar{Text: fmt.Sprintf("deleted %q", task.Title), IsError: false}
				m.reloadCalendar()
			}
		}
	case "m":
		if task, ok := m.selectedTask(); ok {
			start := task.StartMinutes()
			m.Calendar.MoveMode = true
			m.Calendar.MoveSlot = timeline.Slot{Hour: start / 60, Minute: start % 60 / timeline.SlotMinutes * timeline.SlotMinutes}
		}
	case "n":
		m.openNotes(false)
	case "N":
		m.openNotes(true)
	}
	return m
}

// handleMoveKey nudges the pending drop slot; enter commits, esc abandons.
func (m Model) handleMoveKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "j", "down":
		m.Calendar.MoveSlot = shiftSlot(m.Calendar.MoveSlot, timeline.SlotMinutes)
	case "k", "up":
		m.Calendar.MoveSlot = shiftSlot(m.Calendar.MoveSlot, -timeline.SlotMinutes)
	case "J":
		m.Calendar.MoveSlot = shiftSlot(m.Calendar.MoveSlot, 60)
	case "K":
		m.Calendar.MoveSlot = shiftSlot(m.Calendar.MoveSlot, -60)
	case "enter":
		task, ok := m.selectedTask()
		m.Calendar.MoveMode = false
		if !ok {
			return m
		}
		if _, err := m.svc.RescheduleToSlot(context.Background(), task.ID, m.Calendar.MoveSlot, m.Calendar.Day); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
		m.Status = StatusBar{Text: fmt.Sprintf("moved %q to %s", task.Title, m.Calendar.MoveSlot.Label()), IsError: false}
		m.reloadCalendar()
	case "esc":
		m.Calendar.MoveMode = false
	}
	return m
}

func (m Model) handleEntryKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.EntryActive = false
		m.quickAddInput.Blur()
		return m
	case "enter":
		line := strings.TrimSpace(m.quickAddInput.Value())
		m.EntryActive = false
		m.quickAddInput.Blur()
		if line == "" {
			return m
		}
		task, ok := m.svc.CreateFromInput(context.Background(), line, m.Calendar.Day, 0)
		if !ok {
			m.Status = StatusBar{Text: "entry needs start - end - title - description", IsError: true}
			return m
		}
		m.Status = StatusBar{Text: fmt.Sprintf("added %q", task.Title), IsError: false}
		m.reloadCalendar()
		return m
	}
	var cmd tea.Cmd
	m.quickAddInput, cmd = m.quickAddInput.Update(msg)
	_ = cmd
	return m
}

func (m *Model) openNotes(persistent bool) {
	task, ok := m.selectedTask()
	if !ok {
		return
	}
	m.Notes.Active = true
	m.Notes.TaskID = task.ID
	m.Notes.Persistent = persistent
	if persistent {
		m.notesArea.SetValue(task.PersistentNotes)
	} else {
		m.notesArea.SetValue(task.Notes)
	}
	m.notesArea.Focus()
}

func (m Model) handleNotesKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Notes.Active = false
		m.notesArea.Blur()
		return m
	case "ctrl+s":
		text := m.notesArea.Value()
		var err error
		if m.Notes.Persistent {
			_, err = m.svc.UpdatePersistentNotes(context.Background(), m.Notes.TaskID, text)
		} else {
			_, err = m.svc.UpdateNotes(context.Background(), m.Notes.TaskID, text)
		}
		m.Notes.Active = false
		m.notesArea.Blur()
		if err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
		m.Status = StatusBar{Text: "notes saved", IsError: false}
		m.reloadCalendar()
		return m
	}
	var cmd tea.Cmd
	m.notesArea, cmd = m.notesArea.Update(msg)
	_ = cmd
	return m
}

func shiftSlot(slot timeline.Slot, deltaMinutes int) timeline.Slot {
	minutes := slot.MinuteOfDay() + deltaMinutes
	if minutes < 0 {
		minutes = 0
	}
	if minutes > 24*60-timeline.SlotMinutes {
		minutes = 24*60 - timeline.SlotMinutes
	}
	return timeline.Slot{Hour: minutes / 60, Minute: minutes % 60}
}
