// Package update holds the bubbletea model: per-view state, key
// handling, and the message loop that refreshes the timeline clock and
// consumes interval alert events.
package update

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"

	"focusflow/internal/alert"
	"focusflow/internal/config"
	"focusflow/internal/model"
	"focusflow/internal/planner"
	"focusflow/internal/stats"
	"focusflow/internal/timeline"
)

type View string

const (
	ViewCalendar View = "Calendar"
	ViewHabits   View = "Habits"
	ViewPoints   View = "Points"
	ViewAlerts   View = "Alerts"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Calendar string
	Habits   string
	Points   string
	Alerts   string
	Help     string
	Quit     string
}

type CalendarState struct {
	Day        time.Time
	Tasks      []model.Task
	Placements []timeline.Placement
	Cursor     int
	// MoveMode repositions the selected task slot by slot instead of
	// moving the cursor.
	MoveMode bool
	MoveSlot timeline.Slot
}

type HabitsState struct {
	Mode      stats.FilterMode
	RangeDays int
	Names     []string
	Cursor    int
	Trail     []stats.HabitDay
	Stats     stats.HabitStats
}

type PointsState struct {
	RangeDays int
	Grid      []stats.PointsDay
	Tags      []string
	TagCursor int
	TagDays   []stats.TagHoursDay
	TagTotal  float64
}

type AlertsState struct {
	Settings alert.Settings
	// Field being edited: 0 interval, 1 target. Editing gates digit
	// capture so view-switch keys keep working otherwise.
	Field    int
	Editing  bool
	Interval string
	Target   string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type NotesState struct {
	Active bool
	TaskID string
	// Persistent notes survive recurrence; regular notes do not.
	Persistent bool
}

type Model struct {
	CurrentView    View
	SelectedTaskID string
	Calendar       CalendarState
	Habits         HabitsState
	Points         PointsState
	Alerts         AlertsState
	Palette        CommandPaletteState
	Notes          NotesState
	EntryActive    bool
	AssistPending  bool
	HelpVisible    bool
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	Now            time.Time

	svc    *planner.Service
	engine *alert.Engine
	cfg    config.Config

	quickAddInput textinput.Model
	commandInput  textinput.Model
	notesArea     textarea.Model
	spinner       spinner.Model
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type ClockTickMsg struct {
	At time.Time
}

// AssistDoneMsg reports how many tasks the assist prompt produced. The
// extraction runs off the update loop so a slow endpoint never freezes
// key handling.
type AssistDoneMsg struct {
	Count int
}

type AlertFiredMsg struct {
	Event alert.Event
}

func NewModel(svc *planner.Service, engine *alert.Engine, cfg config.Config) Model {
	quickAdd := textinput.New()
	quickAdd.Placeholder = "start - end - title - tags [- weight]"
	quickAdd.CharLimit = 200

	command := textinput.New()
	command.Placeholder = "add | ai | goto | range | retag | drop"
	command.CharLimit = 200

	notes := textarea.New()
	notes.Placeholder = "notes"

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		CurrentView: ViewCalendar,
		Calendar: CalendarState{
			Day: today(),
		},
		Habits: HabitsState{
			Mode:      stats.FilterAll,
			RangeDays: 7,
		},
		Points: PointsState{
			RangeDays: 7,
		},
		Keys: GlobalKeyMap{
			Calendar: "1",
			Habits:   "2",
			Points:   "3",
			Alerts:   "4",
			Help:     "?",
			Quit:     "q",
		},
		Now:           time.Now(),
		svc:           svc,
		engine:        engine,
		cfg:           cfg,
		quickAddInput: quickAdd,
		commandInput:  command,
		notesArea:     notes,
		spinner:       sp,
	}
	m.reloadCalendar()
	m.reloadHabits()
	m.reloadPoints()
	m.reloadAlerts()
	return m
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
