package update

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"focusflow/internal/commands"
	"focusflow/internal/planner"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.commandInput.Blur()
		m.Status = StatusBar{}
		return m, nil
	case "enter":
		input := m.commandInput.Value()
		m.Palette.Active = false
		m.commandInput.Blur()
		return m.executePaletteCommand(input)
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	_ = cmd
	m.Palette.Input = m.commandInput.Value()
	return m, nil
}

func (m Model) executePaletteCommand(input string) (Model, tea.Cmd) {
	cmd, err := commands.Parse(input)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	// Assist extraction can stall on a slow endpoint, so it runs as a
	// background command with a spinner instead of a synchronous handler.
	if cmd.Type == commands.TypeAssist {
		m.AssistPending = true
		m.Status = StatusBar{Text: "extracting tasks from prompt", IsError: false}
		return m, tea.Batch(m.spinner.Tick, assistCmd(m.svc, cmd.Assist.Prompt))
	}

	result, err := commands.Execute(cmd, m.paletteHandlers())
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.Status = StatusBar{Text: result.Message, IsError: false}
	return m, nil
}

func assistCmd(svc *planner.Service, prompt string) tea.Cmd {
	return func() tea.Msg {
		tasks := svc.CreateFromPrompt(context.Background(), prompt)
		return AssistDoneMsg{Count: len(tasks)}
	}
}

// paletteHandlers binds the command set to the planner. Handlers mutate
// the model through its pointer so view state follows the data.
func (m *Model) paletteHandlers() commands.Handlers {
	ctx := context.Background()
	target := m
	return commands.Handlers{
		Add: func(args commands.AddArgs) (commands.Result, error) {
			task, ok := m.svc.CreateFromInput(ctx, args.Line, target.Calendar.Day, args.RepeatDays)
			if !ok {
				return commands.Result{}, &commands.CommandError{
					Code:    commands.ErrCodeInvalidArgument,
					Message: "task line needs start - end - title - description",
				}
			}
			target.reloadCalendar()
			if args.RepeatDays > 0 {
				return commands.Result{Message: fmt.Sprintf("added %q repeating every %d days", task.Title, args.RepeatDays)}, nil
			}
			return commands.Result{Message: fmt.Sprintf("added %q", task.Title)}, nil
		},
		Goto: func(args commands.GotoArgs) (commands.Result, error) {
			day, err := resolveGotoDay(args.When)
			if err != nil {
				return commands.Result{}, err
			}
			target.Calendar.Day = day
			target.Calendar.Cursor = 0
			target.CurrentView = ViewCalendar
			target.reloadCalendar()
			return commands.Result{Message: fmt.Sprintf("viewing %s", day.Format("2006-01-02"))}, nil
		},
		Range: func(args commands.RangeArgs) (commands.Result, error) {
			target.Habits.RangeDays = args.Days
			target.Points.RangeDays = args.Days
			target.reloadHabits()
			target.reloadPoints()
			return commands.Result{Message: fmt.Sprintf("range set to %d days", args.Days)}, nil
		},
		Retag: func(args commands.RetagArgs) (commands.Result, error) {
			count, err := m.svc.RenameTag(ctx, args.From, args.To)
			if err != nil {
				return commands.Result{}, err
			}
			target.reloadCalendar()
			target.reloadPoints()
			return commands.Result{Message: fmt.Sprintf("retagged %d task(s) %s -> %s", count, args.From, args.To)}, nil
		},
		Drop: func(args commands.DropArgs) (commands.Result, error) {
			count, err := m.svc.DeleteHabit(ctx, args.Title)
			if err != nil {
				return commands.Result{}, err
			}
			target.reloadCalendar()
			target.reloadHabits()
			return commands.Result{Message: fmt.Sprintf("dropped %d occurrence(s) of %q", count, args.Title)}, nil
		},
	}
}

func resolveGotoDay(when string) (time.Time, error) {
	base := today()
	switch when {
	case "today":
		return base, nil
	case "tomorrow":
		return base.AddDate(0, 0, 1), nil
	case "yesterday":
		return base.AddDate(0, 0, -1), nil
	}
	day, err := time.ParseInLocation("2006-01-02", when, time.Local)
	if err != nil {
		return time.Time{}, &commands.CommandError{
			Code:    commands.ErrCodeInvalidArgument,
			Message: fmt.Sprintf("goto accepts today, tomorrow, yesterday, or yyyy-mm-dd, got %q", when),
		}
	}
	return day, nil
}
