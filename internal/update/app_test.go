package update

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"focusflow/internal/alert"
	"focusflow/internal/config"
	"focusflow/internal/model"
	"focusflow/internal/notify"
	"focusflow/internal/planner"
	"focusflow/internal/storage"
)

type memRepo struct {
	tasks    map[string]model.Task
	order    []string
	settings *alert.Settings
}

func newMemRepo() *memRepo {
	return &memRepo{tasks: make(map[string]model.Task)}
}

func (r *memRepo) CreateTask(ctx context.Context, in model.Task) error {
	r.tasks[in.ID] = in
	r.order = append(r.order, in.ID)
	return nil
}

func (r *memRepo) GetTask(ctx context.Context, id string) (model.Task, error) {
	task, ok := r.tasks[id]
	if !ok {
		return model.Task{}, storage.ErrNotFound
	}
	return task, nil
}

func (r *memRepo) UpdateTask(ctx context.Context, in model.Task) error {
	if _, ok := r.tasks[in.ID]; !ok {
		return storage.ErrNotFound
	}
	r.tasks[in.ID] = in
	return nil
}

func (r *memRepo) DeleteTask(ctx context.Context, id string) error {
	if _, ok := r.tasks[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *memRepo) DeleteTasksByTitle(ctx context.Context, title string) (int, error) {
	count := 0
	for id, task := range r.tasks {
		if task.Title == title {
			delete(r.tasks, id)
			count++
		}
	}
	return count, nil
}

func (r *memRepo) ListTasks(ctx context.Context, filter storage.TaskListFilter) ([]model.Task, error) {
	out := make([]model.Task, 0)
	for _, id := range r.order {
		task, ok := r.tasks[id]
		if !ok {
			continue
		}
		if filter.Day != nil && !task.ScheduledOn(*filter.Day) {
			continue
		}
		if filter.From != nil && (task.Date == nil || task.Date.Before(*filter.From)) {
			continue
		}
		if filter.To != nil && (task.Date == nil || task.Date.After(*filter.To)) {
			continue
		}
		if filter.Title != "" && task.Title != filter.Title {
			continue
		}
		if filter.Repeating != nil && task.Repeating() != *filter.Repeating {
			continue
		}
		out = append(out, task)
	}
	return out, nil
}

func (r *memRepo) GetAlertSettings(ctx context.Context) (alert.Settings, error) {
	if r.settings == nil {
		return alert.Settings{}, storage.ErrNotFound
	}
	return *r.settings, nil
}

func (r *memRepo) SaveAlertSettings(ctx context.Context, in alert.Settings) error {
	r.settings = &in
	return nil
}

func newTestModel(t *testing.T) (Model, *memRepo) {
	t.Helper()
	repo := newMemRepo()
	svc := planner.NewService(repo, notify.Noop{}, notify.Noop{}, nil, nil)
	engine := alert.NewEngine(nil, notify.Noop{}, notify.Noop{})
	t.Cleanup(engine.Stop)
	return NewModel(svc, engine, config.Default(t.TempDir())), repo
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelDefaults(t *testing.T) {
	m, _ := newTestModel(t)
	if m.CurrentView != ViewCalendar {
		t.Fatalf("expected default view %q, got %q", ViewCalendar, m.CurrentView)
	}
	if m.Habits.RangeDays != 7 || m.Points.RangeDays != 7 {
		t.Fatalf("expected 7 day default ranges, got %d and %d", m.Habits.RangeDays, m.Points.RangeDays)
	}
	if m.Keys.Quit != "q" {
		t.Fatalf("expected quit key q, got %q", m.Keys.Quit)
	}
}

func TestUpdateKeySwitchesView(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(keyRunes("2"))
	next := updated.(Model)
	if next.CurrentView != ViewHabits {
		t.Fatalf("expected habits view, got %q", next.CurrentView)
	}

	updated, _ = next.Update(keyRunes("4"))
	next = updated.(Model)
	if next.CurrentView != ViewAlerts {
		t.Fatalf("expected alerts view, got %q", next.CurrentView)
	}
}

func TestUpdateSwitchViewMsg(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(SwitchViewMsg{View: ViewPoints})
	next := updated.(Model)
	if next.CurrentView != ViewPoints {
		t.Fatalf("expected points view, got %q", next.CurrentView)
	}

	updated, _ = next.Update(SwitchViewMsg{View: View("Unknown")})
	next = updated.(Model)
	if next.CurrentView != ViewPoints {
		t.Fatalf("expected view unchanged for unknown view, got %q", next.CurrentView)
	}
}

func TestQuickEntryCreatesTask(t *testing.T) {
	m, repo := newTestModel(t)

	updated, _ := m.Update(keyRunes("a"))
	next := updated.(Model)
	if !next.EntryActive {
		t.Fatalf("expected entry mode after a")
	}

	for _, r := range "9:00 - 10:00 - Standup - work" {
		updated, _ = next.Update(keyRunes(string(r)))
		next = updated.(Model)
	}
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	if next.EntryActive {
		t.Fatalf("expected entry mode closed after enter")
	}
	if len(repo.tasks) != 1 {
		t.Fatalf("expected one stored task, got %d", len(repo.tasks))
	}
	if len(next.Calendar.Placements) != 1 {
		t.Fatalf("expected one placement, got %d", len(next.Calendar.Placements))
	}
	if got := next.Calendar.Placements[0].Task.Title; got != "Standup" {
		t.Fatalf("expected title Standup, got %q", got)
	}
}

func TestQuickEntryRejectsShortLine(t *testing.T) {
	m, repo := newTestModel(t)

	updated, _ := m.Update(keyRunes("a"))
	next := updated.(Model)
	for _, r := range "9:00 - Standup" {
		updated, _ = next.Update(keyRunes(string(r)))
		next = updated.(Model)
	}
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	if len(repo.tasks) != 0 {
		t.Fatalf("expected no stored tasks, got %d", len(repo.tasks))
	}
	if !next.Status.IsError {
		t.Fatalf("expected error status, got %+v", next.Status)
	}
}

func TestCalendarToggleAndDayNavigation(t *testing.T) {
	m, repo := newTestModel(t)

	updated, _ := m.Update(keyRunes("a"))
	next := updated.(Model)
	for _, r := range "7:00 - 7:30 - Gym - health" {
		updated, _ = next.Update(keyRunes(string(r)))
		next = updated.(Model)
	}
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	updated, _ = next.Update(keyRunes("c"))
	next = updated.(Model)
	for _, task := range repo.tasks {
		if !task.Completed {
			t.Fatalf("expected completed flag set, got %+v", task)
		}
	}

	day := next.Calendar.Day
	updated, _ = next.Update(keyRunes("l"))
	next = updated.(Model)
	if !next.Calendar.Day.Equal(day.AddDate(0, 0, 1)) {
		t.Fatalf("expected next day, got %s", next.Calendar.Day)
	}
	if len(next.Calendar.Placements) != 0 {
		t.Fatalf("expected empty day, got %d placements", len(next.Calendar.Placements))
	}

	updated, _ = next.Update(keyRunes("t"))
	next = updated.(Model)
	if len(next.Calendar.Placements) != 1 {
		t.Fatalf("expected task back on today, got %d placements", len(next.Calendar.Placements))
	}
}

func TestPaletteAddWithRepeat(t *testing.T) {
	m, repo := newTestModel(t)

	updated, _ := m.Update(keyRunes("/"))
	next := updated.(Model)
	if !next.Palette.Active {
		t.Fatalf("expected palette active")
	}

	for _, r := range "add 6:00 - 6:30 - Stretch - morning repeat:7" {
		updated, _ = next.Update(keyRunes(string(r)))
		next = updated.(Model)
	}
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	if next.Palette.Active {
		t.Fatalf("expected palette closed")
	}
	if next.Status.IsError {
		t.Fatalf("unexpected error status: %+v", next.Status)
	}
	if len(repo.tasks) != 1 {
		t.Fatalf("expected one stored task, got %d", len(repo.tasks))
	}
	for _, task := range repo.tasks {
		if task.RepeatAgain == nil || *task.RepeatAgain != 7 {
			t.Fatalf("expected repeat 7, got %+v", task.RepeatAgain)
		}
	}
}

func TestPaletteGotoAndUnknownCommand(t *testing.T) {
	m, _ := newTestModel(t)

	updated, _ := m.Update(keyRunes("/"))
	next := updated.(Model)
	for _, r := range "goto tomorrow" {
		updated, _ = next.Update(keyRunes(string(r)))
		next = updated.(Model)
	}
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	want := today().AddDate(0, 0, 1)
	if !next.Calendar.Day.Equal(want) {
		t.Fatalf("expected day %s, got %s", want, next.Calendar.Day)
	}

	updated, _ = next.Update(keyRunes("/"))
	next = updated.(Model)
	for _, r := range "bogus" {
		updated, _ = next.Update(keyRunes(string(r)))
		next = updated.(Model)
	}
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)
	if !next.Status.IsError {
		t.Fatalf("expected error status for unknown command, got %+v", next.Status)
	}
}

func TestPaletteAssistRunsInBackground(t *testing.T) {
	m, _ := newTestModel(t)

	updated, _ := m.Update(keyRunes("/"))
	next := updated.(Model)
	for _, r := range "ai plan my morning" {
		updated, _ = next.Update(keyRunes(string(r)))
		next = updated.(Model)
	}
	updated, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	if !next.AssistPending {
		t.Fatalf("expected assist pending after ai command")
	}
	if cmd == nil {
		t.Fatalf("expected background command for assist extraction")
	}

	updated, _ = next.Update(AssistDoneMsg{Count: 1})
	next = updated.(Model)
	if next.AssistPending {
		t.Fatalf("expected assist pending cleared")
	}
	if !strings.Contains(next.Status.Text, "created 1 task(s)") {
		t.Fatalf("unexpected status: %+v", next.Status)
	}
}

func TestPaletteRangeUpdatesBothViews(t *testing.T) {
	m, _ := newTestModel(t)

	updated, _ := m.Update(keyRunes("/"))
	next := updated.(Model)
	for _, r := range "range 30" {
		updated, _ = next.Update(keyRunes(string(r)))
		next = updated.(Model)
	}
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	if next.Habits.RangeDays != 30 || next.Points.RangeDays != 30 {
		t.Fatalf("expected 30 day ranges, got %d and %d", next.Habits.RangeDays, next.Points.RangeDays)
	}
}

func TestAlertsStartPersistsSettings(t *testing.T) {
	m, repo := newTestModel(t)

	updated, _ := m.Update(keyRunes("4"))
	next := updated.(Model)
	for _, key := range []string{"i", "3"} {
		updated, _ = next.Update(keyRunes(key))
		next = updated.(Model)
	}
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)
	for _, key := range []string{"t", "2"} {
		updated, _ = next.Update(keyRunes(key))
		next = updated.(Model)
	}
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)
	updated, _ = next.Update(keyRunes("s"))
	next = updated.(Model)

	if next.Alerts.Settings.State != alert.StateRunning {
		t.Fatalf("expected running state, got %q", next.Alerts.Settings.State)
	}
	if repo.settings == nil || repo.settings.Interval != 3 || repo.settings.Target != 2 {
		t.Fatalf("expected persisted settings 3/2, got %+v", repo.settings)
	}

	updated, _ = next.Update(keyRunes("S"))
	next = updated.(Model)
	if next.Alerts.Settings.State != alert.StateIdle {
		t.Fatalf("expected idle after stop, got %q", next.Alerts.Settings.State)
	}
}

func TestAlertsStartUsesDefaultInterval(t *testing.T) {
	m, _ := newTestModel(t)

	updated, _ := m.Update(keyRunes("4"))
	next := updated.(Model)
	if next.Alerts.Interval != "5" {
		t.Fatalf("expected default interval 5 in editor, got %q", next.Alerts.Interval)
	}

	updated, _ = next.Update(keyRunes("s"))
	next = updated.(Model)
	if next.Status.IsError {
		t.Fatalf("unexpected error status: %+v", next.Status)
	}
	if s := next.Alerts.Settings; s.State != alert.StateRunning || s.Interval != 5 {
		t.Fatalf("expected running session with default interval, got %+v", s)
	}

	updated, _ = next.Update(keyRunes("S"))
	_ = updated
}

func TestAlertsStartRejectsClearedInterval(t *testing.T) {
	m, _ := newTestModel(t)

	updated, _ := m.Update(keyRunes("4"))
	next := updated.(Model)
	updated, _ = next.Update(keyRunes("i"))
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)
	updated, _ = next.Update(keyRunes("s"))
	next = updated.(Model)
	if !next.Status.IsError {
		t.Fatalf("expected error status for empty interval, got %+v", next.Status)
	}
}

func TestAlertsClearRestoresDefaultInterval(t *testing.T) {
	m, _ := newTestModel(t)

	updated, _ := m.Update(keyRunes("4"))
	next := updated.(Model)
	for _, key := range []string{"i", "9"} {
		updated, _ = next.Update(keyRunes(key))
		next = updated.(Model)
	}
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)
	updated, _ = next.Update(keyRunes("C"))
	next = updated.(Model)

	if next.Alerts.Interval != "5" {
		t.Fatalf("expected default interval after clear, got %q", next.Alerts.Interval)
	}
	if next.Alerts.Settings.Interval != 5 {
		t.Fatalf("expected cleared engine at default interval, got %+v", next.Alerts.Settings)
	}
}

func TestAlertFiredMsgUpdatesStateAndRearms(t *testing.T) {
	m, repo := newTestModel(t)

	updated, cmd := m.Update(AlertFiredMsg{Event: alert.Event{Count: 2, At: time.Now()}})
	next := updated.(Model)
	if cmd == nil {
		t.Fatalf("expected re-arm command after alert event")
	}
	if !strings.Contains(next.Status.Text, "interval 2") {
		t.Fatalf("unexpected status: %+v", next.Status)
	}
	if repo.settings == nil {
		t.Fatalf("expected settings persisted after alert event")
	}
}

func TestViewContainsTimeline(t *testing.T) {
	m, _ := newTestModel(t)

	updated, _ := m.Update(keyRunes("a"))
	next := updated.(Model)
	for _, r := range "9:00 - 10:00 - Standup - work" {
		updated, _ = next.Update(keyRunes(string(r)))
		next = updated.(Model)
	}
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	out := next.View()
	if !strings.Contains(out, "Standup") {
		t.Fatalf("expected timeline to show task title, output:\n%s", out)
	}
	if !strings.Contains(out, "Timeline") {
		t.Fatalf("expected timeline heading, output:\n%s", out)
	}
}

func TestMoveModeReschedules(t *testing.T) {
	m, repo := newTestModel(t)

	updated, _ := m.Update(keyRunes("a"))
	next := updated.(Model)
	for _, r := range "9:00 - 10:00 - Standup - work" {
		updated, _ = next.Update(keyRunes(string(r)))
		next = updated.(Model)
	}
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	updated, _ = next.Update(keyRunes("m"))
	next = updated.(Model)
	if !next.Calendar.MoveMode {
		t.Fatalf("expected move mode")
	}
	updated, _ = next.Update(keyRunes("J"))
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	if next.Calendar.MoveMode {
		t.Fatalf("expected move mode cleared")
	}
	for _, task := range repo.tasks {
		if task.StartTime != "10:00" || task.EndTime != "11:00" {
			t.Fatalf("expected 10:00-11:00 after move, got %s-%s", task.StartTime, task.EndTime)
		}
	}
}
