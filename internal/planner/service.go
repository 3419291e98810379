// Package planner coordinates task mutations and their side effects:
// recurrence spawning, carry-over makeup tasks, spoken announcements,
// and desktop notifications. Persistence failures on the mutation paths
// are logged and swallowed so a broken disk never blocks the UI.
package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"focusflow/internal/alert"
	"focusflow/internal/assist"
	"focusflow/internal/logging"
	"focusflow/internal/model"
	"focusflow/internal/notify"
	"focusflow/internal/storage"
	"focusflow/internal/timeline"
	"focusflow/internal/timeutil"
)

type Service struct {
	repo     storage.Repository
	notifier notify.Notifier
	speaker  notify.Speaker
	assist   *assist.Client
	log      *logging.Logger
	newID    func() string

	mu        sync.Mutex
	announced map[string]bool
}

func NewService(repo storage.Repository, notifier notify.Notifier, speaker notify.Speaker, client *assist.Client, log *logging.Logger) *Service {
	return &Service{
		repo:      repo,
		notifier:  notifier,
		speaker:   speaker,
		assist:    client,
		log:       log,
		newID:     uuid.NewString,
		announced: make(map[string]bool),
	}
}

// CreateFromInput handles the quick-entry line for a selected day. A
// malformed line is discarded without an error surfacing anywhere.
func (s *Service) CreateFromInput(ctx context.Context, input string, day time.Time, repeatDays int) (model.Task, bool) {
	draft, ok := assist.ParseStructuredInput(input)
	if !ok {
		return model.Task{}, false
	}

	d := day
	task := model.Task{
		ID:        s.newID(),
		Title:     draft.Title,
		Tags:      model.ParseTags(draft.Description),
		StartTime: draft.StartTime,
		EndTime:   draft.EndTime,
		Weight:    draft.Weight,
		Date:      &d,
	}
	if repeatDays > 0 {
		task.RepeatAgain = &repeatDays
	}
	s.insert(ctx, task)
	return task, true
}

// CreateFromPrompt extracts tasks from free-form text through the
// assist endpoint. Any assist failure degrades to a single deterministic
// placeholder task rather than an error.
func (s *Service) CreateFromPrompt(ctx context.Context, prompt string) []model.Task {
	now := time.Now()

	var drafts []assist.Draft
	if s.assist != nil {
		generated, err := s.assist.Generate(ctx, prompt)
		if err != nil {
			s.log.Printf("assist: %v, using fallback", err)
		} else {
			for _, d := range generated {
				d.StartTime = assist.ConvertTo24Hour(d.StartTime)
				d.EndTime = assist.ConvertTo24Hour(d.EndTime)
				drafts = append(drafts, d)
			}
		}
	}
	if len(drafts) == 0 {
		drafts = []assist.Draft{assist.FallbackDraft(prompt, now)}
	}

	out := make([]model.Task, 0, len(drafts))
	for _, d := range drafts {
		date := assist.ParseDraftDate(d.Date, now)
		task := model.Task{
			ID:        s.newID(),
			Title:     d.Title,
			Tags:      model.ParseTags(d.Description),
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
			Weight:    d.Weight,
			Date:      &date,
		}
		s.insert(ctx, task)
		out = append(out, task)
	}
	return out
}

// ToggleCompleted flips the completed flag. A rising edge announces the
// completion and spawns the next occurrence for repeating tasks.
func (s *Service) ToggleCompleted(ctx context.Context, id string) (model.Task, error) {
	before, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	after := before
	after.Completed = !after.Completed

	if after.Completed {
		s.speak(fmt.Sprintf("Task completed: %s", after.Title))
		s.post("task-completed-"+after.Title, "Task Completed", fmt.Sprintf("Task completed: %s", after.Title))
	}
	s.update(ctx, after)
	s.spawnSuccessors(ctx, before, after)
	return after, nil
}

// ToggleNotCompleted flips the missed flag. A rising edge announces it
// and, for repeating tasks, spawns both the next occurrence and a
// next-day makeup copy.
func (s *Service) ToggleNotCompleted(ctx context.Context, id string) (model.Task, error) {
	before, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	after := before
	after.NotCompleted = !after.NotCompleted

	if after.NotCompleted {
		s.speak(fmt.Sprintf("Task marked as not completed: %s", after.Title))
		s.post("task-not-completed-"+after.Title, "Task Not Completed", fmt.Sprintf("Task marked as not completed: %s", after.Title))
	}
	s.update(ctx, after)
	s.spawnSuccessors(ctx, before, after)
	return after, nil
}

func (s *Service) spawnSuccessors(ctx context.Context, before, after model.Task) {
	if model.ShouldRecur(before, after) {
		if next, ok := model.NextOccurrence(after, s.newID); ok {
			s.insert(ctx, next)
		}
	}
	if model.ShouldCarryOver(before, after) {
		if makeup, ok := model.CarryOverOccurrence(after, s.newID); ok {
			s.insert(ctx, makeup)
		}
	}
}

// RescheduleToSlot moves a task to a timeline slot as a fixed one hour
// block on the given day.
func (s *Service) RescheduleToSlot(ctx context.Context, id string, slot timeline.Slot, day time.Time) (model.Task, error) {
	task, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	task = timeline.RescheduleToSlot(task, slot, day)
	s.update(ctx, task)
	return task, nil
}

// Delete removes a task and revokes any boundary notifications posted
// under its name.
func (s *Service) Delete(ctx context.Context, id string) error {
	task, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteTask(ctx, id); err != nil {
		return err
	}
	if task.Date != nil {
		epoch := task.Date.Unix()
		_ = s.notifier.Cancel(notify.TaskStartID(task.Title, epoch))
		_ = s.notifier.Cancel(notify.TaskEndID(task.Title, epoch))
	}
	return nil
}

func (s *Service) UpdateNotes(ctx context.Context, id, notes string) (model.Task, error) {
	task, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	task.Notes = notes
	s.update(ctx, task)
	return task, nil
}

func (s *Service) UpdatePersistentNotes(ctx context.Context, id, notes string) (model.Task, error) {
	task, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	task.PersistentNotes = notes
	s.update(ctx, task)
	return task, nil
}

// RenameTag rewrites one tag across every task carrying it and reports
// how many tasks changed.
func (s *Service) RenameTag(ctx context.Context, from, to string) (int, error) {
	tasks, err := s.repo.ListTasks(ctx, storage.TaskListFilter{})
	if err != nil {
		return 0, err
	}
	changed := 0
	for _, task := range tasks {
		if !task.HasTag(from) {
			continue
		}
		for i, tag := range task.Tags {
			if strings.EqualFold(tag, from) {
				task.Tags[i] = to
			}
		}
		s.update(ctx, task)
		changed++
	}
	return changed, nil
}

// DeleteHabit drops every record sharing a habit title.
func (s *Service) DeleteHabit(ctx context.Context, title string) (int, error) {
	return s.repo.DeleteTasksByTitle(ctx, title)
}

func (s *Service) TasksForDay(ctx context.Context, day time.Time) ([]model.Task, error) {
	d := day
	return s.repo.ListTasks(ctx, storage.TaskListFilter{Day: &d})
}

func (s *Service) TasksInRange(ctx context.Context, from, to time.Time) ([]model.Task, error) {
	f, t := from, to
	return s.repo.ListTasks(ctx, storage.TaskListFilter{From: &f, To: &t})
}

func (s *Service) AllTasks(ctx context.Context) ([]model.Task, error) {
	return s.repo.ListTasks(ctx, storage.TaskListFilter{})
}

func (s *Service) Habits(ctx context.Context) ([]model.Task, error) {
	repeating := true
	return s.repo.ListTasks(ctx, storage.TaskListFilter{Repeating: &repeating})
}

// LoadAlertSettings restores the persisted interval alert session.
// Missing settings come back as a zero value rather than an error so a
// fresh install starts idle.
func (s *Service) LoadAlertSettings(ctx context.Context) alert.Settings {
	settings, err := s.repo.GetAlertSettings(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Printf("load alert settings: %v", err)
		}
		return alert.Settings{}
	}
	return settings
}

func (s *Service) SaveAlertSettings(ctx context.Context, settings alert.Settings) {
	if err := s.repo.SaveAlertSettings(ctx, settings); err != nil {
		s.log.Printf("save alert settings: %v", err)
	}
}

// CheckTaskBoundaries announces tasks starting or ending at the current
// minute of day. Each boundary fires at most once per task.
func (s *Service) CheckTaskBoundaries(ctx context.Context, now time.Time) []string {
	tasks, err := s.TasksForDay(ctx, now)
	if err != nil {
		s.log.Printf("boundary check: %v", err)
		return nil
	}

	minutes := timeutil.MinuteOfDay(now)
	epoch := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).Unix()

	announced := make([]string, 0)
	for _, task := range tasks {
		switch minutes {
		case task.StartMinutes():
			if s.once("start-" + task.ID) {
				phrase := fmt.Sprintf("Time to start: %s", task.Title)
				s.speak(phrase)
				s.post(notify.TaskStartID(task.Title, epoch), "Task Starting", phrase)
				announced = append(announced, phrase)
			}
		case task.EndMinutes():
			if s.once("end-" + task.ID) {
				phrase := fmt.Sprintf("Time to end: %s", task.Title)
				s.speak(phrase)
				s.post(notify.TaskEndID(task.Title, epoch), "Task Ending", phrase)
				announced = append(announced, phrase)
			}
		}
	}
	return announced
}

func (s *Service) once(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.announced[key] {
		return false
	}
	s.announced[key] = true
	return true
}

func (s *Service) insert(ctx context.Context, task model.Task) {
	if err := s.repo.CreateTask(ctx, task); err != nil {
		s.log.Printf("create task %s: %v", task.ID, err)
	}
}

func (s *Service) update(ctx context.Context, task model.Task) {
	if err := s.repo.UpdateTask(ctx, task); err != nil {
		s.log.Printf("update task %s: %v", task.ID, err)
	}
}

func (s *Service) speak(text string) {
	if err := s.speaker.Speak(text); err != nil {
		s.log.Printf("speak: %v", err)
	}
}

func (s *Service) post(id, title, body string) {
	if err := s.notifier.Post(id, title, body); err != nil {
		s.log.Printf("notify %s: %v", id, err)
	}
}
