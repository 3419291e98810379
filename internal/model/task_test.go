package model

import (
	"errors"
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestTaskValidate(t *testing.T) {
	task := Task{ID: "task-1", Title: "Morning run", StartTime: "7:00", EndTime: "7:30"}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}

	task.Title = "  "
	if err := task.Validate(); err == nil {
		t.Fatal("expected error for blank title")
	}

	task.Title = "Morning run"
	task.RepeatAgain = intPtr(0)
	if err := task.Validate(); !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("expected ErrInvalidInterval, got %v", err)
	}
}

func TestTaskDurationWrapsMidnight(t *testing.T) {
	task := Task{StartTime: "23:00", EndTime: "1:00"}
	if got := task.DurationMinutes(); got != 120 {
		t.Fatalf("wrapped duration: got %d, want 120", got)
	}
	task = Task{StartTime: "9:00", EndTime: "10:30"}
	if got := task.DurationMinutes(); got != 90 {
		t.Fatalf("plain duration: got %d, want 90", got)
	}
}

func TestTaskScheduledOn(t *testing.T) {
	task := Task{Date: datePtr(2024, 1, 15)}
	if !task.ScheduledOn(time.Date(2024, 1, 15, 23, 59, 0, 0, time.UTC)) {
		t.Fatal("task should match its own day regardless of clock time")
	}
	if task.ScheduledOn(time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("task should not match the following day")
	}
	undated := Task{}
	if undated.ScheduledOn(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("undated task must be excluded from day views")
	}
}

func TestParseTags(t *testing.T) {
	got := ParseTags(" work, deep focus ,,health ")
	want := []string{"work", "deep focus", "health"}
	if len(got) != len(want) {
		t.Fatalf("unexpected tag count: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tag[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if ParseTags("  ") != nil {
		t.Fatal("blank string should parse to no tags")
	}
	if JoinTags(nil) != "" {
		t.Fatal("no tags should join to the empty string")
	}
	if JoinTags(want) != "work,deep focus,health" {
		t.Fatalf("unexpected join: %q", JoinTags(want))
	}
}

func TestHasTag(t *testing.T) {
	task := Task{Tags: []string{"Work", "health"}}
	if !task.HasTag("work") || !task.HasTag("HEALTH") {
		t.Fatal("tag matching should be case-insensitive")
	}
	if task.HasTag("play") {
		t.Fatal("unexpected tag match")
	}
}
