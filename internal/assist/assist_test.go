package assist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func chatReply(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"content": content}},
		},
	})
	return string(b)
}

func TestGenerateParsesDrafts(t *testing.T) {
	content := `[{"title":"Gym","description":"health","startTime":"6:30 PM","endTime":"7:30 PM","weight":2,"date":"today","priority":"P3"}]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing auth header")
		}
		fmt.Fprint(w, chatReply(content))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	drafts, err := c.Generate(context.Background(), "gym at 6:30pm")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(drafts) != 1 || drafts[0].Title != "Gym" || drafts[0].Weight != 2 {
		t.Fatalf("unexpected drafts: %+v", drafts)
	}
}

func TestGenerateInvalidURL(t *testing.T) {
	c := NewClient("://bad", "key")
	if _, err := c.Generate(context.Background(), "x"); !errors.Is(err, ErrInvalidURL) {
		t.Fatalf("expected ErrInvalidURL, got %v", err)
	}
}

func TestGenerateEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key")
	if _, err := c.Generate(context.Background(), "x"); !errors.Is(err, ErrNoResponse) {
		t.Fatalf("expected ErrNoResponse, got %v", err)
	}
}

func TestGenerateMalformedContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chatReply("sorry, I cannot help with that"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key")
	if _, err := c.Generate(context.Background(), "x"); !errors.Is(err, ErrInvalidResponse) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestFallbackDraft(t *testing.T) {
	now := time.Date(2024, 6, 1, 14, 15, 0, 0, time.UTC)
	d := FallbackDraft("plan the week\nsome details", now)
	if d.Title != "plan the week" {
		t.Fatalf("title = %q", d.Title)
	}
	if d.StartTime != "14:15" || d.EndTime != "15:15" {
		t.Fatalf("times = %q..%q", d.StartTime, d.EndTime)
	}
	if d.Description != "ai-generated" || d.Weight != 5 || d.Date != "2024-06-01" {
		t.Fatalf("unexpected draft: %+v", d)
	}

	if got := FallbackDraft("  \n", now); got.Title != "AI Task" {
		t.Fatalf("blank prompt title = %q", got.Title)
	}
}

func TestParseStructuredInput(t *testing.T) {
	d, ok := ParseStructuredInput("9:00 - 10:30 - Deep Work - focus, writing - 3")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if d.StartTime != "9:00" || d.EndTime != "10:30" || d.Title != "Deep Work" {
		t.Fatalf("unexpected draft: %+v", d)
	}
	if d.Description != "focus, writing" || d.Weight != 3 {
		t.Fatalf("unexpected tail fields: %+v", d)
	}

	d, ok = ParseStructuredInput("9:00 - 10:30 - Quick - notes")
	if !ok || d.Weight != 1 {
		t.Fatalf("default weight should be 1, got %+v (ok=%v)", d, ok)
	}

	d, ok = ParseStructuredInput("9:00 - 10:30 - Quick - notes - heavy")
	if !ok || d.Weight != 1 {
		t.Fatalf("unparsable weight should fall back to 1, got %+v", d)
	}

	if _, ok := ParseStructuredInput("9:00 - 10:30 - Too Short"); ok {
		t.Fatal("three components should be discarded")
	}
	if _, ok := ParseStructuredInput("   "); ok {
		t.Fatal("blank input should be discarded")
	}
}

func TestConvertTo24Hour(t *testing.T) {
	cases := map[string]string{
		"6:30 PM":  "18:30",
		"12:00 AM": "00:00",
		"12:15 pm": "12:15",
		"9:05 AM":  "09:05",
		"garbage":  "garbage",
		"14:00":    "14:00",
	}
	for in, want := range cases {
		if got := ConvertTo24Hour(in); got != want {
			t.Fatalf("ConvertTo24Hour(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseDraftDate(t *testing.T) {
	now := time.Date(2024, 6, 1, 23, 50, 0, 0, time.UTC)
	if got := ParseDraftDate("today", now); got.Day() != 1 || got.Hour() != 0 {
		t.Fatalf("today = %v", got)
	}
	if got := ParseDraftDate("Tomorrow", now); got.Day() != 2 {
		t.Fatalf("tomorrow = %v", got)
	}
	if got := ParseDraftDate("2024-12-25", now); got.Month() != time.December || got.Day() != 25 {
		t.Fatalf("explicit date = %v", got)
	}
	if got := ParseDraftDate("next tuesday", now); got.Day() != 1 {
		t.Fatalf("unknown phrase should fall back to today, got %v", got)
	}
}
