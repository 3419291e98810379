// Package assist turns free-form natural language into task drafts,
// either through a chat-completions endpoint or a deterministic local
// fallback when the endpoint cannot be reached or answers garbage.
package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	ErrInvalidURL      = errors.New("assist: invalid url")
	ErrNoResponse      = errors.New("assist: no response")
	ErrInvalidResponse = errors.New("assist: invalid response")
)

// Draft is one extracted task before it becomes a stored record. Times
// arrive in 12-hour "h:mm a" form and are converted by the caller.
type Draft struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	Weight      float64 `json:"weight"`
	Date        string  `json:"date"`
	Priority    string  `json:"priority"`
}

const DefaultBaseURL = "https://api.openai.com/v1/chat/completions"

const systemPrompt = `Extract task information from the user's input and return ONLY a JSON array of task objects. For multiple tasks, create separate objects:
[
    {
        "title": "task title",
        "description": "comma separated tags",
        "startTime": "h:mm a format",
        "endTime": "h:mm a format",
        "weight": 1,
        "date": "today or specific date if mentioned",
        "priority": "P3"
    }
]
Use AM/PM format for times. If date is not specified, use today. Always set weight to 1 unless explicitly specified otherwise. If start time is not mentioned, use 12:00 AM as start time and 12:20 AM as end time. If only start time is mentioned, create a 30 minute task ending 30 minutes after start time. Current time is %s. Current year is %d. If no year is mentioned, use current year.`

type Client struct {
	BaseURL    string
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		Model:      "gpt-3.5-turbo",
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate asks the endpoint to extract task drafts from prompt.
func (c *Client) Generate(ctx context.Context, prompt string) ([]Draft, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, ErrInvalidURL
	}

	now := time.Now()
	body := chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: fmt.Sprintf(systemPrompt, now.Format("3:04 PM"), now.Year())},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   150,
		Temperature: 0.3,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("assist: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, ErrInvalidURL
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoResponse, err)
	}
	defer resp.Body.Close()

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if len(decoded.Choices) == 0 || strings.TrimSpace(decoded.Choices[0].Message.Content) == "" {
		return nil, ErrNoResponse
	}

	var drafts []Draft
	if err := json.Unmarshal([]byte(decoded.Choices[0].Message.Content), &drafts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return drafts, nil
}

// FallbackDraft builds the deterministic stand-in used when Generate
// fails: first input line as the title, a one hour block starting now.
func FallbackDraft(prompt string, now time.Time) Draft {
	title := "AI Task"
	if line, _, _ := strings.Cut(prompt, "\n"); strings.TrimSpace(line) != "" {
		title = strings.TrimSpace(line)
	}
	return Draft{
		Title:       title,
		Description: "ai-generated",
		StartTime:   now.Format("15:04"),
		EndTime:     now.Add(time.Hour).Format("15:04"),
		Weight:      5,
		Date:        now.Format("2006-01-02"),
	}
}
