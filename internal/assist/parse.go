package assist

import (
	"strconv"
	"strings"
	"time"
)

// ParseStructuredInput handles the quick-entry line
// "<start> - <end> - <title> - <description>[ - <weight>]". Fewer than
// four components means the input is discarded, not an error.
func ParseStructuredInput(input string) (Draft, bool) {
	if strings.TrimSpace(input) == "" {
		return Draft{}, false
	}

	parts := strings.Split(input, "-")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 4 {
		return Draft{}, false
	}

	weight := 1.0
	if len(parts) > 4 {
		if w, err := strconv.ParseFloat(parts[4], 64); err == nil {
			weight = w
		}
	}

	return Draft{
		Title:       parts[2],
		Description: parts[3],
		StartTime:   parts[0],
		EndTime:     parts[1],
		Weight:      weight,
	}, true
}

// ConvertTo24Hour turns "h:mm a" into "HH:MM". Anything that does not
// parse is passed through unchanged.
func ConvertTo24Hour(s string) string {
	t, err := time.Parse("3:04 PM", strings.ToUpper(strings.TrimSpace(s)))
	if err != nil {
		return s
	}
	return t.Format("15:04")
}

// ParseDraftDate resolves the date field of a draft. Recognizes
// "today", "tomorrow", and "2006-01-02"; anything else falls back to
// today.
func ParseDraftDate(s string, now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today", "":
		return day
	case "tomorrow":
		return day.AddDate(0, 0, 1)
	}
	if parsed, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), now.Location()); err == nil {
		return parsed
	}
	return day
}
