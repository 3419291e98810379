package storage

import "time"

// TaskListFilter narrows ListTasks. Day selects a single calendar day;
// From/To select an inclusive range. Title matches exactly. Repeating
// selects tasks with (or without) a recurrence interval.
type TaskListFilter struct {
	Day       *time.Time
	From      *time.Time
	To        *time.Time
	Title     string
	Repeating *bool
	Limit     int
	Offset    int
}
