package domain

import (
	"time"
)

const (
	// DefaultDueWindow is how far back from now a reminder still counts as due.
	DefaultDueWindow = 60 * time.Second
	// DefaultPollInterval is the period of the due-check timer.
	DefaultPollInterval = 30 * time.Second
)

type Reminder struct {
	ID           string
	RemindAt     time.Time
	Message      string
	RelatedTitle string
	EventID      string
	TaskID       string
}

// IsDue reports whether the reminder falls into the window (now-window, now].
func (r Reminder) IsDue(now time.Time, window time.Duration) bool {
	return !r.RemindAt.After(now) && r.RemindAt.After(now.Add(-window))
}

// DueReminders returns the reminders that are due at now, preserving order.
// Reminders outside the window are dropped without error.
func DueReminders(reminders []Reminder, now time.Time, window time.Duration) []Reminder {
	due := make([]Reminder, 0)
	for _, r := range reminders {
		if r.IsDue(now, window) {
			due = append(due, r)
		}
	}
	return due
}

// DispatchKey identifies a single firing of a reminder. A reminder that is
// rescheduled by the API gets a new key.
func (r Reminder) DispatchKey() string {
	return r.ID + ":" + r.RemindAt.UTC().Format("20060102T150405Z")
}
