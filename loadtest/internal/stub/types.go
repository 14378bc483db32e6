package stub

import "time"

type RelatedResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ReminderResponse mirrors the OnTrackr reminder JSON shape.
type ReminderResponse struct {
	ID       string           `json:"id"`
	RemindAt time.Time        `json:"remindAt"`
	Message  *string          `json:"message"`
	EventID  *string          `json:"eventId"`
	TaskID   *string          `json:"taskId"`
	Event    *RelatedResponse `json:"event"`
	Task     *RelatedResponse `json:"task"`
}

type SeedRequest struct {
	Buckets   []SeedBucket       `json:"buckets"`
	Reminders []ReminderResponse `json:"reminders,omitempty"`
}

// SeedBucket spreads Count reminders evenly over [start_time, end_time).
type SeedBucket struct {
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Count        int    `json:"count"`
	Message      string `json:"message,omitempty"`
	RelatedTitle string `json:"related_title,omitempty"`
	// RelatedKind is "event" or "task"; defaults to "task".
	RelatedKind string `json:"related_kind,omitempty"`
}
