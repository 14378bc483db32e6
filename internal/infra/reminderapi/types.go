package reminderapi

import (
	"time"

	"github.com/BlendB5/OnTrackr-sub001/internal/domain"
)

type relatedResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type ReminderResponse struct {
	ID       string           `json:"id"`
	RemindAt time.Time        `json:"remindAt"`
	Message  *string          `json:"message"`
	EventID  *string          `json:"eventId"`
	TaskID   *string          `json:"taskId"`
	Event    *relatedResponse `json:"event"`
	Task     *relatedResponse `json:"task"`
}

func (r ReminderResponse) toDomain() domain.Reminder {
	reminder := domain.Reminder{
		ID:       r.ID,
		RemindAt: r.RemindAt,
		Message:  deref(r.Message),
		EventID:  deref(r.EventID),
		TaskID:   deref(r.TaskID),
	}

	if r.Event != nil && r.Event.Title != "" {
		reminder.RelatedTitle = r.Event.Title
	} else if r.Task != nil {
		reminder.RelatedTitle = r.Task.Title
	}

	return reminder
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
