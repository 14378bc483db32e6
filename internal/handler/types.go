package handler

import (
	"time"

	"github.com/BlendB5/OnTrackr-sub001/internal/domain"
)

type ReminderResponse struct {
	ID           string    `json:"id"`
	RemindAt     time.Time `json:"remind_at"`
	Message      string    `json:"message,omitempty"`
	RelatedTitle string    `json:"related_title,omitempty"`
	EventID      string    `json:"event_id,omitempty"`
	TaskID       string    `json:"task_id,omitempty"`
}

type ReminderListResponse struct {
	Reminders []ReminderResponse `json:"reminders"`
	Count     int                `json:"count"`
}

type DuePreviewResponse struct {
	At        time.Time          `json:"at"`
	Reminders []ReminderResponse `json:"reminders"`
	Count     int                `json:"count"`
}

type RefreshResponse struct {
	ReminderCount int `json:"reminder_count"`
	UpcomingCount int `json:"upcoming_count"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func toReminderResponses(reminders []domain.Reminder) []ReminderResponse {
	out := make([]ReminderResponse, 0, len(reminders))
	for _, r := range reminders {
		out = append(out, ReminderResponse{
			ID:           r.ID,
			RemindAt:     r.RemindAt,
			Message:      r.Message,
			RelatedTitle: r.RelatedTitle,
			EventID:      r.EventID,
			TaskID:       r.TaskID,
		})
	}
	return out
}

func newReminderList(reminders []domain.Reminder) ReminderListResponse {
	return ReminderListResponse{
		Reminders: toReminderResponses(reminders),
		Count:     len(reminders),
	}
}
