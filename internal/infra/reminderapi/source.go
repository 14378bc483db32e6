package reminderapi

import (
	"context"

	"github.com/BlendB5/OnTrackr-sub001/internal/domain"
)

//go:generate mockgen -source=source.go -destination=mock.go -package=reminderapi

type ReminderSource interface {
	FetchAll(ctx context.Context) ([]domain.Reminder, error)
	FetchUpcoming(ctx context.Context) ([]domain.Reminder, error)
}
