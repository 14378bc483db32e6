package handler

import (
	"context"
	"time"

	"github.com/BlendB5/OnTrackr-sub001/internal/domain"
	"github.com/BlendB5/OnTrackr-sub001/internal/service/poller"
)

//go:generate mockgen -source=poller.go -destination=mock.go -package=handler

// ReminderPoller is the part of the poller exposed to operators.
type ReminderPoller interface {
	Reminders() []domain.Reminder
	Upcoming() []domain.Reminder
	Preview(now time.Time) []domain.Reminder
	Refresh(ctx context.Context) error
	RunCycle(ctx context.Context) domain.CycleResult
	Status() poller.Status
}
