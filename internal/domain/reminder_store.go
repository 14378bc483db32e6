package domain

import (
	"context"
	"time"
)

// SnapshotKind names one of the reminder lists held by the poller.
type SnapshotKind string

const (
	SnapshotAll      SnapshotKind = "all"
	SnapshotUpcoming SnapshotKind = "upcoming"
)

//go:generate mockgen -source=reminder_store.go -destination=reminder_store_mock.go -package=domain

// SnapshotStore keeps the last successfully fetched reminder lists so that a
// restart during an API outage still has something to evaluate.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, kind SnapshotKind, reminders []Reminder) error
	LoadSnapshot(ctx context.Context, kind SnapshotKind) ([]Reminder, error)
}

// DispatchLedger records dispatches for the opt-in deduplication mode.
type DispatchLedger interface {
	// MarkDispatched returns true when key was not recorded before.
	MarkDispatched(ctx context.Context, key string, ttl time.Duration) (bool, error)
}
