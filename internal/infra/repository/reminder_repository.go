package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/BlendB5/OnTrackr-sub001/internal/domain"
)

const (
	snapshotKeyPrefix = "ontrackr:reminders:snapshot:"
	dispatchKeyPrefix = "ontrackr:reminders:dispatched:"

	defaultSnapshotTTL = 24 * time.Hour
)

type reminderRecord struct {
	ID           string    `json:"id"`
	RemindAt     time.Time `json:"remind_at"`
	Message      string    `json:"message,omitempty"`
	RelatedTitle string    `json:"related_title,omitempty"`
	EventID      string    `json:"event_id,omitempty"`
	TaskID       string    `json:"task_id,omitempty"`
}

type snapshotRecord struct {
	Reminders []reminderRecord `json:"reminders"`
	SavedAt   time.Time        `json:"saved_at"`
}

// ReminderRepository stores reminder snapshots and dispatch marks in Redis.
type ReminderRepository struct {
	client      *redis.Client
	snapshotTTL time.Duration
}

var (
	_ domain.SnapshotStore  = (*ReminderRepository)(nil)
	_ domain.DispatchLedger = (*ReminderRepository)(nil)
)

// NewReminderRepository keeps snapshots for ttl; zero selects 24h.
func NewReminderRepository(client *redis.Client, ttl time.Duration) *ReminderRepository {
	if ttl <= 0 {
		ttl = defaultSnapshotTTL
	}
	return &ReminderRepository{
		client:      client,
		snapshotTTL: ttl,
	}
}

func (r *ReminderRepository) SaveSnapshot(ctx context.Context, kind domain.SnapshotKind, reminders []domain.Reminder) error {
	records := make([]reminderRecord, 0, len(reminders))
	for _, rem := range reminders {
		records = append(records, reminderRecord{
			ID:           rem.ID,
			RemindAt:     rem.RemindAt,
			Message:      rem.Message,
			RelatedTitle: rem.RelatedTitle,
			EventID:      rem.EventID,
			TaskID:       rem.TaskID,
		})
	}

	data, err := json.Marshal(snapshotRecord{
		Reminders: records,
		SavedAt:   time.Now().UTC(),
	})
	if err != nil {
		return ErrInvalidSnapshotData
	}

	return r.client.Set(ctx, snapshotKeyPrefix+string(kind), data, r.snapshotTTL).Err()
}

func (r *ReminderRepository) LoadSnapshot(ctx context.Context, kind domain.SnapshotKind) ([]domain.Reminder, error) {
	data, err := r.client.Get(ctx, snapshotKeyPrefix+string(kind)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, err
	}

	var record snapshotRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrInvalidSnapshotData
	}

	reminders := make([]domain.Reminder, 0, len(record.Reminders))
	for _, rec := range record.Reminders {
		reminders = append(reminders, domain.Reminder{
			ID:           rec.ID,
			RemindAt:     rec.RemindAt,
			Message:      rec.Message,
			RelatedTitle: rec.RelatedTitle,
			EventID:      rec.EventID,
			TaskID:       rec.TaskID,
		})
	}

	return reminders, nil
}

func (r *ReminderRepository) MarkDispatched(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return r.client.SetNX(ctx, dispatchKeyPrefix+key, time.Now().UTC().Format(time.RFC3339), ttl).Result()
}
