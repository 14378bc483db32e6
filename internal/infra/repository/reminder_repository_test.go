package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BlendB5/OnTrackr-sub001/internal/domain"
	"github.com/BlendB5/OnTrackr-sub001/internal/testutil"
)

func TestSnapshotRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewReminderRepository(client, 0)

	remindAt := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)
	reminders := []domain.Reminder{
		{ID: "r1", RemindAt: remindAt, Message: "Stand-up", RelatedTitle: "Daily stand-up", EventID: "e1"},
		{ID: "r2", RemindAt: remindAt.Add(time.Hour), RelatedTitle: "Write report", TaskID: "t1"},
	}

	if err := repo.SaveSnapshot(ctx, domain.SnapshotAll, reminders); err != nil {
		t.Fatalf("failed to save snapshot: %v", err)
	}

	loaded, err := repo.LoadSnapshot(ctx, domain.SnapshotAll)
	if err != nil {
		t.Fatalf("failed to load snapshot: %v", err)
	}

	if len(loaded) != len(reminders) {
		t.Fatalf("got %d reminders, want %d", len(loaded), len(reminders))
	}
	for i, want := range reminders {
		got := loaded[i]
		if got.ID != want.ID || got.Message != want.Message || got.RelatedTitle != want.RelatedTitle ||
			got.EventID != want.EventID || got.TaskID != want.TaskID || !got.RemindAt.Equal(want.RemindAt) {
			t.Errorf("reminder[%d]: got %+v, want %+v", i, got, want)
		}
	}

	ttl, err := client.TTL(ctx, snapshotKeyPrefix+string(domain.SnapshotAll)).Result()
	if err != nil {
		t.Fatalf("failed to get TTL: %v", err)
	}
	if ttl <= 0 || ttl > defaultSnapshotTTL {
		t.Errorf("expected TTL around %v, got %v", defaultSnapshotTTL, ttl)
	}
}

func TestLoadSnapshotNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewReminderRepository(client, 0)

	_, err := repo.LoadSnapshot(ctx, domain.SnapshotUpcoming)
	if !errors.Is(err, domain.ErrSnapshotNotFound) {
		t.Errorf("expected ErrSnapshotNotFound, got %v", err)
	}
}

func TestLoadSnapshotInvalidData(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	if err := client.Set(ctx, snapshotKeyPrefix+"all", "not-json", 0).Err(); err != nil {
		t.Fatalf("failed to set up test data: %v", err)
	}

	repo := NewReminderRepository(client, 0)

	_, err := repo.LoadSnapshot(ctx, domain.SnapshotAll)
	if !errors.Is(err, ErrInvalidSnapshotData) {
		t.Errorf("expected ErrInvalidSnapshotData, got %v", err)
	}
}

func TestMarkDispatched(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewReminderRepository(client, 0)

	first, err := repo.MarkDispatched(ctx, "r1:20240115T143000Z", 2*time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first {
		t.Error("expected first mark to succeed")
	}

	second, err := repo.MarkDispatched(ctx, "r1:20240115T143000Z", 2*time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second {
		t.Error("expected second mark to report an existing entry")
	}

	other, err := repo.MarkDispatched(ctx, "r2:20240115T143000Z", 2*time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !other {
		t.Error("expected a different key to be marked")
	}

	ttl, err := client.TTL(ctx, dispatchKeyPrefix+"r1:20240115T143000Z").Result()
	if err != nil {
		t.Fatalf("failed to get TTL: %v", err)
	}
	if ttl <= 0 || ttl > 2*time.Minute {
		t.Errorf("expected TTL around 2m, got %v", ttl)
	}
}
