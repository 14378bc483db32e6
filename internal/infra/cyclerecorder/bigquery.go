//go:build gcloud

package cyclerecorder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/BlendB5/OnTrackr-sub001/internal/domain"
)

type bigQueryRecord struct {
	RecordedAt   time.Time `bigquery:"recorded_at"`
	EvaluatedAt  time.Time `bigquery:"evaluated_at"`
	CycleID      string    `bigquery:"cycle_id"`
	Considered   int64     `bigquery:"considered"`
	Due          int64     `bigquery:"due"`
	Dispatched   int64     `bigquery:"dispatched"`
	Suppressed   int64     `bigquery:"suppressed"`
	Deduplicated int64     `bigquery:"deduplicated"`
	Failed       int64     `bigquery:"failed"`
	DueIDs       []string  `bigquery:"due_ids"`
}

type bigQueryRecorder struct {
	client   *bigquery.Client
	inserter *bigquery.Inserter
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.CycleRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "cycle result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, cycle result recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, cycle result recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	slog.InfoContext(ctx, "cycle result recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
	)

	return &bigQueryRecorder{
		client:   client,
		inserter: client.Dataset(cfg.BigQueryDataset).Table(cfg.BigQueryTable).Inserter(),
	}, nil
}

func (r *bigQueryRecorder) RecordCycle(ctx context.Context, result domain.CycleResult) error {
	record := &bigQueryRecord{
		RecordedAt:   time.Now(),
		EvaluatedAt:  result.EvaluatedAt,
		CycleID:      result.CycleID,
		Considered:   int64(result.Considered),
		Due:          int64(result.Due),
		Dispatched:   int64(result.Dispatched),
		Suppressed:   int64(result.Suppressed),
		Deduplicated: int64(result.Deduplicated),
		Failed:       int64(result.Failed),
		DueIDs:       result.DueIDs,
	}

	if err := r.inserter.Put(ctx, record); err != nil {
		return fmt.Errorf("failed to insert cycle result to BigQuery: %w", err)
	}
	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
