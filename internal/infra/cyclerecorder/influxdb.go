//go:build !gcloud

package cyclerecorder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/BlendB5/OnTrackr-sub001/internal/domain"
)

const cycleMeasurement = "poll_cycle"

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
}

// NewRecorder returns an InfluxDB backed recorder, or a no-op recorder when
// recording is disabled or the connection settings are incomplete.
func NewRecorder(ctx context.Context, cfg *Config) (domain.CycleRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "cycle result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, cycle result recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)

	slog.InfoContext(ctx, "cycle result recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket),
	}, nil
}

func cyclePoint(result domain.CycleResult) *write.Point {
	return influxdb2.NewPoint(
		cycleMeasurement,
		map[string]string{
			"cycle_id": result.CycleID,
		},
		map[string]any{
			"considered":   result.Considered,
			"due":          result.Due,
			"dispatched":   result.Dispatched,
			"suppressed":   result.Suppressed,
			"deduplicated": result.Deduplicated,
			"failed":       result.Failed,
			"due_ids":      strings.Join(result.DueIDs, ","),
		},
		result.EvaluatedAt,
	)
}

func (r *influxDBRecorder) RecordCycle(ctx context.Context, result domain.CycleResult) error {
	if err := r.writeAPI.WritePoint(ctx, cyclePoint(result)); err != nil {
		return fmt.Errorf("failed to write cycle result to InfluxDB: %w", err)
	}
	return nil
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}
