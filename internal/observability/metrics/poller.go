package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	pollerMeterName = "reminder.poller"
)

type PollerMetrics struct {
	cyclesTotal       metric.Int64Counter
	dueTotal          metric.Int64Counter
	dispatchTotal     metric.Int64Counter
	fetchTotal        metric.Int64Counter
	cycleDuration     metric.Float64Histogram
	snapshotReminders metric.Int64Gauge
}

func NewPollerMetrics() (*PollerMetrics, error) {
	meter := otel.Meter(pollerMeterName)

	cyclesTotal, err := meter.Int64Counter(
		"reminder_poll_cycles_total",
		metric.WithDescription("Total number of due-check cycles"),
		metric.WithUnit("{cycle}"),
	)
	if err != nil {
		return nil, err
	}

	dueTotal, err := meter.Int64Counter(
		"reminder_due_total",
		metric.WithDescription("Total number of reminders found due"),
		metric.WithUnit("{reminder}"),
	)
	if err != nil {
		return nil, err
	}

	dispatchTotal, err := meter.Int64Counter(
		"reminder_dispatch_total",
		metric.WithDescription("Notification dispatches by outcome"),
		metric.WithUnit("{notification}"),
	)
	if err != nil {
		return nil, err
	}

	fetchTotal, err := meter.Int64Counter(
		"reminder_fetch_total",
		metric.WithDescription("Reminder API fetches by operation and outcome"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	cycleDuration, err := meter.Float64Histogram(
		"reminder_poll_cycle_duration_seconds",
		metric.WithDescription("Time spent in one due-check cycle"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5,
		),
	)
	if err != nil {
		return nil, err
	}

	snapshotReminders, err := meter.Int64Gauge(
		"reminder_snapshot_size",
		metric.WithDescription("Number of reminders held in memory"),
		metric.WithUnit("{reminder}"),
	)
	if err != nil {
		return nil, err
	}

	return &PollerMetrics{
		cyclesTotal:       cyclesTotal,
		dueTotal:          dueTotal,
		dispatchTotal:     dispatchTotal,
		fetchTotal:        fetchTotal,
		cycleDuration:     cycleDuration,
		snapshotReminders: snapshotReminders,
	}, nil
}

func (m *PollerMetrics) RecordCycle(ctx context.Context, due int, duration time.Duration) {
	attrs := metric.WithAttributes(appendLoadtestLabels(ctx, nil)...)
	m.cyclesTotal.Add(ctx, 1, attrs)
	m.dueTotal.Add(ctx, int64(due), attrs)
	m.cycleDuration.Record(ctx, duration.Seconds(), attrs)
}

func (m *PollerMetrics) RecordDispatch(ctx context.Context, outcome string) {
	m.dispatchTotal.Add(ctx, 1, metric.WithAttributes(appendLoadtestLabels(ctx, []attribute.KeyValue{
		attribute.String("outcome", outcome),
	})...))
}

func (m *PollerMetrics) RecordFetch(ctx context.Context, operation, outcome string) {
	m.fetchTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

func (m *PollerMetrics) RecordSnapshotSize(ctx context.Context, kind string, size int) {
	m.snapshotReminders.Record(ctx, int64(size), metric.WithAttributes(
		attribute.String("kind", kind),
	))
}
