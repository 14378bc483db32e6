package tracing

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const pollerTracerName = "github.com/BlendB5/OnTrackr-sub001/internal/service/poller"

func PollerTracer() trace.Tracer {
	return otel.Tracer(pollerTracerName)
}

func StartPollCycleSpan(ctx context.Context, cycleID string, now time.Time, window time.Duration) (context.Context, trace.Span) {
	return PollerTracer().Start(ctx, "reminder.poll_cycle",
		trace.WithAttributes(
			attribute.String("cycle.id", cycleID),
			attribute.String("cycle.now", now.Format(time.RFC3339)),
			attribute.Int64("cycle.window_seconds", int64(window.Seconds())),
		),
	)
}

func StartLoadSpan(ctx context.Context, trigger string) (context.Context, trace.Span) {
	return PollerTracer().Start(ctx, "reminder.load",
		trace.WithAttributes(
			attribute.String("load.trigger", trigger),
		),
	)
}

func StartExternalAPISpan(ctx context.Context, operation, url string) (context.Context, trace.Span) {
	return PollerTracer().Start(ctx, "reminder.external_api."+operation,
		trace.WithAttributes(
			attribute.String("url", url),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func StartDispatchSpan(ctx context.Context, reminderID string) (context.Context, trace.Span) {
	return PollerTracer().Start(ctx, "reminder.dispatch",
		trace.WithAttributes(
			attribute.String("reminder_id", reminderID),
		),
	)
}

func RecordPollCycleResult(span trace.Span, considered, due, dispatched, suppressed, failed int) {
	span.SetAttributes(
		attribute.Int("cycle.considered_count", considered),
		attribute.Int("cycle.due_count", due),
		attribute.Int("cycle.dispatched_count", dispatched),
		attribute.Int("cycle.suppressed_count", suppressed),
		attribute.Int("cycle.failed_count", failed),
	)
	span.SetStatus(codes.Ok, "")
}

func RecordDispatchOutcome(span trace.Span, outcome string) {
	span.SetAttributes(attribute.String("dispatch.outcome", outcome))
}

// RecordError marks span as failed when err is non-nil.
func RecordError(span trace.Span, err error) {
	if err == nil {
		span.SetStatus(codes.Ok, "")
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func InjectToHTTPRequest(ctx context.Context, req *http.Request) {
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
}

func ExtractFromHTTPRequest(req *http.Request) context.Context {
	return otel.GetTextMapPropagator().Extract(req.Context(), propagation.HeaderCarrier(req.Header))
}
