//go:build loadtest

package metrics

import (
	"context"
	"os"

	"go.opentelemetry.io/otel/attribute"
)

// loadtest builds tag every series with the run so that stub driven runs can
// be separated from each other on the dashboard.
func appendLoadtestLabels(_ context.Context, attrs []attribute.KeyValue) []attribute.KeyValue {
	runID := os.Getenv("LOADTEST_RUN_ID")
	if runID == "" {
		runID = "default"
	}
	return append(attrs, attribute.String("loadtest_run_id", runID))
}
