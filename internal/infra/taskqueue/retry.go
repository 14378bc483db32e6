package taskqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const (
	defaultMaxRetries = 3
	baseBackoff       = 100 * time.Millisecond
)

func backoffFor(attempt int) time.Duration {
	return baseBackoff << (attempt - 1)
}

// retry runs fn up to maxRetries times with exponential backoff between
// attempts. Context cancellation aborts the wait.
func retry(ctx context.Context, maxRetries int, operation string, taskID string, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			backoff := backoffFor(attempt)
			slog.DebugContext(ctx, "retrying task queue operation",
				slog.String("operation", operation),
				slog.String("task_id", taskID),
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		if lastErr = fn(); lastErr == nil {
			return nil
		}
	}

	slog.ErrorContext(ctx, "all retries exhausted",
		slog.String("operation", operation),
		slog.String("task_id", taskID),
		slog.Int("max_retries", maxRetries),
		slog.String("error", lastErr.Error()),
	)
	return fmt.Errorf("%w: %s after %d attempts: %w", ErrRetriesExhausted, operation, maxRetries, lastErr)
}
