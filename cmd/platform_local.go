//go:build !gcloud

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/BlendB5/OnTrackr-sub001/internal/config"
	"github.com/BlendB5/OnTrackr-sub001/internal/infra/taskqueue"
	"github.com/BlendB5/OnTrackr-sub001/internal/observability"
	"github.com/BlendB5/OnTrackr-sub001/internal/observability/logging"
)

func initTaskQueue(_ context.Context, cfg *config.Config) (taskqueue.TaskQueue, func() error, error) {
	if !cfg.TaskQueue.Enabled() {
		slog.Warn("PUSH_TASKS_URL not set, push queue channel disabled")

		return nil, nil, nil
	}

	tq := taskqueue.NewPrimindTasksClient(
		cfg.TaskQueue.PushTasksURL,
		cfg.TaskQueue.QueueName,
		cfg.TaskQueue.MaxRetries,
	)

	slog.Info("task queue initialized",
		slog.String("type", "primind_tasks"),
		slog.String("url", cfg.TaskQueue.PushTasksURL),
		slog.String("queue", cfg.TaskQueue.QueueName),
	)

	return tq, tq.Close, nil
}

func initObservability(ctx context.Context, level slog.Level) (*observability.Resources, error) {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "reminder-poller"
	}

	env := logging.EnvDev
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:    serviceName,
			Version: Version,
		},
		Environment:   env,
		SamplingRate:  1.0,
		DefaultModule: moduleName,
		LogLevel:      level,
	})
}
