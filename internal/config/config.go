package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	RemindersAPIURL   string
	RemindersAPIToken string
	Port              string
	LogLevel          slog.Level
	TaskQueue         TaskQueueConfig
	Redis             *RedisConfig
	Poller            *PollerConfig
	Channels          *ChannelConfig
}

type TaskQueueConfig struct {
	PushTasksURL string
	QueueName    string

	GCloudProjectID  string
	GCloudLocationID string
	GCloudQueueID    string
	GCloudTargetURL  string

	MaxRetries int
}

func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	queueName := os.Getenv("TASK_QUEUE_NAME")
	if queueName == "" {
		queueName = "default"
	}

	maxRetries := 3
	if v := os.Getenv("TASK_QUEUE_MAX_RETRIES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			maxRetries = parsed
		}
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	channelConfig, err := LoadChannelConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		RemindersAPIURL:   strings.TrimRight(os.Getenv("REMINDERS_API_URL"), "/"),
		RemindersAPIToken: os.Getenv("REMINDERS_API_TOKEN"),
		Port:              port,
		LogLevel:          ParseLogLevel(os.Getenv("LOG_LEVEL")),
		TaskQueue: TaskQueueConfig{
			PushTasksURL: os.Getenv("PUSH_TASKS_URL"),
			QueueName:    queueName,

			GCloudProjectID:  os.Getenv("GCLOUD_PROJECT_ID"),
			GCloudLocationID: os.Getenv("GCLOUD_LOCATION_ID"),
			GCloudQueueID:    os.Getenv("GCLOUD_QUEUE_ID"),
			GCloudTargetURL:  os.Getenv("GCLOUD_TARGET_URL"),

			MaxRetries: maxRetries,
		},
		Redis:    redisConfig,
		Poller:   LoadPollerConfig(),
		Channels: channelConfig,
	}, nil
}

func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
