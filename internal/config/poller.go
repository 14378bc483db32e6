package config

import (
	"os"
	"strconv"
	"time"
)

const (
	pollIntervalSecondsEnv    = "POLL_INTERVAL_SECONDS"
	dueWindowSecondsEnv       = "DUE_WINDOW_SECONDS"
	refreshIntervalSecondsEnv = "REFRESH_INTERVAL_SECONDS"
	dedupeDispatchEnv         = "DEDUPE_DISPATCH"

	defaultPollIntervalSeconds = 30
	defaultDueWindowSeconds    = 60
)

type PollerConfig struct {
	PollInterval time.Duration
	DueWindow    time.Duration
	// RefreshInterval re-fetches reminders periodically. Zero keeps the
	// startup snapshot for the lifetime of the process.
	RefreshInterval time.Duration
	// DedupeDispatch suppresses repeat notifications for a reminder that
	// stays in the due window across cycles. Off by default.
	DedupeDispatch bool
}

func LoadPollerConfig() *PollerConfig {
	pollInterval := defaultPollIntervalSeconds
	if v := os.Getenv(pollIntervalSecondsEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			pollInterval = parsed
		}
	}

	dueWindow := defaultDueWindowSeconds
	if v := os.Getenv(dueWindowSecondsEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			dueWindow = parsed
		}
	}

	refreshInterval := 0
	if v := os.Getenv(refreshIntervalSecondsEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			refreshInterval = parsed
		}
	}

	return &PollerConfig{
		PollInterval:    time.Duration(pollInterval) * time.Second,
		DueWindow:       time.Duration(dueWindow) * time.Second,
		RefreshInterval: time.Duration(refreshInterval) * time.Second,
		DedupeDispatch:  os.Getenv(dedupeDispatchEnv) == "true",
	}
}

func (c *PollerConfig) Validate() error {
	if c.DueWindow < c.PollInterval {
		return ErrDueWindowTooShort
	}
	return nil
}
