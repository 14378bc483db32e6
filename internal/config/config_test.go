package config

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("REMINDERS_API_URL", "http://ontrackr.local/")
	t.Setenv("PORT", "")
	t.Setenv("POLL_INTERVAL_SECONDS", "")
	t.Setenv("DUE_WINDOW_SECONDS", "")
	t.Setenv("REFRESH_INTERVAL_SECONDS", "")
	t.Setenv("DEDUPE_DISPATCH", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.RemindersAPIURL != "http://ontrackr.local" {
		t.Errorf("RemindersAPIURL: got %q, want trailing slash trimmed", cfg.RemindersAPIURL)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port: got %q, want %q", cfg.Port, "8080")
	}
	if cfg.Poller.PollInterval != 30*time.Second {
		t.Errorf("PollInterval: got %v, want 30s", cfg.Poller.PollInterval)
	}
	if cfg.Poller.DueWindow != 60*time.Second {
		t.Errorf("DueWindow: got %v, want 60s", cfg.Poller.DueWindow)
	}
	if cfg.Poller.RefreshInterval != 0 {
		t.Errorf("RefreshInterval: got %v, want 0", cfg.Poller.RefreshInterval)
	}
	if cfg.Poller.DedupeDispatch {
		t.Error("DedupeDispatch: expected off by default")
	}
	if cfg.Redis.Addr != defaultRedisAddr {
		t.Errorf("Redis.Addr: got %q, want %q", cfg.Redis.Addr, defaultRedisAddr)
	}

	if err := ValidateForRun(cfg); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoadPollerConfigOverrides(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		wantPoll    time.Duration
		wantWindow  time.Duration
		wantRefresh time.Duration
		wantDedupe  bool
	}{
		{
			name:        "valid overrides",
			env:         map[string]string{"POLL_INTERVAL_SECONDS": "15", "DUE_WINDOW_SECONDS": "45", "REFRESH_INTERVAL_SECONDS": "300", "DEDUPE_DISPATCH": "true"},
			wantPoll:    15 * time.Second,
			wantWindow:  45 * time.Second,
			wantRefresh: 5 * time.Minute,
			wantDedupe:  true,
		},
		{
			name:        "invalid values fall back to defaults",
			env:         map[string]string{"POLL_INTERVAL_SECONDS": "abc", "DUE_WINDOW_SECONDS": "-1", "REFRESH_INTERVAL_SECONDS": "x", "DEDUPE_DISPATCH": "yes"},
			wantPoll:    30 * time.Second,
			wantWindow:  60 * time.Second,
			wantRefresh: 0,
			wantDedupe:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg := LoadPollerConfig()

			if cfg.PollInterval != tt.wantPoll {
				t.Errorf("PollInterval: got %v, want %v", cfg.PollInterval, tt.wantPoll)
			}
			if cfg.DueWindow != tt.wantWindow {
				t.Errorf("DueWindow: got %v, want %v", cfg.DueWindow, tt.wantWindow)
			}
			if cfg.RefreshInterval != tt.wantRefresh {
				t.Errorf("RefreshInterval: got %v, want %v", cfg.RefreshInterval, tt.wantRefresh)
			}
			if cfg.DedupeDispatch != tt.wantDedupe {
				t.Errorf("DedupeDispatch: got %v, want %v", cfg.DedupeDispatch, tt.wantDedupe)
			}
		})
	}
}

func TestValidateForRun(t *testing.T) {
	base := func() *Config {
		return &Config{
			RemindersAPIURL: "http://ontrackr.local",
			Redis:           &RedisConfig{Addr: "localhost:6379"},
			Poller:          &PollerConfig{PollInterval: 30 * time.Second, DueWindow: time.Minute},
			Channels:        &ChannelConfig{},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{
			name:    "valid",
			mutate:  func(c *Config) {},
			wantErr: nil,
		},
		{
			name:    "missing reminders url",
			mutate:  func(c *Config) { c.RemindersAPIURL = "" },
			wantErr: ErrRemindersAPIURLMissing,
		},
		{
			name:    "window shorter than poll interval",
			mutate:  func(c *Config) { c.Poller.DueWindow = 10 * time.Second },
			wantErr: ErrDueWindowTooShort,
		},
		{
			name:    "missing redis addr",
			mutate:  func(c *Config) { c.Redis.Addr = "" },
			wantErr: ErrRedisAddrMissing,
		},
		{
			name:    "telegram token without chat",
			mutate:  func(c *Config) { c.Channels.TelegramBotToken = "token" },
			wantErr: ErrTelegramChatIDMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)

			err := ValidateForRun(cfg)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadChannelConfigInvalidChatID(t *testing.T) {
	t.Setenv("TELEGRAM_CHAT_ID", "not-a-number")

	if _, err := LoadChannelConfig(); !errors.Is(err, ErrInvalidTelegramChatID) {
		t.Errorf("expected ErrInvalidTelegramChatID, got %v", err)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
	}

	for input, want := range tests {
		if got := ParseLogLevel(input); got != want {
			t.Errorf("ParseLogLevel(%q): got %v, want %v", input, got, want)
		}
	}
}

func TestLoadChannelConfigAllowedOrigins(t *testing.T) {
	t.Setenv("TELEGRAM_CHAT_ID", "")
	t.Setenv("WS_ALLOWED_ORIGINS", " https://ontrackr.app, ,http://localhost:5173 ")

	cfg, err := LoadChannelConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"https://ontrackr.app", "http://localhost:5173"}
	if len(cfg.WSAllowedOrigins) != len(want) {
		t.Fatalf("WSAllowedOrigins: got %v, want %v", cfg.WSAllowedOrigins, want)
	}
	for i := range want {
		if cfg.WSAllowedOrigins[i] != want[i] {
			t.Errorf("WSAllowedOrigins[%d]: got %q, want %q", i, cfg.WSAllowedOrigins[i], want[i])
		}
	}
}

func TestLoadRedisConfig(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantTTL time.Duration
		wantTLS bool
		wantErr error
	}{
		{
			name:    "defaults",
			env:     map[string]string{},
			wantTTL: 24 * time.Hour,
		},
		{
			name:    "tls and ttl override",
			env:     map[string]string{"REDIS_TLS": "true", "REDIS_SNAPSHOT_TTL_HOURS": "6"},
			wantTTL: 6 * time.Hour,
			wantTLS: true,
		},
		{
			name:    "invalid db",
			env:     map[string]string{"REDIS_DB": "primary"},
			wantErr: ErrInvalidRedisDB,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"REDIS_ADDR", "REDIS_DB", "REDIS_TLS", "REDIS_SNAPSHOT_TTL_HOURS"} {
				t.Setenv(key, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadRedisConfig()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if cfg.SnapshotTTL != tt.wantTTL {
				t.Errorf("SnapshotTTL: got %v, want %v", cfg.SnapshotTTL, tt.wantTTL)
			}
			if (cfg.TLSConfig() != nil) != tt.wantTLS {
				t.Errorf("TLSConfig: got %v, want tls=%v", cfg.TLSConfig(), tt.wantTLS)
			}
		})
	}
}
