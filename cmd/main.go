package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/BlendB5/OnTrackr-sub001/internal/config"
	"github.com/BlendB5/OnTrackr-sub001/internal/handler"
	"github.com/BlendB5/OnTrackr-sub001/internal/health"
	"github.com/BlendB5/OnTrackr-sub001/internal/infra/cyclerecorder"
	"github.com/BlendB5/OnTrackr-sub001/internal/infra/reminderapi"
	"github.com/BlendB5/OnTrackr-sub001/internal/infra/repository"
	"github.com/BlendB5/OnTrackr-sub001/internal/notify"
	"github.com/BlendB5/OnTrackr-sub001/internal/notify/wshub"
	"github.com/BlendB5/OnTrackr-sub001/internal/observability/logging"
	"github.com/BlendB5/OnTrackr-sub001/internal/observability/metrics"
	"github.com/BlendB5/OnTrackr-sub001/internal/observability/middleware"
	"github.com/BlendB5/OnTrackr-sub001/internal/service/poller"
)

// Version is set via ldflags at build time
var Version = "dev"

const moduleName = logging.Module("reminder-poller")

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	obs, err := initObservability(ctx, cfg.LogLevel)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	if err := cfg.TaskQueue.Validate(); err != nil {
		slog.Error("task queue configuration error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	pollerMetrics, err := metrics.NewPollerMetrics()
	if err != nil {
		slog.Error("failed to initialize poller metrics", slog.String("error", err.Error()))
		return 1
	}

	// InfluxDB for local, BigQuery for gcloud, no-op when disabled
	cycleRecorder, err := cyclerecorder.NewRecorder(ctx, cyclerecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize cycle recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := cycleRecorder.Close(); err != nil {
			slog.Warn("failed to close cycle recorder", slog.String("error", err.Error()))
		}
	}()

	redisClient, err := connectRedis(ctx, cfg.Redis)
	if err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}()

	slog.Info("redis connected",
		slog.String("addr", cfg.Redis.Addr),
	)

	reminderRepo := repository.NewReminderRepository(redisClient, cfg.Redis.SnapshotTTL)
	reminderClient := reminderapi.NewClient(cfg.RemindersAPIURL, cfg.RemindersAPIToken)

	taskQueue, cleanup, err := initTaskQueue(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize task queue", slog.String("error", err.Error()))
		return 1
	}
	if cleanup != nil {
		defer func() {
			if err := cleanup(); err != nil {
				slog.Error("task queue cleanup error", slog.String("error", err.Error()))
			}
		}()
	}

	hub := wshub.NewHub(
		wshub.NewAuthenticator(cfg.Channels.WSJWTSecret),
		cfg.Channels.WSAllowedOrigins...,
	)

	channels := []notify.Channel{hub}
	if cfg.Channels.TelegramEnabled() {
		bot, err := tgbotapi.NewBotAPI(cfg.Channels.TelegramBotToken)
		if err != nil {
			slog.Error("failed to initialize telegram bot", slog.String("error", err.Error()))
			return 1
		}
		channels = append(channels, notify.NewTelegramChannel(bot, cfg.Channels.TelegramChatID))
		slog.Info("telegram channel enabled", slog.String("bot", bot.Self.UserName))
	}
	if taskQueue != nil {
		channels = append(channels, notify.NewQueueChannel(taskQueue))
	}
	fanout := notify.NewFanout(channels...)

	slog.Info("notification channels configured", slog.Any("channels", fanout.Names()))

	opts := []poller.Option{
		poller.WithSnapshotStore(reminderRepo),
		poller.WithCycleRecorder(cycleRecorder),
		poller.WithMetrics(pollerMetrics),
	}
	if cfg.Poller.DedupeDispatch {
		opts = append(opts, poller.WithDispatchLedger(reminderRepo))
	}

	reminderPoller, err := poller.NewPoller(reminderClient, fanout, fanout, poller.Config{
		PollInterval:    cfg.Poller.PollInterval,
		DueWindow:       cfg.Poller.DueWindow,
		RefreshInterval: cfg.Poller.RefreshInterval,
		DedupeDispatch:  cfg.Poller.DedupeDispatch,
	}, opts...)
	if err != nil {
		slog.Error("failed to create reminder poller", slog.String("error", err.Error()))
		return 1
	}

	if err := reminderPoller.Start(ctx); err != nil {
		slog.Error("failed to start reminder poller", slog.String("error", err.Error()))
		return 1
	}
	defer reminderPoller.Stop()

	reminderHandler := handler.NewReminderHandler(reminderPoller)

	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready", "/ws"},
		Module:      moduleName,
		TracerName:  "github.com/BlendB5/OnTrackr-sub001/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	healthChecker := health.NewChecker(Version).
		WithRedis(redisClient).
		WithCheck("reminders", func(context.Context) error {
			status := reminderPoller.Status()
			if !status.Loaded && status.SeededFrom == "" {
				return errRemindersNotLoaded
			}
			return nil
		}).
		WithDetail("poller", func(context.Context) any {
			return reminderPoller.Status()
		}).
		WithDetail("channels", func(ctx context.Context) any {
			return fanout.States(ctx)
		}).
		WithDetail("websocket_clients", func(context.Context) any {
			return hub.Count()
		})
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.FullHandler())

	r.GET("/ws", gin.WrapF(hub.HandleWebSocket))

	v1 := r.Group("/api/v1")
	{
		v1.GET("/reminders", reminderHandler.HandleListReminders)
		v1.GET("/reminders/upcoming", reminderHandler.HandleListUpcoming)
		v1.GET("/reminders/due", reminderHandler.HandleDuePreview)
		v1.POST("/reminders/refresh", reminderHandler.HandleRefresh)
		v1.POST("/poll", reminderHandler.HandlePoll)
		v1.GET("/status", reminderHandler.HandleStatus)

		if taskQueue != nil {
			pushTaskHandler := handler.NewPushTaskHandler(taskQueue)
			v1.DELETE("/push-tasks/:id", pushTaskHandler.HandleCancel)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.Duration("poll_interval", cfg.Poller.PollInterval),
			slog.Duration("due_window", cfg.Poller.DueWindow),
			slog.Bool("dedupe_dispatch", cfg.Poller.DedupeDispatch),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()
		reminderPoller.Stop()

		if err := hub.Close(); err != nil {
			slog.Warn("failed to close websocket hub", slog.String("error", err.Error()))
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}

var errRemindersNotLoaded = errors.New("reminders not loaded yet")

func connectRedis(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:      cfg.Addr,
		Password:  cfg.Password,
		DB:        cfg.DB,
		TLSConfig: cfg.TLSConfig(),
	})

	if err := redisotel.InstrumentTracing(client); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("instrument redis tracing: %w", err)
	}

	if err := redisotel.InstrumentMetrics(client); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("instrument redis metrics: %w", err)
	}

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %w", repository.ErrRedisConnection, err)
	}

	return client, nil
}
