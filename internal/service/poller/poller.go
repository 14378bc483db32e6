package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/BlendB5/OnTrackr-sub001/internal/domain"
	"github.com/BlendB5/OnTrackr-sub001/internal/infra/reminderapi"
	"github.com/BlendB5/OnTrackr-sub001/internal/notify"
	"github.com/BlendB5/OnTrackr-sub001/internal/observability/metrics"
	"github.com/BlendB5/OnTrackr-sub001/internal/observability/tracing"
)

// Poller owns the in-memory reminder list and evaluates it on a fixed
// interval. A reminder is dispatched on every cycle in which it falls inside
// the due window, unless deduplication is enabled.
type Poller struct {
	source   reminderapi.ReminderSource
	notifier notify.Notifier
	gate     notify.PermissionGate
	cfg      Config

	snapshots domain.SnapshotStore
	ledger    domain.DispatchLedger
	recorder  domain.CycleRecorder
	metrics   *metrics.PollerMetrics
	now       func() time.Time

	mu            sync.RWMutex
	reminders     []domain.Reminder
	upcoming      []domain.Reminder
	loadedAt      time.Time
	upcomingAt    time.Time
	lastLoadError error
	seededFrom    string
	lastCycle     *domain.CycleResult

	// serializes cycles and loads across cron and operator triggers
	cycleMu sync.Mutex
	loadMu  sync.Mutex

	lifecycleMu sync.Mutex
	cron        *cron.Cron
	cancel      context.CancelFunc
	startup     sync.WaitGroup
}

func NewPoller(
	source reminderapi.ReminderSource,
	notifier notify.Notifier,
	gate notify.PermissionGate,
	cfg Config,
	opts ...Option,
) (*Poller, error) {
	p := &Poller{
		source:    source,
		notifier:  notifier,
		gate:      gate,
		cfg:       cfg.withDefaults(),
		now:       time.Now,
		reminders: []domain.Reminder{},
		upcoming:  []domain.Reminder{},
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.cfg.DedupeDispatch && p.ledger == nil {
		return nil, ErrLedgerRequired
	}

	return p, nil
}

// Start runs the startup load once, independently of the timer, and
// schedules the due-check every poll interval.
func (p *Poller) Start(ctx context.Context) error {
	p.lifecycleMu.Lock()
	defer p.lifecycleMu.Unlock()

	if p.cron != nil {
		return ErrAlreadyRunning
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	logger := cronLogger{logger: slog.Default()}
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	if _, err := c.AddFunc(everySpec(p.cfg.PollInterval), func() {
		p.RunCycle(runCtx)
	}); err != nil {
		cancel()
		return fmt.Errorf("add due-check job: %w", err)
	}

	if p.cfg.RefreshInterval > 0 {
		if _, err := c.AddFunc(everySpec(p.cfg.RefreshInterval), func() {
			_ = p.load(runCtx, TriggerRefresh)
		}); err != nil {
			cancel()
			return fmt.Errorf("add refresh job: %w", err)
		}
	}

	p.cron = c
	p.cancel = cancel

	p.startup.Add(1)
	go func() {
		defer p.startup.Done()
		p.runStartup(runCtx)
	}()

	c.Start()

	slog.InfoContext(ctx, "reminder poller started",
		slog.Duration("poll_interval", p.cfg.PollInterval),
		slog.Duration("due_window", p.cfg.DueWindow),
		slog.Duration("refresh_interval", p.cfg.RefreshInterval),
		slog.Bool("dedupe_dispatch", p.cfg.DedupeDispatch),
	)

	return nil
}

// Stop cancels the timer and waits for running jobs and the startup task.
func (p *Poller) Stop() {
	p.lifecycleMu.Lock()
	defer p.lifecycleMu.Unlock()

	if p.cron == nil {
		return
	}

	p.cancel()
	<-p.cron.Stop().Done()
	p.startup.Wait()

	p.cron = nil
	p.cancel = nil

	slog.Info("reminder poller stopped")
}

func (p *Poller) Running() bool {
	p.lifecycleMu.Lock()
	defer p.lifecycleMu.Unlock()
	return p.cron != nil
}

func everySpec(d time.Duration) string {
	return "@every " + d.String()
}

func (p *Poller) runStartup(ctx context.Context) {
	if err := p.load(ctx, TriggerStartup); err != nil {
		p.seedFromSnapshots(ctx)
	}

	if ctx.Err() != nil {
		return
	}

	if p.gate.Permission(ctx) != domain.PermissionDefault {
		return
	}

	state, err := p.gate.RequestPermission(ctx)
	if err != nil {
		slog.WarnContext(ctx, "notification permission request failed",
			slog.String("error", err.Error()),
		)
		return
	}

	slog.InfoContext(ctx, "notification permission requested",
		slog.String("state", state.String()),
	)
}

// Refresh reloads both lists now. On failure the previous lists are kept and
// the error is returned.
func (p *Poller) Refresh(ctx context.Context) error {
	return p.load(ctx, TriggerManual)
}

func (p *Poller) load(ctx context.Context, trigger string) error {
	p.loadMu.Lock()
	defer p.loadMu.Unlock()

	ctx, span := tracing.StartLoadSpan(ctx, trigger)
	defer span.End()

	all, allErr := p.fetch(ctx, "fetch_all", p.source.FetchAll)
	upcoming, upcomingErr := p.fetch(ctx, "fetch_upcoming", p.source.FetchUpcoming)

	p.mu.Lock()
	if allErr == nil {
		p.reminders = all
		p.loadedAt = p.now()
		p.seededFrom = ""
	}
	if upcomingErr == nil {
		p.upcoming = upcoming
		p.upcomingAt = p.now()
	}
	err := errors.Join(allErr, upcomingErr)
	p.lastLoadError = err
	p.mu.Unlock()

	if allErr == nil {
		p.saveSnapshot(ctx, domain.SnapshotAll, all)
	}
	if upcomingErr == nil {
		p.saveSnapshot(ctx, domain.SnapshotUpcoming, upcoming)
	}

	if err != nil {
		tracing.RecordError(span, err)
		return err
	}

	slog.InfoContext(ctx, "reminders loaded",
		slog.String("trigger", trigger),
		slog.Int("reminder_count", len(all)),
		slog.Int("upcoming_count", len(upcoming)),
	)
	return nil
}

func (p *Poller) fetch(ctx context.Context, operation string, fn func(context.Context) ([]domain.Reminder, error)) ([]domain.Reminder, error) {
	reminders, err := fn(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch reminders, keeping last known list",
			slog.String("operation", operation),
			slog.String("error", err.Error()),
		)
		if p.metrics != nil {
			p.metrics.RecordFetch(ctx, operation, "error")
		}
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	if reminders == nil {
		reminders = []domain.Reminder{}
	}
	if p.metrics != nil {
		p.metrics.RecordFetch(ctx, operation, "success")
	}
	return reminders, nil
}

func (p *Poller) saveSnapshot(ctx context.Context, kind domain.SnapshotKind, reminders []domain.Reminder) {
	if p.metrics != nil {
		p.metrics.RecordSnapshotSize(ctx, string(kind), len(reminders))
	}

	if p.snapshots == nil {
		return
	}

	if err := p.snapshots.SaveSnapshot(ctx, kind, reminders); err != nil {
		slog.WarnContext(ctx, "failed to persist reminder snapshot",
			slog.String("kind", string(kind)),
			slog.String("error", err.Error()),
		)
	}
}

func (p *Poller) seedFromSnapshots(ctx context.Context) {
	if p.snapshots == nil {
		return
	}

	// only lists that were never fetched are seeded
	p.mu.RLock()
	remindersLoaded := !p.loadedAt.IsZero()
	upcomingLoaded := !p.upcomingAt.IsZero()
	p.mu.RUnlock()

	if !remindersLoaded {
		if reminders, ok := p.loadSnapshot(ctx, domain.SnapshotAll); ok {
			p.mu.Lock()
			p.reminders = reminders
			p.seededFrom = "snapshot"
			p.mu.Unlock()

			slog.InfoContext(ctx, "seeded reminders from snapshot",
				slog.Int("reminder_count", len(reminders)),
			)
		}
	}

	if !upcomingLoaded {
		if upcoming, ok := p.loadSnapshot(ctx, domain.SnapshotUpcoming); ok {
			p.mu.Lock()
			p.upcoming = upcoming
			p.mu.Unlock()
		}
	}
}

func (p *Poller) loadSnapshot(ctx context.Context, kind domain.SnapshotKind) ([]domain.Reminder, bool) {
	reminders, err := p.snapshots.LoadSnapshot(ctx, kind)
	if err != nil {
		if !errors.Is(err, domain.ErrSnapshotNotFound) {
			slog.WarnContext(ctx, "failed to load reminder snapshot",
				slog.String("kind", string(kind)),
				slog.String("error", err.Error()),
			)
		}
		return nil, false
	}
	return reminders, true
}

// RunCycle evaluates the current list at the clock's current time and
// dispatches every due reminder once.
func (p *Poller) RunCycle(ctx context.Context) domain.CycleResult {
	p.cycleMu.Lock()
	defer p.cycleMu.Unlock()

	start := time.Now()
	now := p.now()
	cycleID := uuid.NewString()

	ctx, span := tracing.StartPollCycleSpan(ctx, cycleID, now, p.cfg.DueWindow)
	defer span.End()

	p.mu.RLock()
	reminders := p.reminders
	p.mu.RUnlock()

	due := domain.DueReminders(reminders, now, p.cfg.DueWindow)

	result := domain.CycleResult{
		CycleID:     cycleID,
		EvaluatedAt: now,
		Considered:  len(reminders),
		Due:         len(due),
		DueIDs:      make([]string, 0, len(due)),
	}

	if len(due) > 0 {
		permission := p.gate.Permission(ctx)
		for _, r := range due {
			result.DueIDs = append(result.DueIDs, r.ID)

			switch p.dispatch(ctx, r, permission) {
			case outcomeDispatched:
				result.Dispatched++
			case outcomeSuppressed:
				result.Suppressed++
			case outcomeDeduplicated:
				result.Deduplicated++
			case outcomeFailed:
				result.Failed++
			}
		}
	}

	tracing.RecordPollCycleResult(span, result.Considered, result.Due, result.Dispatched, result.Suppressed, result.Failed)

	if p.metrics != nil {
		p.metrics.RecordCycle(ctx, result.Due, time.Since(start))
	}

	if p.recorder != nil {
		if err := p.recorder.RecordCycle(ctx, result); err != nil {
			slog.WarnContext(ctx, "failed to record cycle result",
				slog.String("cycle_id", cycleID),
				slog.String("error", err.Error()),
			)
		}
	}

	p.mu.Lock()
	p.lastCycle = &result
	p.mu.Unlock()

	level := slog.LevelDebug
	if result.Due > 0 {
		level = slog.LevelInfo
	}
	slog.Log(ctx, level, "due-check cycle completed",
		slog.String("cycle_id", cycleID),
		slog.Int("considered", result.Considered),
		slog.Int("due", result.Due),
		slog.Int("dispatched", result.Dispatched),
		slog.Int("suppressed", result.Suppressed),
		slog.Int("deduplicated", result.Deduplicated),
		slog.Int("failed", result.Failed),
	)

	return result
}

func (p *Poller) dispatch(ctx context.Context, r domain.Reminder, permission domain.Permission) string {
	ctx, span := tracing.StartDispatchSpan(ctx, r.ID)
	defer span.End()

	outcome := p.deliver(ctx, r, permission)
	tracing.RecordDispatchOutcome(span, outcome)

	if p.metrics != nil {
		p.metrics.RecordDispatch(ctx, outcome)
	}
	return outcome
}

func (p *Poller) deliver(ctx context.Context, r domain.Reminder, permission domain.Permission) string {
	if !permission.IsGranted() {
		slog.DebugContext(ctx, "reminder due but notification permission not granted",
			slog.String("reminder_id", r.ID),
			slog.String("permission", permission.String()),
		)
		return outcomeSuppressed
	}

	if p.cfg.DedupeDispatch {
		fresh, err := p.ledger.MarkDispatched(ctx, r.DispatchKey(), p.cfg.DueWindow+p.cfg.PollInterval)
		if err != nil {
			slog.WarnContext(ctx, "dispatch ledger unavailable, dispatching anyway",
				slog.String("reminder_id", r.ID),
				slog.String("error", err.Error()),
			)
		} else if !fresh {
			slog.DebugContext(ctx, "reminder already dispatched",
				slog.String("reminder_id", r.ID),
			)
			return outcomeDeduplicated
		}
	}

	if err := p.notifier.Notify(ctx, domain.NewNotification(r)); err != nil {
		if errors.Is(err, notify.ErrNoGrantedChannel) {
			return outcomeSuppressed
		}
		slog.ErrorContext(ctx, "failed to dispatch reminder",
			slog.String("reminder_id", r.ID),
			slog.String("error", err.Error()),
		)
		return outcomeFailed
	}

	slog.InfoContext(ctx, "reminder dispatched",
		slog.String("reminder_id", r.ID),
		slog.Time("remind_at", r.RemindAt),
	)
	return outcomeDispatched
}

// Preview returns the reminders that would be dispatched at now without
// dispatching them.
func (p *Poller) Preview(now time.Time) []domain.Reminder {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return domain.DueReminders(p.reminders, now, p.cfg.DueWindow)
}

func (p *Poller) Reminders() []domain.Reminder {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.reminders)
}

func (p *Poller) Upcoming() []domain.Reminder {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.upcoming)
}

func (p *Poller) Status() Status {
	running := p.Running()

	p.mu.RLock()
	defer p.mu.RUnlock()

	status := Status{
		Running:        running,
		Loaded:         !p.loadedAt.IsZero(),
		LoadedAt:       p.loadedAt,
		SeededFrom:     p.seededFrom,
		ReminderCount:  len(p.reminders),
		UpcomingCount:  len(p.upcoming),
		PollInterval:   p.cfg.PollInterval.String(),
		DueWindow:      p.cfg.DueWindow.String(),
		DedupeDispatch: p.cfg.DedupeDispatch,
	}
	if p.lastLoadError != nil {
		status.LastLoadError = p.lastLoadError.Error()
	}
	if p.lastCycle != nil {
		cycle := *p.lastCycle
		status.LastCycle = &cycle
	}
	return status
}
