package poller

import (
	"time"

	"github.com/BlendB5/OnTrackr-sub001/internal/domain"
	"github.com/BlendB5/OnTrackr-sub001/internal/observability/metrics"
)

type Config struct {
	PollInterval    time.Duration
	DueWindow       time.Duration
	RefreshInterval time.Duration
	DedupeDispatch  bool
}

func (c Config) withDefaults() Config {
	if c.PollInterval <= 0 {
		c.PollInterval = domain.DefaultPollInterval
	}
	if c.DueWindow <= 0 {
		c.DueWindow = domain.DefaultDueWindow
	}
	return c
}

type Option func(*Poller)

// WithSnapshotStore persists every successful load and seeds the poller when
// the startup load fails.
func WithSnapshotStore(store domain.SnapshotStore) Option {
	return func(p *Poller) {
		p.snapshots = store
	}
}

func WithDispatchLedger(ledger domain.DispatchLedger) Option {
	return func(p *Poller) {
		p.ledger = ledger
	}
}

func WithCycleRecorder(recorder domain.CycleRecorder) Option {
	return func(p *Poller) {
		p.recorder = recorder
	}
}

func WithMetrics(m *metrics.PollerMetrics) Option {
	return func(p *Poller) {
		p.metrics = m
	}
}

func WithClock(now func() time.Time) Option {
	return func(p *Poller) {
		p.now = now
	}
}
