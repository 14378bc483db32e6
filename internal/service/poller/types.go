package poller

import (
	"time"

	"github.com/BlendB5/OnTrackr-sub001/internal/domain"
)

const (
	TriggerStartup = "startup"
	TriggerRefresh = "refresh"
	TriggerManual  = "manual"
)

const (
	outcomeDispatched   = "dispatched"
	outcomeSuppressed   = "suppressed"
	outcomeDeduplicated = "deduplicated"
	outcomeFailed       = "failed"
)

// Status summarizes the poller state for probes and operators.
type Status struct {
	Running        bool                `json:"running"`
	Loaded         bool                `json:"loaded"`
	LoadedAt       time.Time           `json:"loaded_at,omitzero"`
	LastLoadError  string              `json:"last_load_error,omitempty"`
	SeededFrom     string              `json:"seeded_from,omitempty"`
	ReminderCount  int                 `json:"reminder_count"`
	UpcomingCount  int                 `json:"upcoming_count"`
	LastCycle      *domain.CycleResult `json:"last_cycle,omitempty"`
	PollInterval   string              `json:"poll_interval"`
	DueWindow      string              `json:"due_window"`
	DedupeDispatch bool                `json:"dedupe_dispatch"`
}
