package domain

import (
	"context"
	"time"
)

type CycleResult struct {
	CycleID      string    `json:"cycle_id"`
	EvaluatedAt  time.Time `json:"evaluated_at"`
	Considered   int       `json:"considered"`
	Due          int       `json:"due"`
	Dispatched   int       `json:"dispatched"`
	Suppressed   int       `json:"suppressed"`
	Deduplicated int       `json:"deduplicated"`
	Failed       int       `json:"failed"`
	DueIDs       []string  `json:"due_ids"`
}

//go:generate mockgen -source=cycle.go -destination=cycle_mock.go -package=domain

type CycleRecorder interface {
	RecordCycle(ctx context.Context, result CycleResult) error
	Close() error
}
