package cyclerecorder

import (
	"context"

	"github.com/BlendB5/OnTrackr-sub001/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.CycleRecorder {
	return noopRecorder{}
}

func (noopRecorder) RecordCycle(context.Context, domain.CycleResult) error {
	return nil
}

func (noopRecorder) Close() error {
	return nil
}
