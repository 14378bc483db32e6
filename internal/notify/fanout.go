package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/BlendB5/OnTrackr-sub001/internal/domain"
)

// Fanout aggregates channels into a single Notifier and PermissionGate.
type Fanout struct {
	channels []Channel
}

var (
	_ Notifier       = (*Fanout)(nil)
	_ PermissionGate = (*Fanout)(nil)
)

func NewFanout(channels ...Channel) *Fanout {
	return &Fanout{channels: channels}
}

func (f *Fanout) Names() []string {
	names := make([]string, 0, len(f.channels))
	for _, ch := range f.channels {
		names = append(names, ch.Name())
	}
	return names
}

// States returns the current permission of every channel keyed by name.
func (f *Fanout) States(ctx context.Context) map[string]domain.Permission {
	states := make(map[string]domain.Permission, len(f.channels))
	for _, ch := range f.channels {
		states[ch.Name()] = ch.Permission(ctx)
	}
	return states
}

// Permission is granted when any channel is granted, denied when every
// channel is denied, and default otherwise. No channels means default.
func (f *Fanout) Permission(ctx context.Context) domain.Permission {
	if len(f.channels) == 0 {
		return domain.PermissionDefault
	}

	denied := 0
	for _, ch := range f.channels {
		switch ch.Permission(ctx) {
		case domain.PermissionGranted:
			return domain.PermissionGranted
		case domain.PermissionDenied:
			denied++
		}
	}

	if denied == len(f.channels) {
		return domain.PermissionDenied
	}
	return domain.PermissionDefault
}

// RequestPermission asks every undecided channel and returns the aggregate.
func (f *Fanout) RequestPermission(ctx context.Context) (domain.Permission, error) {
	var errs []error
	for _, ch := range f.channels {
		if ch.Permission(ctx).IsDecided() {
			continue
		}

		state, err := ch.RequestPermission(ctx)
		if err != nil {
			slog.WarnContext(ctx, "permission request failed",
				slog.String("channel", ch.Name()),
				slog.String("error", err.Error()),
			)
			errs = append(errs, fmt.Errorf("%s: %w", ch.Name(), err))
			continue
		}

		slog.DebugContext(ctx, "permission requested",
			slog.String("channel", ch.Name()),
			slog.String("state", state.String()),
		)
	}

	return f.Permission(ctx), errors.Join(errs...)
}

// Notify delivers n to every granted channel. Channels without permission are
// skipped silently; ErrNoGrantedChannel is returned when none is granted.
func (f *Fanout) Notify(ctx context.Context, n domain.Notification) error {
	delivered := 0
	var errs []error

	for _, ch := range f.channels {
		if !ch.Permission(ctx).IsGranted() {
			continue
		}

		if err := ch.Notify(ctx, n); err != nil {
			slog.ErrorContext(ctx, "notification delivery failed",
				slog.String("channel", ch.Name()),
				slog.String("tag", n.Tag),
				slog.String("error", err.Error()),
			)
			errs = append(errs, fmt.Errorf("%w: %s: %w", ErrChannelFailed, ch.Name(), err))
			continue
		}
		delivered++
	}

	if delivered == 0 && len(errs) == 0 {
		return ErrNoGrantedChannel
	}

	return errors.Join(errs...)
}
