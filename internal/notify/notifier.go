package notify

import (
	"context"

	"github.com/BlendB5/OnTrackr-sub001/internal/domain"
)

//go:generate mockgen -source=notifier.go -destination=mock.go -package=notify

// Notifier delivers a notification through a single capability.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}

// PermissionGate reports and requests the user's permission to be notified.
type PermissionGate interface {
	Permission(ctx context.Context) domain.Permission
	RequestPermission(ctx context.Context) (domain.Permission, error)
}

type Channel interface {
	Notifier
	PermissionGate
	Name() string
}
