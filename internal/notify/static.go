package notify

import (
	"context"

	"github.com/BlendB5/OnTrackr-sub001/internal/domain"
)

// StaticGate is a PermissionGate with a fixed answer. Server side channels
// are granted by configuration, so asking again changes nothing.
type StaticGate struct {
	state domain.Permission
}

func NewStaticGate(state domain.Permission) StaticGate {
	return StaticGate{state: state}
}

func (g StaticGate) Permission(context.Context) domain.Permission {
	return g.state
}

func (g StaticGate) RequestPermission(context.Context) (domain.Permission, error) {
	return g.state, nil
}
