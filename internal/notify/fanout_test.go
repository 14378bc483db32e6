package notify

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/BlendB5/OnTrackr-sub001/internal/domain"
)

func newChannel(ctrl *gomock.Controller, name string, state domain.Permission) *MockChannel {
	ch := NewMockChannel(ctrl)
	ch.EXPECT().Name().Return(name).AnyTimes()
	ch.EXPECT().Permission(gomock.Any()).Return(state).AnyTimes()
	return ch
}

func TestFanoutPermission(t *testing.T) {
	tests := []struct {
		name   string
		states []domain.Permission
		want   domain.Permission
	}{
		{
			name:   "no channels",
			states: nil,
			want:   domain.PermissionDefault,
		},
		{
			name:   "any granted wins",
			states: []domain.Permission{domain.PermissionDenied, domain.PermissionGranted, domain.PermissionDefault},
			want:   domain.PermissionGranted,
		},
		{
			name:   "all denied",
			states: []domain.Permission{domain.PermissionDenied, domain.PermissionDenied},
			want:   domain.PermissionDenied,
		},
		{
			name:   "denied and undecided",
			states: []domain.Permission{domain.PermissionDenied, domain.PermissionDefault},
			want:   domain.PermissionDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			channels := make([]Channel, 0, len(tt.states))
			for i, state := range tt.states {
				channels = append(channels, newChannel(ctrl, string(rune('a'+i)), state))
			}

			got := NewFanout(channels...).Permission(context.Background())
			if got != tt.want {
				t.Errorf("Permission: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFanoutNotifyOnlyGrantedChannels(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	n := domain.Notification{Title: "Reminder", Body: "Stand-up", Tag: "r1"}

	granted := newChannel(ctrl, "granted", domain.PermissionGranted)
	granted.EXPECT().Notify(gomock.Any(), n).Return(nil).Times(1)

	denied := newChannel(ctrl, "denied", domain.PermissionDenied)
	undecided := newChannel(ctrl, "undecided", domain.PermissionDefault)

	if err := NewFanout(denied, granted, undecided).Notify(ctx, n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFanoutNotifyWithoutGrantedChannel(t *testing.T) {
	ctrl := gomock.NewController(t)

	denied := newChannel(ctrl, "denied", domain.PermissionDenied)

	err := NewFanout(denied).Notify(context.Background(), domain.Notification{Tag: "r1"})
	if !errors.Is(err, ErrNoGrantedChannel) {
		t.Errorf("expected ErrNoGrantedChannel, got %v", err)
	}
}

func TestFanoutNotifyContinuesAfterFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	n := domain.Notification{Tag: "r1"}
	sendErr := errors.New("boom")

	failing := newChannel(ctrl, "failing", domain.PermissionGranted)
	failing.EXPECT().Notify(gomock.Any(), n).Return(sendErr)

	healthy := newChannel(ctrl, "healthy", domain.PermissionGranted)
	healthy.EXPECT().Notify(gomock.Any(), n).Return(nil)

	err := NewFanout(failing, healthy).Notify(context.Background(), n)
	if !errors.Is(err, ErrChannelFailed) {
		t.Errorf("expected ErrChannelFailed, got %v", err)
	}
	if !errors.Is(err, sendErr) {
		t.Errorf("expected wrapped channel error, got %v", err)
	}
}

func TestFanoutRequestPermissionAsksUndecidedOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	granted := newChannel(ctrl, "granted", domain.PermissionGranted)
	denied := newChannel(ctrl, "denied", domain.PermissionDenied)

	undecided := NewMockChannel(ctrl)
	undecided.EXPECT().Name().Return("undecided").AnyTimes()
	gomock.InOrder(
		undecided.EXPECT().Permission(gomock.Any()).Return(domain.PermissionDefault),
		undecided.EXPECT().RequestPermission(gomock.Any()).Return(domain.PermissionDefault, nil),
	)
	undecided.EXPECT().Permission(gomock.Any()).Return(domain.PermissionDefault).AnyTimes()

	got, err := NewFanout(granted, denied, undecided).RequestPermission(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != domain.PermissionGranted {
		t.Errorf("RequestPermission: got %v, want granted", got)
	}
}

func TestFanoutRequestPermissionJoinsErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	reqErr := errors.New("no subscribers")

	undecided := newChannel(ctrl, "websocket", domain.PermissionDefault)
	undecided.EXPECT().RequestPermission(gomock.Any()).Return(domain.PermissionDefault, reqErr)

	got, err := NewFanout(undecided).RequestPermission(context.Background())
	if !errors.Is(err, reqErr) {
		t.Errorf("expected joined error, got %v", err)
	}
	if got != domain.PermissionDefault {
		t.Errorf("RequestPermission: got %v, want default", got)
	}
}

func TestFanoutStates(t *testing.T) {
	ctrl := gomock.NewController(t)

	f := NewFanout(
		newChannel(ctrl, "telegram", domain.PermissionGranted),
		newChannel(ctrl, "websocket", domain.PermissionDefault),
	)

	states := f.States(context.Background())
	if states["telegram"] != domain.PermissionGranted || states["websocket"] != domain.PermissionDefault {
		t.Errorf("unexpected states: %v", states)
	}
	if names := f.Names(); len(names) != 2 || names[0] != "telegram" || names[1] != "websocket" {
		t.Errorf("unexpected names: %v", names)
	}
}
