package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/mock/gomock"

	"github.com/BlendB5/OnTrackr-sub001/internal/domain"
	"github.com/BlendB5/OnTrackr-sub001/internal/infra/taskqueue"
)

type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

func TestTelegramChannelNotify(t *testing.T) {
	sender := &fakeSender{}
	ch := NewTelegramChannel(sender, 42)

	if ch.Permission(context.Background()) != domain.PermissionGranted {
		t.Fatal("expected configured telegram channel to be granted")
	}

	err := ch.Notify(context.Background(), domain.Notification{
		Title: "Reminder",
		Body:  "Review <PR> & merge",
		Tag:   "r1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(sender.sent))
	}
	msg, ok := sender.sent[0].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("expected MessageConfig, got %T", sender.sent[0])
	}
	if msg.ChatID != 42 {
		t.Errorf("ChatID: got %d", msg.ChatID)
	}
	if msg.ParseMode != tgbotapi.ModeHTML {
		t.Errorf("ParseMode: got %q", msg.ParseMode)
	}
	if !strings.Contains(msg.Text, "<b>Reminder</b>") {
		t.Errorf("expected bold title, got %q", msg.Text)
	}
	if !strings.Contains(msg.Text, "Review &lt;PR&gt; &amp; merge") {
		t.Errorf("expected escaped body, got %q", msg.Text)
	}
}

func TestTelegramChannelNotifyError(t *testing.T) {
	sendErr := errors.New("telegram down")
	ch := NewTelegramChannel(&fakeSender{err: sendErr}, 42)

	if err := ch.Notify(context.Background(), domain.Notification{Tag: "r1"}); !errors.Is(err, sendErr) {
		t.Errorf("expected wrapped send error, got %v", err)
	}
}

func TestQueueChannelNotify(t *testing.T) {
	ctrl := gomock.NewController(t)
	queue := taskqueue.NewMockTaskQueue(ctrl)

	now := time.Date(2024, 1, 15, 14, 30, 0, 500, time.UTC)
	ch := NewQueueChannel(queue)
	ch.now = func() time.Time { return now }

	queue.EXPECT().
		RegisterNotification(gomock.Any(), &taskqueue.NotificationTask{
			ScheduleAt: now.Truncate(time.Second),
			Tag:        "r1",
			Title:      "Reminder",
			Body:       "Stand-up",
		}).
		Return(&taskqueue.TaskResponse{Name: "tasks/r1"}, nil)

	err := ch.Notify(context.Background(), domain.Notification{Title: "Reminder", Body: "Stand-up", Tag: "r1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueueChannelNotifyError(t *testing.T) {
	ctrl := gomock.NewController(t)
	queue := taskqueue.NewMockTaskQueue(ctrl)
	queueErr := errors.New("queue unavailable")

	queue.EXPECT().RegisterNotification(gomock.Any(), gomock.Any()).Return(nil, queueErr)

	err := NewQueueChannel(queue).Notify(context.Background(), domain.Notification{Tag: "r1"})
	if !errors.Is(err, queueErr) {
		t.Errorf("expected wrapped queue error, got %v", err)
	}
}
