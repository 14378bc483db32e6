package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/BlendB5/OnTrackr-sub001/internal/domain"
	"github.com/BlendB5/OnTrackr-sub001/internal/infra/taskqueue"
)

// QueueChannel hands notifications to a push task queue for delivery.
type QueueChannel struct {
	StaticGate
	queue taskqueue.TaskQueue
	now   func() time.Time
}

var _ Channel = (*QueueChannel)(nil)

func NewQueueChannel(queue taskqueue.TaskQueue) *QueueChannel {
	return &QueueChannel{
		StaticGate: NewStaticGate(domain.PermissionGranted),
		queue:      queue,
		now:        time.Now,
	}
}

func (q *QueueChannel) Name() string {
	return "push_queue"
}

func (q *QueueChannel) Notify(ctx context.Context, n domain.Notification) error {
	_, err := q.queue.RegisterNotification(ctx, &taskqueue.NotificationTask{
		ScheduleAt: q.now().Truncate(time.Second),
		Tag:        n.Tag,
		Title:      n.Title,
		Body:       n.Body,
	})
	if err != nil {
		return fmt.Errorf("failed to register push task: %w", err)
	}
	return nil
}
