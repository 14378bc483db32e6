//go:build gcloud

package taskqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type CloudTasksConfig struct {
	ProjectID  string
	LocationID string
	QueueID    string
	TargetURL  string
	MaxRetries int
}

type CloudTasksClient struct {
	client     *cloudtasks.Client
	queuePath  string
	targetURL  string
	maxRetries int
}

var _ TaskQueue = (*CloudTasksClient)(nil)

func NewCloudTasksClient(ctx context.Context, cfg CloudTasksConfig) (*CloudTasksClient, error) {
	client, err := cloudtasks.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud tasks client: %w", err)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	return &CloudTasksClient{
		client:     client,
		queuePath:  fmt.Sprintf("projects/%s/locations/%s/queues/%s", cfg.ProjectID, cfg.LocationID, cfg.QueueID),
		targetURL:  cfg.TargetURL,
		maxRetries: maxRetries,
	}, nil
}

func (c *CloudTasksClient) taskPath(taskID string) string {
	return c.queuePath + "/tasks/" + taskID
}

func (c *CloudTasksClient) RegisterNotification(ctx context.Context, task *NotificationTask) (*TaskResponse, error) {
	payload, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notification task: %w", err)
	}

	cloudTask := &taskspb.Task{
		Name: c.taskPath(task.TaskID()),
		MessageType: &taskspb.Task_HttpRequest{
			HttpRequest: &taskspb.HttpRequest{
				HttpMethod: taskspb.HttpMethod_POST,
				Url:        c.targetURL,
				Headers:    map[string]string{"Content-Type": "application/json"},
				Body:       payload,
			},
		},
	}
	if !task.ScheduleAt.IsZero() {
		cloudTask.ScheduleTime = timestamppb.New(task.ScheduleAt)
	}

	req := &taskspb.CreateTaskRequest{
		Parent: c.queuePath,
		Task:   cloudTask,
	}

	var resp *TaskResponse
	err = retry(ctx, c.maxRetries, "register", task.TaskID(), func() error {
		created, createErr := c.client.CreateTask(ctx, req)
		if createErr != nil {
			if status.Code(createErr) == codes.AlreadyExists {
				slog.InfoContext(ctx, "cloud task already registered",
					slog.String("tag", task.Tag),
					slog.String("task_name", cloudTask.Name),
				)
				resp = &TaskResponse{Name: cloudTask.Name, ScheduleTime: task.ScheduleAt}
				return nil
			}
			slog.WarnContext(ctx, "failed to create cloud task",
				slog.String("tag", task.Tag),
				slog.String("error", createErr.Error()),
			)
			return fmt.Errorf("failed to create cloud task: %w", createErr)
		}

		resp = &TaskResponse{Name: created.GetName()}
		if created.GetScheduleTime() != nil {
			resp.ScheduleTime = created.GetScheduleTime().AsTime()
		}
		if created.GetCreateTime() != nil {
			resp.CreateTime = created.GetCreateTime().AsTime()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "notification task registered",
		slog.String("task_name", resp.Name),
		slog.String("tag", task.Tag),
	)

	return resp, nil
}

func (c *CloudTasksClient) DeleteTask(ctx context.Context, taskID string) error {
	name := c.taskPath(taskID)

	return retry(ctx, c.maxRetries, "delete", taskID, func() error {
		err := c.client.DeleteTask(ctx, &taskspb.DeleteTaskRequest{Name: name})
		if err == nil || status.Code(err) == codes.NotFound {
			return nil
		}
		return fmt.Errorf("failed to delete cloud task: %w", err)
	})
}

func (c *CloudTasksClient) Close() error {
	return c.client.Close()
}
