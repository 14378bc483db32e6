package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BlendB5/OnTrackr-sub001/internal/infra/taskqueue"
)

// PushTaskHandler lets operators withdraw a queued push notification before
// the queue delivers it.
type PushTaskHandler struct {
	taskQueue taskqueue.TaskQueue
}

func NewPushTaskHandler(taskQueue taskqueue.TaskQueue) *PushTaskHandler {
	return &PushTaskHandler{
		taskQueue: taskQueue,
	}
}

func (h *PushTaskHandler) HandleCancel(c *gin.Context) {
	ctx := c.Request.Context()
	taskID := c.Param("id")

	if taskID == "" {
		respondError(c, http.StatusBadRequest, "validation_error", "task id is required")
		return
	}

	slog.InfoContext(ctx, "cancelling push task",
		slog.String("task_id", taskID),
	)

	if err := h.taskQueue.DeleteTask(ctx, taskID); err != nil {
		slog.ErrorContext(ctx, "failed to cancel push task",
			slog.String("task_id", taskID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusBadGateway, "queue_error", err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}
