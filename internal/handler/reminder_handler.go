package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type ReminderHandler struct {
	poller ReminderPoller
	now    func() time.Time
}

func NewReminderHandler(poller ReminderPoller) *ReminderHandler {
	return &ReminderHandler{
		poller: poller,
		now:    time.Now,
	}
}

func (h *ReminderHandler) HandleListReminders(c *gin.Context) {
	c.JSON(http.StatusOK, newReminderList(h.poller.Reminders()))
}

func (h *ReminderHandler) HandleListUpcoming(c *gin.Context) {
	c.JSON(http.StatusOK, newReminderList(h.poller.Upcoming()))
}

// HandleDuePreview evaluates the due window at ?at= (RFC3339, default now)
// without dispatching anything.
func (h *ReminderHandler) HandleDuePreview(c *gin.Context) {
	at := h.now()
	if atStr := c.Query("at"); atStr != "" {
		parsed, err := time.Parse(time.RFC3339, atStr)
		if err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "invalid at time format, expected RFC3339")
			return
		}
		at = parsed
	}

	due := h.poller.Preview(at)

	c.JSON(http.StatusOK, DuePreviewResponse{
		At:        at,
		Reminders: toReminderResponses(due),
		Count:     len(due),
	})
}

func (h *ReminderHandler) HandleRefresh(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.poller.Refresh(ctx); err != nil {
		slog.WarnContext(ctx, "manual reminder refresh failed",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusBadGateway, "fetch_error", err.Error())
		return
	}

	c.JSON(http.StatusOK, RefreshResponse{
		ReminderCount: len(h.poller.Reminders()),
		UpcomingCount: len(h.poller.Upcoming()),
	})
}

func (h *ReminderHandler) HandlePoll(c *gin.Context) {
	ctx := c.Request.Context()

	slog.InfoContext(ctx, "running due-check on operator request")

	c.JSON(http.StatusOK, h.poller.RunCycle(ctx))
}

func (h *ReminderHandler) HandleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.poller.Status())
}
