package stub

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	storage *ReminderStorage
}

func NewHandler(storage *ReminderStorage) *Handler {
	return &Handler{storage: storage}
}

// Register mounts the stub routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/reset", h.HandleReset)
	r.POST("/seed", h.HandleSeed)
	r.GET("/api/reminders", h.HandleGetReminders)
	r.GET("/api/reminders/upcoming", h.HandleGetUpcoming)
}

func (h *Handler) HandleReset(c *gin.Context) {
	runID := c.DefaultQuery("run_id", "default")

	h.storage.Reset(runID)

	slog.Info("reset data", slog.String("run_id", runID))

	c.JSON(http.StatusOK, gin.H{
		"status": "reset complete",
		"run_id": runID,
	})
}

func (h *Handler) HandleSeed(c *gin.Context) {
	runID := c.DefaultQuery("run_id", "default")

	var req SeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for _, r := range req.Reminders {
		if r.ID == "" || r.RemindAt.IsZero() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "reminders require id and remindAt"})
			return
		}
	}

	buckets := make([]*Bucket, 0, len(req.Buckets))
	totalCount := len(req.Reminders)
	for _, sb := range req.Buckets {
		startTime, err := time.Parse(time.RFC3339, sb.StartTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_time: " + sb.StartTime})
			return
		}
		endTime, err := time.Parse(time.RFC3339, sb.EndTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_time: " + sb.EndTime})
			return
		}

		kind := sb.RelatedKind
		if kind != relatedEvent {
			kind = relatedTask
		}

		buckets = append(buckets, &Bucket{
			StartTime:    startTime,
			EndTime:      endTime,
			Count:        sb.Count,
			Message:      sb.Message,
			RelatedTitle: sb.RelatedTitle,
			RelatedKind:  kind,
		})
		totalCount += sb.Count
	}

	for _, b := range buckets {
		h.storage.AddBucket(runID, b)
	}
	h.storage.AddReminders(runID, req.Reminders...)

	slog.Info("seeded data",
		slog.String("run_id", runID),
		slog.Int("bucket_count", len(req.Buckets)),
		slog.Int("total_reminder_count", totalCount),
	)

	c.JSON(http.StatusOK, gin.H{
		"status":       "seeded",
		"run_id":       runID,
		"bucket_count": len(req.Buckets),
		"total_count":  totalCount,
	})
}

// GET /api/reminders?run_id=...
func (h *Handler) HandleGetReminders(c *gin.Context) {
	runID := c.DefaultQuery("run_id", "default")
	reminders := h.storage.All(runID)

	slog.Debug("get reminders",
		slog.String("run_id", runID),
		slog.Int("count", len(reminders)),
	)

	c.JSON(http.StatusOK, reminders)
}

// GET /api/reminders/upcoming?run_id=...
func (h *Handler) HandleGetUpcoming(c *gin.Context) {
	runID := c.DefaultQuery("run_id", "default")
	reminders := h.storage.Upcoming(runID)

	slog.Debug("get upcoming reminders",
		slog.String("run_id", runID),
		slog.Int("count", len(reminders)),
	)

	c.JSON(http.StatusOK, reminders)
}
