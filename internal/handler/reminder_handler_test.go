package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"

	"github.com/BlendB5/OnTrackr-sub001/internal/domain"
	"github.com/BlendB5/OnTrackr-sub001/internal/infra/taskqueue"
	"github.com/BlendB5/OnTrackr-sub001/internal/service/poller"
)

var testNow = time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)

func newTestRouter(h *ReminderHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	v1.GET("/reminders", h.HandleListReminders)
	v1.GET("/reminders/upcoming", h.HandleListUpcoming)
	v1.GET("/reminders/due", h.HandleDuePreview)
	v1.POST("/reminders/refresh", h.HandleRefresh)
	v1.POST("/poll", h.HandlePoll)
	v1.GET("/status", h.HandleStatus)

	return router
}

func serve(router *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return v
}

func TestHandleListReminders(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockPoller := NewMockReminderPoller(ctrl)

	mockPoller.EXPECT().Reminders().Return([]domain.Reminder{
		{ID: "r1", RemindAt: testNow, Message: "Stand-up", EventID: "e1"},
	})

	w := serve(newTestRouter(NewReminderHandler(mockPoller)), http.MethodGet, "/api/v1/reminders")

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", w.Code, http.StatusOK)
	}
	resp := decode[ReminderListResponse](t, w)
	if resp.Count != 1 || resp.Reminders[0].ID != "r1" || resp.Reminders[0].EventID != "e1" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestHandleListUpcomingEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockPoller := NewMockReminderPoller(ctrl)

	mockPoller.EXPECT().Upcoming().Return([]domain.Reminder{})

	w := serve(newTestRouter(NewReminderHandler(mockPoller)), http.MethodGet, "/api/v1/reminders/upcoming")

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	raw := decode[map[string]json.RawMessage](t, w)
	if string(raw["reminders"]) != "[]" {
		t.Errorf("expected an empty array, got %s", raw["reminders"])
	}
}

func TestHandleDuePreview(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantAt     time.Time
		wantStatus int
	}{
		{
			name:       "defaults to now",
			query:      "",
			wantAt:     testNow,
			wantStatus: http.StatusOK,
		},
		{
			name:       "explicit time",
			query:      "?at=2024-01-15T15:00:00Z",
			wantAt:     time.Date(2024, 1, 15, 15, 0, 0, 0, time.UTC),
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid time",
			query:      "?at=tomorrow",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockPoller := NewMockReminderPoller(ctrl)

			if tt.wantStatus == http.StatusOK {
				mockPoller.EXPECT().Preview(tt.wantAt).Return([]domain.Reminder{{ID: "r1", RemindAt: tt.wantAt}})
			}

			h := NewReminderHandler(mockPoller)
			h.now = func() time.Time { return testNow }

			w := serve(newTestRouter(h), http.MethodGet, "/api/v1/reminders/due"+tt.query)

			if w.Code != tt.wantStatus {
				t.Fatalf("status: got %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				resp := decode[ErrorResponse](t, w)
				if resp.Error != "validation_error" {
					t.Errorf("error code: got %q", resp.Error)
				}
				return
			}

			resp := decode[DuePreviewResponse](t, w)
			if !resp.At.Equal(tt.wantAt) || resp.Count != 1 {
				t.Errorf("unexpected response: %+v", resp)
			}
		})
	}
}

func TestHandleRefresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockPoller := NewMockReminderPoller(ctrl)

	mockPoller.EXPECT().Refresh(gomock.Any()).Return(nil)
	mockPoller.EXPECT().Reminders().Return([]domain.Reminder{{ID: "r1"}, {ID: "r2"}})
	mockPoller.EXPECT().Upcoming().Return([]domain.Reminder{{ID: "r2"}})

	w := serve(newTestRouter(NewReminderHandler(mockPoller)), http.MethodPost, "/api/v1/reminders/refresh")

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	resp := decode[RefreshResponse](t, w)
	if resp.ReminderCount != 2 || resp.UpcomingCount != 1 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestHandleRefreshFetchError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockPoller := NewMockReminderPoller(ctrl)

	mockPoller.EXPECT().Refresh(gomock.Any()).Return(errors.New("fetch_all: connection refused"))

	w := serve(newTestRouter(NewReminderHandler(mockPoller)), http.MethodPost, "/api/v1/reminders/refresh")

	if w.Code != http.StatusBadGateway {
		t.Fatalf("status: got %d, want %d", w.Code, http.StatusBadGateway)
	}
	resp := decode[ErrorResponse](t, w)
	if resp.Error != "fetch_error" {
		t.Errorf("error code: got %q", resp.Error)
	}
}

func TestHandlePoll(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockPoller := NewMockReminderPoller(ctrl)

	mockPoller.EXPECT().RunCycle(gomock.Any()).Return(domain.CycleResult{
		CycleID:    "c1",
		Considered: 3,
		Due:        1,
		Dispatched: 1,
		DueIDs:     []string{"r1"},
	})

	w := serve(newTestRouter(NewReminderHandler(mockPoller)), http.MethodPost, "/api/v1/poll")

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	resp := decode[domain.CycleResult](t, w)
	if resp.CycleID != "c1" || resp.Dispatched != 1 || len(resp.DueIDs) != 1 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestHandleStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockPoller := NewMockReminderPoller(ctrl)

	mockPoller.EXPECT().Status().Return(poller.Status{Running: true, Loaded: true, ReminderCount: 4})

	w := serve(newTestRouter(NewReminderHandler(mockPoller)), http.MethodGet, "/api/v1/status")

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	resp := decode[poller.Status](t, w)
	if !resp.Running || resp.ReminderCount != 4 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestHandleCancelPushTask(t *testing.T) {
	tests := []struct {
		name       string
		deleteErr  error
		wantStatus int
	}{
		{name: "deleted", deleteErr: nil, wantStatus: http.StatusNoContent},
		{name: "queue failure", deleteErr: errors.New("unavailable"), wantStatus: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			queue := taskqueue.NewMockTaskQueue(ctrl)
			queue.EXPECT().DeleteTask(gomock.Any(), "r1-1705329000").Return(tt.deleteErr)

			gin.SetMode(gin.TestMode)
			router := gin.New()
			router.DELETE("/api/v1/push-tasks/:id", NewPushTaskHandler(queue).HandleCancel)

			w := serve(router, http.MethodDelete, "/api/v1/push-tasks/r1-1705329000")

			if w.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}
