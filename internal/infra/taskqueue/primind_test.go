//go:build !gcloud

package taskqueue

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestPrimindRegisterNotification(t *testing.T) {
	scheduleAt := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)

	var got PrimindTaskRequest
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(PrimindTaskResponse{
			Name:         "tasks/r1-1705329000",
			ScheduleTime: "2024-01-15T14:30:00Z",
			CreateTime:   "2024-01-15T14:29:59Z",
		})
	}))
	defer server.Close()

	client := NewPrimindTasksClient(server.URL, "reminders", 1)

	resp, err := client.RegisterNotification(context.Background(), &NotificationTask{
		ScheduleAt: scheduleAt,
		Tag:        "r1",
		Title:      "Reminder",
		Body:       "Stand-up",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/tasks/reminders" {
		t.Errorf("path: got %q, want %q", gotPath, "/tasks/reminders")
	}
	if got.Task.Name != "r1-1705329000" {
		t.Errorf("task name: got %q", got.Task.Name)
	}
	if got.Task.ScheduleTime != "2024-01-15T14:30:00Z" {
		t.Errorf("schedule time: got %q", got.Task.ScheduleTime)
	}

	body, err := base64.StdEncoding.DecodeString(got.Task.HTTPRequest.Body)
	if err != nil {
		t.Fatalf("body is not base64: %v", err)
	}
	var payload map[string]string
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("body is not json: %v", err)
	}
	if payload["tag"] != "r1" || payload["title"] != "Reminder" || payload["body"] != "Stand-up" {
		t.Errorf("unexpected payload: %v", payload)
	}

	if resp.Name != "tasks/r1-1705329000" {
		t.Errorf("response name: got %q", resp.Name)
	}
	if !resp.ScheduleTime.Equal(scheduleAt) {
		t.Errorf("response schedule time: got %v", resp.ScheduleTime)
	}
}

func TestPrimindRegisterNotificationRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(PrimindTaskResponse{Name: "tasks/ok"})
	}))
	defer server.Close()

	client := NewPrimindTasksClient(server.URL, "default", 3)

	resp, err := client.RegisterNotification(context.Background(), &NotificationTask{Tag: "r1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Name != "tasks/ok" {
		t.Errorf("response name: got %q", resp.Name)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestPrimindRegisterNotificationExhausted(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewPrimindTasksClient(server.URL, "default", 2)

	_, err := client.RegisterNotification(context.Background(), &NotificationTask{Tag: "r1"})
	if !errors.Is(err, ErrRetriesExhausted) {
		t.Errorf("expected ErrRetriesExhausted, got %v", err)
	}
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Errorf("expected wrapped ErrUnexpectedStatus, got %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 attempts, got %d", calls.Load())
	}
}

func TestPrimindDeleteTaskNotFoundIsSuccess(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewPrimindTasksClient(server.URL, "default", 1)

	if err := client.DeleteTask(context.Background(), "r1-1705329000"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodDelete {
		t.Errorf("method: got %q", gotMethod)
	}
	if gotPath != "/tasks/r1-1705329000" {
		t.Errorf("path: got %q", gotPath)
	}
}

func TestTaskIDSanitizesTag(t *testing.T) {
	task := &NotificationTask{
		Tag:        "rem/1 a.b",
		ScheduleAt: time.Unix(100, 0),
	}

	if got := task.TaskID(); got != "rem_1_a_b-100" {
		t.Errorf("TaskID: got %q", got)
	}
}
