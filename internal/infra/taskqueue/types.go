package taskqueue

import (
	"fmt"
	"time"
)

type NotificationTask struct {
	ScheduleAt time.Time `json:"-"`

	Tag   string `json:"tag"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// TaskID names the task after the notification tag and its schedule second,
// so one dispatch per cycle maps to one task.
func (t *NotificationTask) TaskID() string {
	return fmt.Sprintf("%s-%d", sanitizeTaskID(t.Tag), t.ScheduleAt.Unix())
}

func sanitizeTaskID(tag string) string {
	out := make([]byte, 0, len(tag))
	for i := 0; i < len(tag); i++ {
		c := tag[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
			out = append(out, c)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}

type TaskResponse struct {
	Name         string    `json:"name"`
	ScheduleTime time.Time `json:"schedule_time"`
	CreateTime   time.Time `json:"create_time"`
}

type PrimindTaskRequest struct {
	Task PrimindTask `json:"task"`
}

type PrimindTask struct {
	Name         string             `json:"name,omitempty"`
	HTTPRequest  PrimindHTTPRequest `json:"httpRequest"`
	ScheduleTime string             `json:"scheduleTime,omitempty"`
}

type PrimindHTTPRequest struct {
	Body    string            `json:"body"`
	Headers map[string]string `json:"headers,omitempty"`
}

type PrimindTaskResponse struct {
	Name         string `json:"name"`
	ScheduleTime string `json:"scheduleTime"`
	CreateTime   string `json:"createTime"`
}
