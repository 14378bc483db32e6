package stub

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"sync"
	"time"
)

const (
	relatedEvent = "event"
	relatedTask  = "task"
)

type Bucket struct {
	StartTime    time.Time
	EndTime      time.Time
	Count        int
	Message      string
	RelatedTitle string
	RelatedKind  string
}

type ReminderStorage struct {
	mu        sync.RWMutex
	buckets   map[string][]*Bucket          // runID -> buckets
	reminders map[string][]ReminderResponse // runID -> explicit reminders
	now       func() time.Time
}

func NewReminderStorage() *ReminderStorage {
	return &ReminderStorage{
		buckets:   make(map[string][]*Bucket),
		reminders: make(map[string][]ReminderResponse),
		now:       time.Now,
	}
}

func (s *ReminderStorage) Reset(runID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buckets, runID)
	delete(s.reminders, runID)
}

func (s *ReminderStorage) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buckets = make(map[string][]*Bucket)
	s.reminders = make(map[string][]ReminderResponse)
}

func (s *ReminderStorage) AddBucket(runID string, bucket *Bucket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buckets[runID] = append(s.buckets[runID], bucket)
}

func (s *ReminderStorage) AddReminders(runID string, reminders ...ReminderResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reminders[runID] = append(s.reminders[runID], reminders...)
}

// All returns every reminder of the run ordered by remindAt.
func (s *ReminderStorage) All(runID string) []ReminderResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reminders := slices.Clone(s.reminders[runID])
	for _, bucket := range s.buckets[runID] {
		reminders = append(reminders, generateRemindersForBucket(runID, bucket)...)
	}

	slices.SortStableFunc(reminders, func(a, b ReminderResponse) int {
		return a.RemindAt.Compare(b.RemindAt)
	})

	if reminders == nil {
		return []ReminderResponse{}
	}
	return reminders
}

// Upcoming returns the reminders of the run that fire after now.
func (s *ReminderStorage) Upcoming(runID string) []ReminderResponse {
	now := s.now()

	upcoming := make([]ReminderResponse, 0)
	for _, r := range s.All(runID) {
		if r.RemindAt.After(now) {
			upcoming = append(upcoming, r)
		}
	}
	return upcoming
}

func generateRemindersForBucket(runID string, bucket *Bucket) []ReminderResponse {
	if bucket.Count <= 0 {
		return nil
	}

	bucketDuration := bucket.EndTime.Sub(bucket.StartTime)
	if bucketDuration <= 0 {
		bucketDuration = time.Minute
	}

	interval := bucketDuration / time.Duration(bucket.Count)
	if interval == 0 {
		interval = time.Second
	}

	reminders := make([]ReminderResponse, 0, bucket.Count)
	for i := range bucket.Count {
		id := generateReminderID(runID, bucket.StartTime, i)

		r := ReminderResponse{
			ID:       id,
			RemindAt: bucket.StartTime.Add(time.Duration(i) * interval),
		}
		if bucket.Message != "" {
			r.Message = ptr(bucket.Message)
		}

		relatedID := id[len(id)-16:]
		related := &RelatedResponse{ID: relatedID, Title: bucket.RelatedTitle}
		if bucket.RelatedKind == relatedEvent {
			r.EventID = ptr(relatedID)
			r.Event = related
		} else {
			r.TaskID = ptr(relatedID)
			r.Task = related
		}

		reminders = append(reminders, r)
	}

	return reminders
}

func generateReminderID(runID string, bucketStart time.Time, index int) string {
	input := fmt.Sprintf("%s-%s-%d", runID, bucketStart.Format("20060102150405"), index)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%s-%s-%s", runID, bucketStart.Format("20060102150405"), hex.EncodeToString(hash[:8]))
}

func ptr(s string) *string {
	return &s
}
