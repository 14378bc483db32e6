package taskqueue

import "errors"

var (
	ErrUnexpectedStatus = errors.New("unexpected status code from task queue")
	ErrRetriesExhausted = errors.New("task queue retries exhausted")
)
