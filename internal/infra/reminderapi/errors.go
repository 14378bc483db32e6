package reminderapi

import "errors"

var (
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrInvalidReminder  = errors.New("invalid reminder payload")
)
