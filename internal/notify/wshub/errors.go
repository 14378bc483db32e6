package wshub

import "errors"

var (
	ErrNoSubscribers = errors.New("no websocket subscribers")
	ErrTokenRequired = errors.New("token required")
	ErrInvalidToken  = errors.New("invalid token")
)
