package notify

import "errors"

var (
	ErrNoGrantedChannel = errors.New("no notification channel granted")
	ErrChannelFailed    = errors.New("notification channel failed")
)
