package poller

import "errors"

var (
	ErrAlreadyRunning = errors.New("poller already running")
	ErrLedgerRequired = errors.New("dispatch ledger required when deduplication is enabled")
)
