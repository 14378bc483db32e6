package config

import "errors"

var (
	ErrRedisAddrMissing       = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB         = errors.New("REDIS_DB must be a valid integer")
	ErrRemindersAPIURLMissing = errors.New("REMINDERS_API_URL environment variable is required")
	ErrInvalidTelegramChatID  = errors.New("TELEGRAM_CHAT_ID must be a valid integer")
	ErrDueWindowTooShort      = errors.New("DUE_WINDOW_SECONDS must not be shorter than POLL_INTERVAL_SECONDS")
	ErrTelegramChatIDMissing  = errors.New("TELEGRAM_CHAT_ID is required when TELEGRAM_BOT_TOKEN is set")
)
