package config

import (
	"os"
	"strconv"
	"strings"
)

const (
	telegramBotTokenEnv = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv   = "TELEGRAM_CHAT_ID"
	wsJWTSecretEnv      = "WS_JWT_SECRET"
	wsAllowedOriginsEnv = "WS_ALLOWED_ORIGINS"
)

type ChannelConfig struct {
	TelegramBotToken string
	TelegramChatID   int64
	// WSJWTSecret enables HS256 token checks on websocket subscriptions.
	WSJWTSecret string
	// WSAllowedOrigins restricts browser origins; empty allows any.
	WSAllowedOrigins []string
}

func LoadChannelConfig() (*ChannelConfig, error) {
	var chatID int64
	if raw := os.Getenv(telegramChatIDEnv); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, ErrInvalidTelegramChatID
		}
		chatID = parsed
	}

	return &ChannelConfig{
		TelegramBotToken: os.Getenv(telegramBotTokenEnv),
		TelegramChatID:   chatID,
		WSJWTSecret:      os.Getenv(wsJWTSecretEnv),
		WSAllowedOrigins: splitList(os.Getenv(wsAllowedOriginsEnv)),
	}, nil
}

func (c *ChannelConfig) TelegramEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != 0
}

func splitList(raw string) []string {
	var out []string
	for part := range strings.SplitSeq(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
