package notify

import (
	"context"
	"fmt"
	"html"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/BlendB5/OnTrackr-sub001/internal/domain"
)

// MessageSender is satisfied by *tgbotapi.BotAPI.
type MessageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type TelegramChannel struct {
	StaticGate
	sender MessageSender
	chatID int64
}

var _ Channel = (*TelegramChannel)(nil)

func NewTelegramChannel(sender MessageSender, chatID int64) *TelegramChannel {
	return &TelegramChannel{
		StaticGate: NewStaticGate(domain.PermissionGranted),
		sender:     sender,
		chatID:     chatID,
	}
}

func (t *TelegramChannel) Name() string {
	return "telegram"
}

func (t *TelegramChannel) Notify(_ context.Context, n domain.Notification) error {
	msg := tgbotapi.NewMessage(t.chatID, formatTelegramMessage(n))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := t.sender.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}

func formatTelegramMessage(n domain.Notification) string {
	return fmt.Sprintf("⏰ <b>%s</b>\n%s", html.EscapeString(n.Title), html.EscapeString(n.Body))
}
