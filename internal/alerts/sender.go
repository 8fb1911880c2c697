package alerts

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender delivers one alert to an external channel.
type Sender interface {
	Send(ctx context.Context, a Alert) error
}

// TelegramSender pushes alerts to a Telegram chat.
type TelegramSender struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *slog.Logger
}

// NewTelegramSender creates a sender, or nil when no token is configured —
// a nil sender disables dispatch.
func NewTelegramSender(token string, chatID int64, logger *slog.Logger) *TelegramSender {
	if token == "" || chatID == 0 {
		return nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		logger.Warn("Telegram sender disabled", "error", err)
		return nil
	}
	return &TelegramSender{bot: bot, chatID: chatID, logger: logger}
}

// Send posts the alert as a single message.
func (s *TelegramSender) Send(_ context.Context, a Alert) error {
	text := fmt.Sprintf("[%s] %s\n%s", a.Priority, a.Title, a.Body)
	msg := tgbotapi.NewMessage(s.chatID, text)
	if _, err := s.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
