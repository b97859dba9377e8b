// Package notify sends run-completion notifications.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"

	"github.com/robinFdr/MailBackup/pkg/models"
)

// Telegram posts one summary message per finished account backup.
type Telegram struct {
	bot    *bot.Bot
	chatID int64
	logger *slog.Logger
}

func NewTelegram(token string, chatID int64, logger *slog.Logger) (*Telegram, error) {
	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &Telegram{
		bot:    b,
		chatID: chatID,
		logger: logger.With("component", "telegram_notify"),
	}, nil
}

func (t *Telegram) RunFinished(ctx context.Context, summary *models.RunSummary) error {
	text := fmt.Sprintf("Mail backup finished for %s\nStarted: %s\nFolders: %d\nSaved: %d\nFailed: %d",
		summary.Account,
		summary.StartedAt.Format("02.01.2006 15:04"),
		summary.Folders,
		summary.Saved,
		summary.Failed,
	)

	_, err := t.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: t.chatID,
		Text:   text,
	})
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	t.logger.Debug("run notification sent", "account", summary.Account)
	return nil
}
