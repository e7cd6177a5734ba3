package handlers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

type SettingsDeleter interface {
	Delete(ctx context.Context, chatID int64, topicID int) error
}

func ResetSettings(deleter SettingsDeleter) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		slog.InfoContext(ctx, "Resetting settings")

		chatID := update.Message.Chat.ID
		topicID := update.Message.MessageThreadID

		if err := deleter.Delete(ctx, chatID, topicID); err != nil {
			sendText(ctx, b, chatID, topicID, fmt.Sprintf("❌ Failed to reset settings: %+v", err))
			return
		}

		sendText(ctx, b, chatID, topicID, "🧹 Settings restored to defaults. 🚀")
	}
}
