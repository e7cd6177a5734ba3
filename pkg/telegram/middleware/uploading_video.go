package middleware

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/dskvich/video-bot/pkg/logger"
)

// UploadingVideo shows the "sending video" chat action while a plain
// message is handled. Commands are answered instantly and skip it.
func UploadingVideo(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if b != nil && update.Message != nil && !isCommand(update.Message) {
			if _, err := b.SendChatAction(ctx, &bot.SendChatActionParams{
				ChatID:          update.Message.Chat.ID,
				MessageThreadID: update.Message.MessageThreadID,
				Action:          models.ChatActionUploadVideo,
			}); err != nil {
				slog.WarnContext(ctx, "Failed to send chat action", logger.Err(err))
			}
		}
		next(ctx, b, update)
	}
}

func isCommand(m *models.Message) bool {
	return len(m.Text) > 0 && m.Text[0] == '/'
}
