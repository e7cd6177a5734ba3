package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/dskvich/video-bot/pkg/domain"
)

type settingsLoader interface {
	Get(ctx context.Context, chatID int64, topicID int) (*domain.Settings, error)
}

type settingsStore interface {
	settingsLoader
	Save(ctx context.Context, settings *domain.Settings) error
}

// loadSettings returns the stored form state or the defaults for a new chat.
func loadSettings(ctx context.Context, provider settingsLoader, chatID int64, topicID int, defaultBackend string) (*domain.Settings, error) {
	settings, err := provider.Get(ctx, chatID, topicID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewSettings(chatID, topicID, defaultBackend), nil
		}
		return nil, err
	}
	return settings, nil
}

// hasCallbackMessage reports whether the callback came from a message the bot
// can still access. Older or deleted messages arrive without one.
func hasCallbackMessage(update *models.Update) bool {
	return update.CallbackQuery != nil && update.CallbackQuery.Message.Message != nil
}

func parseCallbackValue(raw, prefix string) (string, error) {
	if !strings.HasPrefix(raw, prefix) {
		return "", fmt.Errorf("invalid format, expected prefix '%s'", prefix)
	}
	return strings.TrimPrefix(raw, prefix), nil
}

func sendText(ctx context.Context, b *bot.Bot, chatID int64, topicID int, text string) {
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          chatID,
		MessageThreadID: topicID,
		Text:            text,
	})
}

func sendHTML(ctx context.Context, b *bot.Bot, chatID int64, topicID int, html string) {
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          chatID,
		MessageThreadID: topicID,
		Text:            html,
		ParseMode:       models.ParseModeHTML,
	})
}
