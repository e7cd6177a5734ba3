package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/dskvich/video-bot/pkg/telegram/matchers"
)

type negativePromptEditor interface {
	StartEditing(chatID int64, topicID int)
}

type negativePromptStateClearer interface {
	Clear(chatID int64, topicID int)
}

// RequestNegativePrompt stores "/negative <text>" right away. A bare
// /negative asks for the text and the next message is captured.
func RequestNegativePrompt(
	settingsProvider settingsStore,
	editor negativePromptEditor,
	defaultBackend string,
) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		chatID := update.Message.Chat.ID
		topicID := update.Message.MessageThreadID

		if _, args, _ := matchers.ParseCommand(update.Message.Text); args != "" {
			saveNegativePrompt(ctx, b, settingsProvider, chatID, topicID, defaultBackend, args)
			return
		}

		editor.StartEditing(chatID, topicID)

		sendText(ctx, b, chatID, topicID,
			"✏️ Send the negative prompt: elements to avoid, e.g. blurry, static, poor quality...")
	}
}

func SetNegativePrompt(
	settingsProvider settingsStore,
	stateClearer negativePromptStateClearer,
	defaultBackend string,
) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		chatID := update.Message.Chat.ID
		topicID := update.Message.MessageThreadID

		if saveNegativePrompt(ctx, b, settingsProvider, chatID, topicID, defaultBackend, strings.TrimSpace(update.Message.Text)) {
			stateClearer.Clear(chatID, topicID)
		}
	}
}

func saveNegativePrompt(
	ctx context.Context,
	b *bot.Bot,
	settingsProvider settingsStore,
	chatID int64,
	topicID int,
	defaultBackend string,
	negativePrompt string,
) bool {
	settings, err := loadSettings(ctx, settingsProvider, chatID, topicID, defaultBackend)
	if err != nil {
		sendText(ctx, b, chatID, topicID, fmt.Sprintf("❌ Failed to load settings: %s", err))
		return false
	}

	settings.NegativePrompt = negativePrompt

	if err = settingsProvider.Save(ctx, settings); err != nil {
		sendText(ctx, b, chatID, topicID, fmt.Sprintf("❌ Failed to save settings: %s", err))
		return false
	}

	sendText(ctx, b, chatID, topicID, "✅ Negative prompt set: "+negativePrompt)
	return true
}

func ClearNegativePrompt(
	settingsProvider settingsStore,
	stateClearer negativePromptStateClearer,
	defaultBackend string,
) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		chatID := update.Message.Chat.ID
		topicID := update.Message.MessageThreadID

		stateClearer.Clear(chatID, topicID)

		settings, err := loadSettings(ctx, settingsProvider, chatID, topicID, defaultBackend)
		if err != nil {
			sendText(ctx, b, chatID, topicID, fmt.Sprintf("❌ Failed to load settings: %s", err))
			return
		}

		settings.NegativePrompt = ""

		if err = settingsProvider.Save(ctx, settings); err != nil {
			sendText(ctx, b, chatID, topicID, fmt.Sprintf("❌ Failed to save settings: %s", err))
			return
		}

		sendText(ctx, b, chatID, topicID, "🧹 Negative prompt cleared.")
	}
}
