package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/samber/lo"

	"github.com/dskvich/video-bot/pkg/domain"
)

// option describes one form control rendered as an inline keyboard.
type option[T comparable] struct {
	prompt  string
	prefix  string
	values  []T
	encode  func(T) string
	decode  func(string) (T, error)
	label   func(T) string
	apply   func(*domain.Settings, T)
	current func(*domain.Settings) T
	name    string
}

func (o option[T]) parse(raw string) (T, error) {
	var zero T

	s, err := parseCallbackValue(raw, o.prefix)
	if err != nil {
		return zero, err
	}

	v, err := o.decode(s)
	if err != nil {
		return zero, err
	}

	if !lo.Contains(o.values, v) {
		return zero, errors.New("unsupported option")
	}

	return v, nil
}

func (o option[T]) keyboard(selected T) *models.InlineKeyboardMarkup {
	buttons := lo.Map(o.values, func(v T, _ int) models.InlineKeyboardButton {
		text := o.label(v)
		if v == selected {
			text = "• " + text
		}
		return models.InlineKeyboardButton{Text: text, CallbackData: o.prefix + o.encode(v)}
	})

	return &models.InlineKeyboardMarkup{
		InlineKeyboard: lo.Chunk(buttons, 3), // 3 buttons in a row
	}
}

func showOption[T comparable](o option[T], settingsProvider settingsLoader, defaultBackend string) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		chatID := update.Message.Chat.ID
		topicID := update.Message.MessageThreadID

		settings, err := loadSettings(ctx, settingsProvider, chatID, topicID, defaultBackend)
		if err != nil {
			sendText(ctx, b, chatID, topicID, fmt.Sprintf("❌ Failed to load settings: %s", err))
			return
		}

		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:          chatID,
			MessageThreadID: topicID,
			Text:            o.prompt,
			ReplyMarkup:     o.keyboard(o.current(settings)),
		})
	}
}

func setOption[T comparable](o option[T], settingsProvider settingsStore, defaultBackend string) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if !hasCallbackMessage(update) {
			return
		}

		chatID := update.CallbackQuery.Message.Message.Chat.ID
		topicID := update.CallbackQuery.Message.Message.MessageThreadID

		b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: update.CallbackQuery.ID,
			ShowAlert:       false,
		})

		value, err := o.parse(update.CallbackQuery.Data)
		if err != nil {
			sendText(ctx, b, chatID, topicID, fmt.Sprintf("❌ Failed to read %s: %s", strings.ToLower(o.name), err))
			return
		}

		settings, err := loadSettings(ctx, settingsProvider, chatID, topicID, defaultBackend)
		if err != nil {
			sendText(ctx, b, chatID, topicID, fmt.Sprintf("❌ Failed to load settings: %s", err))
			return
		}

		o.apply(settings, value)

		if err := settingsProvider.Save(ctx, settings); err != nil {
			sendText(ctx, b, chatID, topicID, fmt.Sprintf("❌ Failed to save settings: %s", err))
			return
		}

		sendText(ctx, b, chatID, topicID, fmt.Sprintf("✅ %s set: %s", o.name, o.label(value)))
	}
}
