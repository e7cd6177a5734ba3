package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/dskvich/video-bot/pkg/domain"
	"github.com/dskvich/video-bot/pkg/generation"
)

type promptStore interface {
	promptSaver
	GetByID(ctx context.Context, id int64) (*domain.Prompt, error)
}

// RegenerateVideo replays a stored prompt with the parameters it was first
// submitted with. The hosted image is reused, so nothing is uploaded again.
func RegenerateVideo(prompts promptStore, generator videoGenerator) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if !hasCallbackMessage(update) {
			return
		}

		chatID := update.CallbackQuery.Message.Message.Chat.ID
		topicID := update.CallbackQuery.Message.Message.MessageThreadID

		defer b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: update.CallbackQuery.ID,
			ShowAlert:       false,
		})

		promptID, err := parsePromptID(update.CallbackQuery.Data)
		if err != nil {
			sendText(ctx, b, chatID, topicID, fmt.Sprintf("❌ Failed to read prompt ID: %s", err))
			return
		}

		prompt, err := prompts.GetByID(ctx, promptID)
		if err != nil {
			sendText(ctx, b, chatID, topicID, fmt.Sprintf("❌ Failed to fetch prompt: %s", err))
			return
		}

		slog.InfoContext(ctx, "Prompt fetched", "id", prompt.ID, "backend", prompt.Backend)

		runGeneration(ctx, b, chatID, topicID, generator, prompts, promptInput(prompt))
	}
}

func parsePromptID(raw string) (int64, error) {
	idStr, err := parseCallbackValue(raw, domain.GenVideoCallbackPrefix)
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid prompt ID: %s", idStr)
	}

	return id, nil
}

func promptInput(p *domain.Prompt) generation.Input {
	return generation.Input{
		Settings: domain.Settings{
			ChatID:          p.ChatID,
			TopicID:         p.TopicID,
			Backend:         p.Backend,
			Mode:            p.Mode,
			DurationSeconds: p.DurationSeconds,
			GuidanceScale:   p.GuidanceScale,
			InferenceSteps:  p.InferenceSteps,
			NegativePrompt:  p.NegativePrompt,
		},
		Prompt:   p.Text,
		ImageURL: p.ImageURL,
	}
}
