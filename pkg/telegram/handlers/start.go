package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/samber/lo"

	"github.com/dskvich/video-bot/pkg/domain"
	"github.com/dskvich/video-bot/pkg/render"
)

func startText(configuredBackends []string) string {
	names := lo.FilterMap(configuredBackends, func(name string, _ int) (string, bool) {
		b, ok := domain.LookupBackend(name)
		return b.DisplayName, ok
	})

	var sb strings.Builder
	sb.WriteString("🎥 **Personal LongCat Video Generator**\n\n")
	sb.WriteString("Describe your scene and I will generate a video. Pick a mode with /mode, ")
	sb.WriteString("adjust /duration, /guidance and /steps, set a /negative prompt, then send your prompt. ")
	sb.WriteString("In Image-to-Video mode send a photo with the prompt as caption.\n\n")
	sb.WriteString("Other commands: /backend, /settings, /negative_clear, /reset.\n\n")
	if len(names) == 0 {
		sb.WriteString("⚠️ No video service is configured yet.")
	} else {
		sb.WriteString("Available services: " + strings.Join(names, ", ") + ".")
	}
	return sb.String()
}

func Start(configuredBackends []string) bot.HandlerFunc {
	text := render.ToHTML(startText(configuredBackends))

	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		sendHTML(ctx, b, update.Message.Chat.ID, update.Message.MessageThreadID, text)
	}
}
