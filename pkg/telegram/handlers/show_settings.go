package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/samber/lo"

	"github.com/dskvich/video-bot/pkg/domain"
	"github.com/dskvich/video-bot/pkg/render"
)

func formatSettings(s *domain.Settings) string {
	backend, ok := domain.LookupBackend(s.Backend)
	backendName := lo.Ternary(ok, backend.DisplayName, s.Backend)

	var sb strings.Builder
	sb.WriteString("⚙️ **Generation parameters**\n\n")
	fmt.Fprintf(&sb, "- Backend: %s\n", backendName)
	fmt.Fprintf(&sb, "- Mode: %s\n", s.Mode.DisplayName())
	fmt.Fprintf(&sb, "- Video length: %ds (%d frames at %d fps)\n", s.DurationSeconds, domain.NumFrames(s.DurationSeconds), domain.FrameRate)
	fmt.Fprintf(&sb, "- Guidance scale: %s\n", formatGuidance(s.GuidanceScale))
	fmt.Fprintf(&sb, "- Inference steps: %d\n", s.InferenceSteps)
	fmt.Fprintf(&sb, "- Negative prompt: %s\n", lo.CoalesceOrEmpty(s.NegativePrompt, "none"))
	return sb.String()
}

func ShowSettings(settingsProvider settingsLoader, defaultBackend string) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		chatID := update.Message.Chat.ID
		topicID := update.Message.MessageThreadID

		settings, err := loadSettings(ctx, settingsProvider, chatID, topicID, defaultBackend)
		if err != nil {
			sendText(ctx, b, chatID, topicID, fmt.Sprintf("❌ Failed to load settings: %s", err))
			return
		}

		sendHTML(ctx, b, chatID, topicID, render.ToHTML(formatSettings(settings)))
	}
}
