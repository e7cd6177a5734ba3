package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/dskvich/video-bot/pkg/domain"
	"github.com/dskvich/video-bot/pkg/generation"
	"github.com/dskvich/video-bot/pkg/logger"
	"github.com/dskvich/video-bot/pkg/render"
)

const againButtonText = "🔁 Again"

type videoGenerator interface {
	Generate(ctx context.Context, in generation.Input, progress generation.Progress) generation.Result
}

type promptSaver interface {
	Save(ctx context.Context, prompt *domain.Prompt) error
}

// statusMessage keeps a single "working" message per submission and edits it
// as the generation moves through its stages.
type statusMessage struct {
	b         *bot.Bot
	chatID    int64
	topicID   int
	messageID int
}

func (s *statusMessage) set(ctx context.Context, text string) {
	if s.messageID == 0 {
		msg, err := s.b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:          s.chatID,
			MessageThreadID: s.topicID,
			Text:            text,
		})
		if err != nil {
			slog.WarnContext(ctx, "Failed to send status message", logger.Err(err))
			return
		}
		s.messageID = msg.ID
		return
	}

	if _, err := s.b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    s.chatID,
		MessageID: s.messageID,
		Text:      text,
	}); err != nil {
		slog.WarnContext(ctx, "Failed to edit status message", logger.Err(err))
	}
}

func (s *statusMessage) remove(ctx context.Context) {
	if s.messageID == 0 {
		return
	}
	if _, err := s.b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    s.chatID,
		MessageID: s.messageID,
	}); err != nil {
		slog.WarnContext(ctx, "Failed to delete status message", logger.Err(err))
	}
}

func (s *statusMessage) progress(mode domain.Mode) generation.Progress {
	return func(ctx context.Context, stage generation.Stage) {
		if text := stageText(stage, mode); text != "" {
			s.set(ctx, text)
		}
	}
}

func stageText(stage generation.Stage, mode domain.Mode) string {
	switch stage {
	case generation.StageUploading:
		return "⏳ Uploading image..."
	case generation.StageSubmitting:
		if mode == domain.ModeImageToVideo {
			return "⏳ Generating video from image... this may take a few minutes"
		}
		return "⏳ Generating video from text... this may take a few minutes"
	default:
		return ""
	}
}

// failureText renders a generation error the way the chat shows it.
func failureText(err error) string {
	var genErr *generation.Error
	if !errors.As(err, &genErr) {
		return fmt.Sprintf("❌ Generation failed: %s", err)
	}

	switch genErr.Kind {
	case generation.KindConfig:
		if genErr.Hint != "" {
			return "❌ " + genErr.Hint
		}
		return fmt.Sprintf("❌ %s", genErr.Err)
	case generation.KindValidation:
		return fmt.Sprintf("⚠️ %s", genErr.Err)
	default:
		return fmt.Sprintf("❌ Generation failed: %s", genErr.Err)
	}
}

func successCaption(videoURL string) string {
	return render.ToHTML(fmt.Sprintf("✅ Video generated successfully!\n\n[Download video](%s)", videoURL))
}

// newPrompt records a finished submission so the "Again" button can replay it.
func newPrompt(chatID int64, topicID int, res generation.Result) *domain.Prompt {
	return &domain.Prompt{
		ChatID:          chatID,
		TopicID:         topicID,
		Text:            res.Request.Prompt,
		NegativePrompt:  res.Request.NegativePrompt,
		Backend:         res.Request.Backend,
		Mode:            res.Request.Mode,
		DurationSeconds: res.Request.DurationSeconds,
		GuidanceScale:   res.Request.GuidanceScale,
		InferenceSteps:  res.Request.InferenceSteps,
		ImageURL:        res.ImageURL,
		VideoURL:        res.VideoURL,
	}
}

// runGeneration submits in and posts either the video or the failure text.
func runGeneration(
	ctx context.Context,
	b *bot.Bot,
	chatID int64,
	topicID int,
	generator videoGenerator,
	prompts promptSaver,
	in generation.Input,
) {
	status := &statusMessage{b: b, chatID: chatID, topicID: topicID}

	res := generator.Generate(ctx, in, status.progress(in.Settings.Mode))
	if !res.OK() {
		status.remove(ctx)
		sendText(ctx, b, chatID, topicID, failureText(res.Err))
		return
	}

	var kb models.ReplyMarkup
	prompt := newPrompt(chatID, topicID, res)
	if err := prompts.Save(ctx, prompt); err != nil {
		slog.ErrorContext(ctx, "Failed to save prompt", logger.Err(err))
	} else {
		slog.InfoContext(ctx, "Prompt saved", "id", prompt.ID)
		kb = &models.InlineKeyboardMarkup{
			InlineKeyboard: [][]models.InlineKeyboardButton{
				{{Text: againButtonText, CallbackData: domain.GenVideoCallbackPrefix + strconv.FormatInt(prompt.ID, 10)}},
			},
		}
	}

	status.remove(ctx)

	caption := successCaption(res.VideoURL)
	if _, err := b.SendVideo(ctx, &bot.SendVideoParams{
		ChatID:          chatID,
		MessageThreadID: topicID,
		Video:           &models.InputFileString{Data: res.VideoURL},
		Caption:         caption,
		ParseMode:       models.ParseModeHTML,
		ReplyMarkup:     kb,
	}); err != nil {
		slog.WarnContext(ctx, "Failed to send video, falling back to link", logger.Err(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:          chatID,
			MessageThreadID: topicID,
			Text:            caption,
			ParseMode:       models.ParseModeHTML,
			ReplyMarkup:     kb,
		})
	}
}
