package handlers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/samber/lo"

	"github.com/dskvich/video-bot/pkg/domain"
	"github.com/dskvich/video-bot/pkg/generation"
)

var imageMimeTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif", "image/avif"}

const unknownCommandText = "🤔 Unknown command. Send /start to see what I can do."

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// GenerateVideo handles plain messages: the text or caption is the prompt and,
// in image mode, the attached photo is the image to animate. Commands no other
// handler took are answered with a hint and never submitted.
func GenerateVideo(
	settingsProvider settingsLoader,
	prompts promptSaver,
	generator videoGenerator,
	httpClient httpDoer,
	defaultBackend string,
) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.Message == nil {
			return
		}

		chatID := update.Message.Chat.ID
		topicID := update.Message.MessageThreadID
		text := lo.CoalesceOrEmpty(update.Message.Text, update.Message.Caption)

		if strings.HasPrefix(strings.TrimSpace(text), "/") {
			sendText(ctx, b, chatID, topicID, unknownCommandText)
			return
		}

		settings, err := loadSettings(ctx, settingsProvider, chatID, topicID, defaultBackend)
		if err != nil {
			sendText(ctx, b, chatID, topicID, fmt.Sprintf("❌ Failed to load settings: %s", err))
			return
		}

		in := generation.Input{
			Settings: *settings,
			Prompt:   text,
		}

		// A blank prompt is rejected by the generator, no need to fetch the image first.
		if settings.Mode == domain.ModeImageToVideo && strings.TrimSpace(text) != "" {
			if fileID := imageFileID(update.Message); fileID != "" {
				in.Image, err = downloadTelegramFile(ctx, b, httpClient, fileID)
				if err != nil {
					sendText(ctx, b, chatID, topicID, fmt.Sprintf("❌ Failed to get image file: %s", err))
					return
				}
				slog.InfoContext(ctx, "Image downloaded", "size", len(in.Image))
			}
		}

		runGeneration(ctx, b, chatID, topicID, generator, prompts, in)
	}
}

// imageFileID returns the largest photo size or an image document, if any.
func imageFileID(m *models.Message) string {
	if len(m.Photo) > 0 {
		return m.Photo[len(m.Photo)-1].FileID
	}
	if m.Document != nil && lo.Contains(imageMimeTypes, m.Document.MimeType) {
		return m.Document.FileID
	}
	return ""
}

func downloadTelegramFile(ctx context.Context, b *bot.Bot, httpClient httpDoer, fileID string) ([]byte, error) {
	file, err := b.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("getting file metadata: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.FileDownloadLink(file), nil)
	if err != nil {
		return nil, fmt.Errorf("creating download request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("downloading file: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	return data, nil
}
