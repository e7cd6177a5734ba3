package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dskvich/video-bot/pkg/domain"
	"github.com/dskvich/video-bot/pkg/generation"
)

type fakeSettingsLoader struct {
	settings *domain.Settings
	err      error
}

func (f fakeSettingsLoader) Get(context.Context, int64, int) (*domain.Settings, error) {
	return f.settings, f.err
}

func TestLoadSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults for a new chat", func(t *testing.T) {
		s, err := loadSettings(ctx, fakeSettingsLoader{err: domain.ErrNotFound}, 7, 3, domain.FalBackend)
		require.NoError(t, err)
		assert.Equal(t, int64(7), s.ChatID)
		assert.Equal(t, 3, s.TopicID)
		assert.Equal(t, domain.FalBackend, s.Backend)
		assert.Equal(t, domain.ModeTextToVideo, s.Mode)
		assert.Equal(t, domain.DefaultDurationSeconds, s.DurationSeconds)
	})

	t.Run("stored settings", func(t *testing.T) {
		stored := &domain.Settings{ChatID: 7, Backend: domain.OpenAIBackend}
		s, err := loadSettings(ctx, fakeSettingsLoader{settings: stored}, 7, 0, domain.FalBackend)
		require.NoError(t, err)
		assert.Same(t, stored, s)
	})

	t.Run("storage failure", func(t *testing.T) {
		_, err := loadSettings(ctx, fakeSettingsLoader{err: errors.New("db down")}, 7, 0, domain.FalBackend)
		assert.EqualError(t, err, "db down")
	})
}

func TestOptionParse(t *testing.T) {
	o := durationOption([]int{3, 6, 10})

	v, err := o.parse(domain.SetDurationCallbackPrefix + "6")
	require.NoError(t, err)
	assert.Equal(t, 6, v)

	_, err = o.parse(domain.SetDurationCallbackPrefix + "7")
	assert.EqualError(t, err, "unsupported option")

	_, err = o.parse(domain.SetDurationCallbackPrefix + "six")
	assert.Error(t, err)

	_, err = o.parse(domain.SetStepsCallbackPrefix + "6")
	assert.ErrorContains(t, err, "invalid format")
}

func TestOptionParseMode(t *testing.T) {
	o := modeOption()

	v, err := o.parse(domain.SetModeCallbackPrefix + "image-to-video")
	require.NoError(t, err)
	assert.Equal(t, domain.ModeImageToVideo, v)

	_, err = o.parse(domain.SetModeCallbackPrefix + "audio")
	assert.ErrorContains(t, err, "unknown mode")
}

func TestOptionKeyboard(t *testing.T) {
	o := guidanceOption([]float64{1.0, 2.5, 4.0, 5.5})

	kb := o.keyboard(4.0)

	require.Len(t, kb.InlineKeyboard, 2)
	require.Len(t, kb.InlineKeyboard[0], 3)
	require.Len(t, kb.InlineKeyboard[1], 1)
	assert.Equal(t, models.InlineKeyboardButton{Text: "1.0", CallbackData: "set_guidance_1.0"}, kb.InlineKeyboard[0][0])
	assert.Equal(t, "• 4.0", kb.InlineKeyboard[0][2].Text)
	assert.Equal(t, "set_guidance_5.5", kb.InlineKeyboard[1][0].CallbackData)
}

func TestBackendOptionLabels(t *testing.T) {
	o := backendOption([]string{domain.FalBackend, domain.OpenAIBackend})

	kb := o.keyboard(domain.OpenAIBackend)

	require.Len(t, kb.InlineKeyboard, 1)
	assert.Equal(t, "set_backend_fal", kb.InlineKeyboard[0][0].CallbackData)
	assert.Contains(t, kb.InlineKeyboard[0][1].Text, "• ")

	_, err := o.parse(domain.SetBackendCallbackPrefix + "midjourney")
	assert.Error(t, err)
}

func TestFailureText(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "config shows the hint",
			err:  &generation.Error{Kind: generation.KindConfig, Err: domain.ErrNotConfigured, Hint: "Set FAL_KEY."},
			want: "❌ Set FAL_KEY.",
		},
		{
			name: "validation is a warning",
			err:  &generation.Error{Kind: generation.KindValidation, Err: domain.ErrEmptyPrompt},
			want: "⚠️ please enter a prompt to guide the video generation",
		},
		{
			name: "remote failure",
			err:  &generation.Error{Kind: generation.KindRemote, Err: domain.ErrUnexpectedResponse},
			want: "❌ Generation failed: unexpected response format: missing video URL",
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: "❌ Generation failed: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, failureText(tt.err))
		})
	}
}

func TestStageText(t *testing.T) {
	assert.Equal(t, "⏳ Uploading image...", stageText(generation.StageUploading, domain.ModeImageToVideo))
	assert.Contains(t, stageText(generation.StageSubmitting, domain.ModeTextToVideo), "from text")
	assert.Contains(t, stageText(generation.StageSubmitting, domain.ModeImageToVideo), "from image")
	assert.Empty(t, stageText(generation.StageValidating, domain.ModeTextToVideo))
	assert.Empty(t, stageText(generation.StageSucceeded, domain.ModeTextToVideo))
}

func TestSuccessCaption(t *testing.T) {
	caption := successCaption("https://cdn.example/v.mp4")

	assert.Contains(t, caption, "✅ Video generated successfully!")
	assert.Contains(t, caption, `<a href="https://cdn.example/v.mp4">Download video</a>`)
}

func TestImageFileID(t *testing.T) {
	t.Run("largest photo", func(t *testing.T) {
		m := &models.Message{Photo: []models.PhotoSize{{FileID: "small"}, {FileID: "large"}}}
		assert.Equal(t, "large", imageFileID(m))
	})

	t.Run("image document", func(t *testing.T) {
		m := &models.Message{Document: &models.Document{FileID: "doc", MimeType: "image/webp"}}
		assert.Equal(t, "doc", imageFileID(m))
	})

	t.Run("other document", func(t *testing.T) {
		m := &models.Message{Document: &models.Document{FileID: "doc", MimeType: "application/pdf"}}
		assert.Empty(t, imageFileID(m))
	})

	t.Run("text only", func(t *testing.T) {
		assert.Empty(t, imageFileID(&models.Message{Text: "a cat"}))
	})
}

func TestParsePromptID(t *testing.T) {
	id, err := parsePromptID(domain.GenVideoCallbackPrefix + "42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = parsePromptID(domain.GenVideoCallbackPrefix + "x")
	assert.ErrorContains(t, err, "invalid prompt ID")
}

func TestPromptRoundTrip(t *testing.T) {
	res := generation.Result{
		Request: domain.GenerationRequest{
			Backend:         domain.FalBackend,
			Mode:            domain.ModeImageToVideo,
			Prompt:          "a cat surfing",
			NegativePrompt:  "blurry",
			DurationSeconds: 5,
			GuidanceScale:   5.5,
			InferenceSteps:  24,
		},
		VideoURL: "https://cdn.example/v.mp4",
		ImageURL: "https://cdn.example/cat.png",
	}

	p := newPrompt(7, 2, res)
	in := promptInput(p)

	assert.Equal(t, "a cat surfing", in.Prompt)
	assert.Equal(t, "https://cdn.example/cat.png", in.ImageURL)
	assert.Empty(t, in.Image)
	assert.Equal(t, domain.Settings{
		ChatID:          7,
		TopicID:         2,
		Backend:         domain.FalBackend,
		Mode:            domain.ModeImageToVideo,
		DurationSeconds: 5,
		GuidanceScale:   5.5,
		InferenceSteps:  24,
		NegativePrompt:  "blurry",
	}, in.Settings)
}

func TestFormatSettings(t *testing.T) {
	s := domain.NewSettings(1, 0, domain.FalBackend)

	text := formatSettings(s)

	assert.Contains(t, text, "6s (180 frames at 30 fps)")
	assert.Contains(t, text, "Guidance scale: 4.0")
	assert.Contains(t, text, "Inference steps: 40")
	assert.Contains(t, text, "Negative prompt: none")
}

func TestStartText(t *testing.T) {
	assert.Contains(t, startText(nil), "No video service is configured")

	text := startText([]string{domain.FalBackend, "unknown"})
	fal, _ := domain.LookupBackend(domain.FalBackend)
	assert.Contains(t, text, "Available services: "+fal.DisplayName+".")
}
