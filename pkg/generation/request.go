package generation

import (
	"strings"

	"github.com/dskvich/video-bot/pkg/domain"
)

// BuildRequest maps the form state onto the backend-neutral request.
// Guidance and steps are passed through unmodified.
func BuildRequest(settings domain.Settings, prompt, imageURL string) domain.GenerationRequest {
	req := domain.GenerationRequest{
		Backend:         settings.Backend,
		Mode:            settings.Mode,
		Prompt:          prompt,
		NegativePrompt:  strings.TrimSpace(settings.NegativePrompt),
		DurationSeconds: settings.DurationSeconds,
		NumFrames:       domain.NumFrames(settings.DurationSeconds),
		FrameRate:       domain.FrameRate,
		GuidanceScale:   settings.GuidanceScale,
		InferenceSteps:  settings.InferenceSteps,
		Resolution:      domain.Resolution,
	}
	if settings.Mode == domain.ModeImageToVideo {
		req.ImageURL = imageURL
	}
	return req
}
