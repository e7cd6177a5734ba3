package domain

import (
	"fmt"
	"time"
)

const (
	FrameRate  = 30
	Resolution = "720p"

	MinDurationSeconds = 3
	MaxDurationSeconds = 20

	MinGuidanceScale = 1.0
	MaxGuidanceScale = 10.0

	MinInferenceSteps = 8
	MaxInferenceSteps = 50
)

const (
	DefaultDurationSeconds = 6
	DefaultGuidanceScale   = 4.0
	DefaultInferenceSteps  = 40
)

// Settings holds the generation form of a chat topic. Values survive between
// submissions the same way form widgets keep their state between reruns.
type Settings struct {
	ChatID          int64     `bun:"chat_id,pk"`
	TopicID         int       `bun:"topic_id,pk"`
	Backend         string    `bun:"backend"`
	Mode            Mode      `bun:"mode"`
	DurationSeconds int       `bun:"duration_seconds"`
	GuidanceScale   float64   `bun:"guidance_scale"`
	InferenceSteps  int       `bun:"inference_steps"`
	NegativePrompt  string    `bun:"negative_prompt"`
	UpdatedAt       time.Time `bun:"updated_at"`
}

func NewSettings(chatID int64, topicID int, backend string) *Settings {
	return &Settings{
		ChatID:          chatID,
		TopicID:         topicID,
		Backend:         backend,
		Mode:            ModeTextToVideo,
		DurationSeconds: DefaultDurationSeconds,
		GuidanceScale:   DefaultGuidanceScale,
		InferenceSteps:  DefaultInferenceSteps,
	}
}

// NumFrames converts a clip length into the frame count sent to the backend.
func NumFrames(durationSeconds int) int {
	return durationSeconds * FrameRate
}

func ValidateSettings(s *Settings) error {
	if !s.Mode.Valid() {
		return fmt.Errorf("unknown mode %q", s.Mode)
	}
	if s.DurationSeconds < MinDurationSeconds || s.DurationSeconds > MaxDurationSeconds {
		return fmt.Errorf("duration must be between %d and %d seconds, got %d",
			MinDurationSeconds, MaxDurationSeconds, s.DurationSeconds)
	}
	if s.GuidanceScale < MinGuidanceScale || s.GuidanceScale > MaxGuidanceScale {
		return fmt.Errorf("guidance scale must be between %.1f and %.1f, got %.1f",
			MinGuidanceScale, MaxGuidanceScale, s.GuidanceScale)
	}
	if s.InferenceSteps < MinInferenceSteps || s.InferenceSteps > MaxInferenceSteps {
		return fmt.Errorf("inference steps must be between %d and %d, got %d",
			MinInferenceSteps, MaxInferenceSteps, s.InferenceSteps)
	}
	return nil
}
