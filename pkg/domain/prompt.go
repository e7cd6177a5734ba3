package domain

import "time"

// Prompt is a submitted generation, kept so it can be run again.
type Prompt struct {
	ID              int64     `bun:",pk,autoincrement"`
	ChatID          int64     `bun:"chat_id"`
	TopicID         int       `bun:"topic_id"`
	Text            string    `bun:"text"`
	NegativePrompt  string    `bun:"negative_prompt"`
	Backend         string    `bun:"backend"`
	Mode            Mode      `bun:"mode"`
	DurationSeconds int       `bun:"duration_seconds"`
	GuidanceScale   float64   `bun:"guidance_scale"`
	InferenceSteps  int       `bun:"inference_steps"`
	ImageURL        string    `bun:"image_url"`
	VideoURL        string    `bun:"video_url"`
	CreatedAt       time.Time `bun:"created_at"`
}

// GenerationRequest is the backend-neutral shape of one submission.
type GenerationRequest struct {
	Backend         string
	Mode            Mode
	Prompt          string
	NegativePrompt  string
	DurationSeconds int
	NumFrames       int
	FrameRate       int
	GuidanceScale   float64
	InferenceSteps  int
	Resolution      string
	ImageURL        string
}
