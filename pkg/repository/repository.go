package repository

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/dskvich/video-bot/pkg/domain"
)

type SettingsRepository interface {
	Save(ctx context.Context, settings *domain.Settings) error
	Get(ctx context.Context, chatID int64, topicID int) (*domain.Settings, error)
	Delete(ctx context.Context, chatID int64, topicID int) error
}

type PromptRepository interface {
	Save(ctx context.Context, prompt *domain.Prompt) error
	GetByID(ctx context.Context, id int64) (*domain.Prompt, error)
}

// New returns postgres backed repositories, or in-memory ones when db is nil.
func New(db *bun.DB) (SettingsRepository, PromptRepository) {
	if db == nil {
		return NewMemorySettingsRepository(), NewMemoryPromptRepository()
	}
	return NewSettingsRepository(db), NewPromptRepository(db)
}
