package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dskvich/video-bot/pkg/domain"
	"github.com/uptrace/bun"
)

type settingsRepository struct {
	db *bun.DB
}

func NewSettingsRepository(db *bun.DB) *settingsRepository {
	return &settingsRepository{db: db}
}

func (s *settingsRepository) Save(ctx context.Context, settings *domain.Settings) error {
	settings.UpdatedAt = time.Now()

	_, err := s.db.NewInsert().
		Model(settings).
		On("CONFLICT (chat_id, topic_id) DO UPDATE").
		Set("backend = EXCLUDED.backend").
		Set("mode = EXCLUDED.mode").
		Set("duration_seconds = EXCLUDED.duration_seconds").
		Set("guidance_scale = EXCLUDED.guidance_scale").
		Set("inference_steps = EXCLUDED.inference_steps").
		Set("negative_prompt = EXCLUDED.negative_prompt").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}

func (s *settingsRepository) Get(ctx context.Context, chatID int64, topicID int) (*domain.Settings, error) {
	var settings domain.Settings

	err := s.db.NewSelect().
		Model(&settings).
		Where("chat_id = ?", chatID).
		Where("topic_id = ?", topicID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("fetching settings: %w", err)
	}

	return &settings, nil
}

func (s *settingsRepository) Delete(ctx context.Context, chatID int64, topicID int) error {
	_, err := s.db.NewDelete().
		Model((*domain.Settings)(nil)).
		Where("chat_id = ?", chatID).
		Where("topic_id = ?", topicID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("deleting settings: %w", err)
	}
	return nil
}
