package repository

import (
	"context"
	"sync"
	"time"

	"github.com/dskvich/video-bot/pkg/domain"
)

type chatKey struct {
	chatID  int64
	topicID int
}

// memorySettingsRepository keeps settings for the process lifetime. It is
// used when no database is configured.
type memorySettingsRepository struct {
	mu       sync.RWMutex
	settings map[chatKey]domain.Settings
}

func NewMemorySettingsRepository() *memorySettingsRepository {
	return &memorySettingsRepository{settings: make(map[chatKey]domain.Settings)}
}

func (m *memorySettingsRepository) Save(_ context.Context, settings *domain.Settings) error {
	settings.UpdatedAt = time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[chatKey{settings.ChatID, settings.TopicID}] = *settings
	return nil
}

func (m *memorySettingsRepository) Get(_ context.Context, chatID int64, topicID int) (*domain.Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.settings[chatKey{chatID, topicID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (m *memorySettingsRepository) Delete(_ context.Context, chatID int64, topicID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.settings, chatKey{chatID, topicID})
	return nil
}

type memoryPromptRepository struct {
	mu      sync.RWMutex
	lastID  int64
	prompts map[int64]domain.Prompt
}

func NewMemoryPromptRepository() *memoryPromptRepository {
	return &memoryPromptRepository{prompts: make(map[int64]domain.Prompt)}
}

func (m *memoryPromptRepository) Save(_ context.Context, prompt *domain.Prompt) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastID++
	prompt.ID = m.lastID
	if prompt.CreatedAt.IsZero() {
		prompt.CreatedAt = time.Now()
	}

	m.prompts[prompt.ID] = *prompt
	return nil
}

func (m *memoryPromptRepository) GetByID(_ context.Context, id int64) (*domain.Prompt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.prompts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}
