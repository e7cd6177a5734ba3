package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dskvich/video-bot/pkg/domain"
)

func TestMemorySettingsRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySettingsRepository()

	_, err := repo.Get(ctx, 1, 0)
	require.ErrorIs(t, err, domain.ErrNotFound)

	s := domain.NewSettings(1, 0, domain.FalBackend)
	s.DurationSeconds = 10
	require.NoError(t, repo.Save(ctx, s))
	assert.False(t, s.UpdatedAt.IsZero())

	got, err := repo.Get(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, got.DurationSeconds)

	got.DurationSeconds = 20
	again, err := repo.Get(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, again.DurationSeconds, "returned settings must be a copy")

	_, err = repo.Get(ctx, 1, 7)
	assert.ErrorIs(t, err, domain.ErrNotFound, "topics are isolated")

	require.NoError(t, repo.Delete(ctx, 1, 0))
	_, err = repo.Get(ctx, 1, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemoryPromptRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPromptRepository()

	first := &domain.Prompt{Text: "a fox"}
	second := &domain.Prompt{Text: "a wolf"}
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))
	assert.EqualValues(t, 1, first.ID)
	assert.EqualValues(t, 2, second.ID)

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "a fox", got.Text)

	_, err = repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStateRepository(t *testing.T) {
	repo := NewStateRepository()

	assert.False(t, repo.IsEditing(1, 0))
	repo.StartEditing(1, 0)
	assert.True(t, repo.IsEditing(1, 0))
	assert.False(t, repo.IsEditing(1, 3))
	repo.Clear(1, 0)
	assert.False(t, repo.IsEditing(1, 0))
}

func TestNewWithoutDatabase(t *testing.T) {
	settings, prompts := New(nil)

	assert.IsType(t, &memorySettingsRepository{}, settings)
	assert.IsType(t, &memoryPromptRepository{}, prompts)
}
