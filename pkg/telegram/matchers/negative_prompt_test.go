package matchers

import (
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
)

type fakeState map[int64]bool

func (f fakeState) IsEditing(chatID int64, _ int) bool { return f[chatID] }

func TestIsEditingNegativePrompt(t *testing.T) {
	match := IsEditingNegativePrompt(fakeState{1: true})

	msg := func(chatID int64, text string) *models.Update {
		return &models.Update{Message: &models.Message{Chat: models.Chat{ID: chatID}, Text: text}}
	}

	assert.True(t, match(msg(1, "blurry, low quality")))
	assert.False(t, match(msg(1, "/settings")))
	assert.False(t, match(msg(1, "")))
	assert.False(t, match(msg(2, "blurry")))
	assert.False(t, match(&models.Update{}))
}
