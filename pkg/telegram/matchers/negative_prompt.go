package matchers

import (
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

type editingStateProvider interface {
	IsEditing(chatID int64, topicID int) bool
}

// IsEditingNegativePrompt matches the plain text message that follows
// /negative in the same chat topic.
func IsEditingNegativePrompt(state editingStateProvider) bot.MatchFunc {
	return func(update *models.Update) bool {
		if update.Message == nil || update.Message.Text == "" {
			return false
		}
		if strings.HasPrefix(update.Message.Text, "/") {
			return false
		}
		return state.IsEditing(update.Message.Chat.ID, update.Message.MessageThreadID)
	}
}
