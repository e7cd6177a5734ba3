package matchers

import (
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// ParseCommand splits "/name@bot args" into name and args. ok is false when
// text is not a command.
func ParseCommand(text string) (name, args string, ok bool) {
	if !strings.HasPrefix(text, "/") {
		return "", "", false
	}

	head, rest, _ := strings.Cut(text[1:], " ")
	name, _, _ = strings.Cut(head, "@")
	return name, strings.TrimSpace(rest), name != ""
}

// Command matches a message invoking the named command, with or without the
// @botname suffix Telegram adds in groups and with or without arguments.
func Command(name string) bot.MatchFunc {
	return func(update *models.Update) bool {
		if update.Message == nil {
			return false
		}
		cmd, _, ok := ParseCommand(update.Message.Text)
		return ok && cmd == name
	}
}
