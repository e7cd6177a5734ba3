package handlers

import (
	"fmt"

	"github.com/go-telegram/bot"

	"github.com/dskvich/video-bot/pkg/domain"
)

func modeOption() option[domain.Mode] {
	return option[domain.Mode]{
		name:   "Mode",
		prompt: "🎬 Select generation mode:",
		prefix: domain.SetModeCallbackPrefix,
		values: []domain.Mode{domain.ModeTextToVideo, domain.ModeImageToVideo},
		encode: func(m domain.Mode) string { return string(m) },
		decode: func(s string) (domain.Mode, error) {
			m := domain.Mode(s)
			if !m.Valid() {
				return "", fmt.Errorf("unknown mode %q", s)
			}
			return m, nil
		},
		label:   domain.Mode.DisplayName,
		apply:   func(s *domain.Settings, m domain.Mode) { s.Mode = m },
		current: func(s *domain.Settings) domain.Mode { return s.Mode },
	}
}

func ShowModes(settingsProvider settingsLoader, defaultBackend string) bot.HandlerFunc {
	return showOption(modeOption(), settingsProvider, defaultBackend)
}

func SetMode(settingsProvider settingsStore, defaultBackend string) bot.HandlerFunc {
	return setOption(modeOption(), settingsProvider, defaultBackend)
}
