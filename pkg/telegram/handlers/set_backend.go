package handlers

import (
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/samber/lo"

	"github.com/dskvich/video-bot/pkg/domain"
)

func backendOption(supportedBackends []string) option[string] {
	return option[string]{
		name:   "Backend",
		prompt: "🛰 Select video generation service:",
		prefix: domain.SetBackendCallbackPrefix,
		values: supportedBackends,
		encode: func(s string) string { return s },
		decode: func(s string) (string, error) {
			if _, ok := domain.LookupBackend(s); !ok {
				return "", fmt.Errorf("unknown backend %q", s)
			}
			return s, nil
		},
		label: func(s string) string {
			b, ok := domain.LookupBackend(s)
			return lo.Ternary(ok, b.DisplayName, s)
		},
		apply:   func(s *domain.Settings, backend string) { s.Backend = backend },
		current: func(s *domain.Settings) string { return s.Backend },
	}
}

func ShowBackends(settingsProvider settingsLoader, supportedBackends []string, defaultBackend string) bot.HandlerFunc {
	return showOption(backendOption(supportedBackends), settingsProvider, defaultBackend)
}

func SetBackend(settingsProvider settingsStore, supportedBackends []string, defaultBackend string) bot.HandlerFunc {
	return setOption(backendOption(supportedBackends), settingsProvider, defaultBackend)
}
