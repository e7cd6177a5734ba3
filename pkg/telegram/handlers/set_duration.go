package handlers

import (
	"strconv"

	"github.com/go-telegram/bot"

	"github.com/dskvich/video-bot/pkg/domain"
)

func durationOption(supportedDurations []int) option[int] {
	return option[int]{
		name:    "Video length",
		prompt:  "⏱ Video length (seconds). Longer videos cost more credits and may be less consistent:",
		prefix:  domain.SetDurationCallbackPrefix,
		values:  supportedDurations,
		encode:  strconv.Itoa,
		decode:  strconv.Atoi,
		label:   func(d int) string { return strconv.Itoa(d) + "s" },
		apply:   func(s *domain.Settings, d int) { s.DurationSeconds = d },
		current: func(s *domain.Settings) int { return s.DurationSeconds },
	}
}

func ShowDurations(settingsProvider settingsLoader, supportedDurations []int, defaultBackend string) bot.HandlerFunc {
	return showOption(durationOption(supportedDurations), settingsProvider, defaultBackend)
}

func SetDuration(settingsProvider settingsStore, supportedDurations []int, defaultBackend string) bot.HandlerFunc {
	return setOption(durationOption(supportedDurations), settingsProvider, defaultBackend)
}
