package handlers

import (
	"strconv"

	"github.com/go-telegram/bot"

	"github.com/dskvich/video-bot/pkg/domain"
)

func formatGuidance(g float64) string {
	return strconv.FormatFloat(g, 'f', 1, 64)
}

func guidanceOption(supportedScales []float64) option[float64] {
	return option[float64]{
		name:    "Guidance scale",
		prompt:  "🎯 Guidance scale. Higher values follow the prompt more closely but may reduce diversity:",
		prefix:  domain.SetGuidanceCallbackPrefix,
		values:  supportedScales,
		encode:  formatGuidance,
		decode:  func(s string) (float64, error) { return strconv.ParseFloat(s, 64) },
		label:   formatGuidance,
		apply:   func(s *domain.Settings, g float64) { s.GuidanceScale = g },
		current: func(s *domain.Settings) float64 { return s.GuidanceScale },
	}
}

func ShowGuidanceScales(settingsProvider settingsLoader, supportedScales []float64, defaultBackend string) bot.HandlerFunc {
	return showOption(guidanceOption(supportedScales), settingsProvider, defaultBackend)
}

func SetGuidanceScale(settingsProvider settingsStore, supportedScales []float64, defaultBackend string) bot.HandlerFunc {
	return setOption(guidanceOption(supportedScales), settingsProvider, defaultBackend)
}
