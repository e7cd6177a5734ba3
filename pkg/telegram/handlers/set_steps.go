package handlers

import (
	"strconv"

	"github.com/go-telegram/bot"

	"github.com/dskvich/video-bot/pkg/domain"
)

func stepsOption(supportedSteps []int) option[int] {
	return option[int]{
		name:    "Inference steps",
		prompt:  "🔁 Number of inference steps. Higher steps improve quality but increase generation time:",
		prefix:  domain.SetStepsCallbackPrefix,
		values:  supportedSteps,
		encode:  strconv.Itoa,
		decode:  strconv.Atoi,
		label:   strconv.Itoa,
		apply:   func(s *domain.Settings, n int) { s.InferenceSteps = n },
		current: func(s *domain.Settings) int { return s.InferenceSteps },
	}
}

func ShowInferenceSteps(settingsProvider settingsLoader, supportedSteps []int, defaultBackend string) bot.HandlerFunc {
	return showOption(stepsOption(supportedSteps), settingsProvider, defaultBackend)
}

func SetInferenceSteps(settingsProvider settingsStore, supportedSteps []int, defaultBackend string) bot.HandlerFunc {
	return setOption(stepsOption(supportedSteps), settingsProvider, defaultBackend)
}
