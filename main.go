package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/go-telegram/bot"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/samber/lo"
	"github.com/uptrace/bun"

	"github.com/dskvich/video-bot/pkg/database"
	"github.com/dskvich/video-bot/pkg/domain"
	"github.com/dskvich/video-bot/pkg/generation"
	"github.com/dskvich/video-bot/pkg/llm"
	"github.com/dskvich/video-bot/pkg/llm/fal"
	"github.com/dskvich/video-bot/pkg/llm/openai"
	"github.com/dskvich/video-bot/pkg/llm/replicate"
	"github.com/dskvich/video-bot/pkg/logger"
	"github.com/dskvich/video-bot/pkg/metrics"
	"github.com/dskvich/video-bot/pkg/repository"
	"github.com/dskvich/video-bot/pkg/services"
	"github.com/dskvich/video-bot/pkg/telegram/handlers"
	"github.com/dskvich/video-bot/pkg/telegram/matchers"
	"github.com/dskvich/video-bot/pkg/telegram/middleware"
	"github.com/dskvich/video-bot/pkg/transport"
)

type Config struct {
	TelegramBotToken          string  `env:"TELEGRAM_BOT_TOKEN,required"`
	TelegramAuthorizedUserIDs []int64 `env:"TELEGRAM_AUTHORIZED_USER_IDS" envSeparator:" "`

	FalKey              string `env:"FAL_KEY"`
	OpenAIAPIKey        string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL       string `env:"OPENAI_BASE_URL"`
	OpenAIVideoModel    string `env:"OPENAI_VIDEO_MODEL"`
	ReplicateAPIToken   string `env:"REPLICATE_API_TOKEN"`
	ReplicateVideoModel string `env:"REPLICATE_VIDEO_MODEL"`
	DefaultBackend      string `env:"DEFAULT_BACKEND" envDefault:"fal"`

	PgURL    string `env:"DATABASE_URL"`
	PgHost   string `env:"DB_HOST"`
	BunDebug int    `env:"BUNDEBUG" envDefault:"0"`

	ProxyURL      string `env:"PROXY_URL"`
	HTTPAddr      string `env:"HTTP_ADDR" envDefault:":8080"`
	UploadTempDir string `env:"UPLOAD_TEMP_DIR"`
}

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, logger.DefaultOptions)))

	if err := runMain(); err != nil {
		slog.Error("shutting down due to error", logger.Err(err))
		os.Exit(1)
	}
	slog.Info("shutdown complete")
}

func runMain() error {
	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	svcGroup, err := setupServices()
	if err != nil {
		return err
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGHUP, syscall.SIGTERM)
		select {
		case s := <-sigCh:
			slog.Info("shutting down due to signal", "signal", s.String())
			cancelFn()
		case <-ctx.Done():
		}
	}()

	return svcGroup.Start(ctx)
}

func setupServices() (services.Group, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing env config: %w", err)
	}

	if _, ok := domain.LookupBackend(cfg.DefaultBackend); !ok {
		return nil, fmt.Errorf("unknown default backend %q", cfg.DefaultBackend)
	}

	var svc services.Service
	var svcGroup services.Group

	var db *bun.DB
	if cfg.PgURL != "" || cfg.PgHost != "" {
		var err error
		if db, err = database.NewDB(cfg.PgURL, cfg.PgHost); err != nil {
			return nil, fmt.Errorf("initializing database: %w", err)
		}
	} else {
		slog.Warn("No database configured, settings and prompts are kept in memory")
	}

	httpClient, err := transport.NewHTTPClient(cfg.ProxyURL)
	if err != nil {
		return nil, fmt.Errorf("creating http client: %w", err)
	}

	videoClient := llm.NewMultiProviderVideoClient(setupProviders(cfg, httpClient))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	generator := generation.NewService(videoClient, cfg.UploadTempDir, metrics.New(registry))

	settingsRepository, promptRepository := repository.New(db)
	stateRepository := repository.NewStateRepository()

	supportedBackends := lo.Map(domain.Backends, func(b domain.Backend, _ int) string { return b.Name })
	configuredBackends := lo.Filter(supportedBackends, func(name string, _ int) bool {
		_, ok := videoClient.Provider(name)
		return ok
	})

	supportedDurations := []int{3, 5, 6, 10, 15, 20}
	supportedGuidanceScales := []float64{1.0, 2.5, 4.0, 5.5, 7.0, 8.5, 10.0}
	supportedInferenceSteps := []int{8, 16, 24, 32, 40, 50}

	defaultBackend := cfg.DefaultBackend

	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.RequestID,
			middleware.Auth(cfg.TelegramAuthorizedUserIDs),
			middleware.UploadingVideo,
		),

		bot.WithHTTPClient(time.Minute, httpClient),
		bot.WithDefaultHandler(handlers.GenerateVideo(settingsRepository, promptRepository, generator, httpClient, defaultBackend)),

		bot.WithCallbackQueryDataHandler(domain.SetModeCallbackPrefix, bot.MatchTypePrefix, handlers.SetMode(settingsRepository, defaultBackend)),
		bot.WithCallbackQueryDataHandler(domain.SetBackendCallbackPrefix, bot.MatchTypePrefix, handlers.SetBackend(settingsRepository, supportedBackends, defaultBackend)),
		bot.WithCallbackQueryDataHandler(domain.SetDurationCallbackPrefix, bot.MatchTypePrefix, handlers.SetDuration(settingsRepository, supportedDurations, defaultBackend)),
		bot.WithCallbackQueryDataHandler(domain.SetGuidanceCallbackPrefix, bot.MatchTypePrefix, handlers.SetGuidanceScale(settingsRepository, supportedGuidanceScales, defaultBackend)),
		bot.WithCallbackQueryDataHandler(domain.SetStepsCallbackPrefix, bot.MatchTypePrefix, handlers.SetInferenceSteps(settingsRepository, supportedInferenceSteps, defaultBackend)),
		bot.WithCallbackQueryDataHandler(domain.GenVideoCallbackPrefix, bot.MatchTypePrefix, handlers.RegenerateVideo(promptRepository, generator)),
	}

	b, err := bot.New(cfg.TelegramBotToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}

	// Commands are matched by name so "/mode@video_bot" in groups and
	// "/negative blurry" with arguments work too.
	commands := map[string]bot.HandlerFunc{
		"start":          handlers.Start(configuredBackends),
		"mode":           handlers.ShowModes(settingsRepository, defaultBackend),
		"backend":        handlers.ShowBackends(settingsRepository, supportedBackends, defaultBackend),
		"duration":       handlers.ShowDurations(settingsRepository, supportedDurations, defaultBackend),
		"guidance":       handlers.ShowGuidanceScales(settingsRepository, supportedGuidanceScales, defaultBackend),
		"steps":          handlers.ShowInferenceSteps(settingsRepository, supportedInferenceSteps, defaultBackend),
		"negative":       handlers.RequestNegativePrompt(settingsRepository, stateRepository, defaultBackend),
		"negative_clear": handlers.ClearNegativePrompt(settingsRepository, stateRepository, defaultBackend),
		"settings":       handlers.ShowSettings(settingsRepository, defaultBackend),
		"reset":          handlers.ResetSettings(settingsRepository),
	}
	for name, handler := range commands {
		b.RegisterHandlerMatchFunc(matchers.Command(name), handler)
	}

	b.RegisterHandlerMatchFunc(matchers.IsEditingNegativePrompt(stateRepository), handlers.SetNegativePrompt(settingsRepository, stateRepository, defaultBackend))

	if svc, err = services.NewTelegramBot(b); err == nil {
		svcGroup = append(svcGroup, svc)
	} else {
		return nil, err
	}

	if svc, err = services.NewHTTPServer(cfg.HTTPAddr, registry); err == nil {
		svcGroup = append(svcGroup, svc)
	} else {
		return nil, err
	}

	return svcGroup, nil
}

// setupProviders builds a client for every backend with a credential. A
// backend without one stays unregistered and reports a configuration error
// when selected.
func setupProviders(cfg Config, hc *http.Client) map[string]llm.VideoGenerator {
	providers := make(map[string]llm.VideoGenerator)

	register := func(backend string, newClient func() (llm.VideoGenerator, error)) {
		client, err := newClient()
		if err != nil {
			b, _ := domain.LookupBackend(backend)
			slog.Warn("Video backend not initialized", "backend", backend, "env", b.EnvVar, logger.Err(err))
			return
		}
		providers[backend] = client
		slog.Info("Video backend initialized", "backend", backend)
	}

	register(domain.FalBackend, func() (llm.VideoGenerator, error) {
		return fal.NewClient(cfg.FalKey, fal.WithHTTPClient(hc))
	})
	register(domain.OpenAIBackend, func() (llm.VideoGenerator, error) {
		return openai.NewClient(cfg.OpenAIAPIKey,
			openai.WithHTTPClient(hc),
			openai.WithBaseURL(cfg.OpenAIBaseURL),
			openai.WithModel(cfg.OpenAIVideoModel),
		)
	})
	register(domain.ReplicateBackend, func() (llm.VideoGenerator, error) {
		return replicate.NewClient(cfg.ReplicateAPIToken,
			replicate.WithHTTPClient(hc),
			replicate.WithModel(cfg.ReplicateVideoModel),
		)
	})

	return providers
}
