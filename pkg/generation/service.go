package generation

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dskvich/video-bot/pkg/domain"
	"github.com/dskvich/video-bot/pkg/llm"
	"github.com/dskvich/video-bot/pkg/logger"
	"github.com/dskvich/video-bot/pkg/metrics"
)

type Stage string

const (
	StageValidating Stage = "validating"
	StageUploading  Stage = "uploading"
	StageSubmitting Stage = "submitting"
	StageSucceeded  Stage = "succeeded"
	StageFailed     Stage = "failed"
)

// Progress is called on every stage change. It may be nil.
type Progress func(ctx context.Context, stage Stage)

// providerRegistry routes calls to the client registered for a backend.
type providerRegistry interface {
	Provider(backend string) (llm.VideoGenerator, bool)
	GenerateVideo(ctx context.Context, req domain.GenerationRequest) (string, error)
	UploadFile(ctx context.Context, backend, path string) (string, error)
}

type Input struct {
	Settings domain.Settings
	Prompt   string
	// Image holds raw bytes of a user upload. ImageURL, when set, is an image
	// that is already hosted and skips the upload.
	Image    []byte
	ImageURL string
}

type Result struct {
	Request  domain.GenerationRequest
	VideoURL string
	ImageURL string
	Err      error
}

func (r Result) OK() bool {
	return r.Err == nil
}

type Service struct {
	providers providerRegistry
	tempDir   string
	metrics   *metrics.Metrics
}

func NewService(providers providerRegistry, tempDir string, m *metrics.Metrics) *Service {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &Service{
		providers: providers,
		tempDir:   tempDir,
		metrics:   m,
	}
}

// Generate runs one submission to completion. Every failure is returned in
// Result.Err as a *Error; Generate itself never panics on remote errors.
func (s *Service) Generate(ctx context.Context, in Input, progress Progress) Result {
	if progress == nil {
		progress = func(context.Context, Stage) {}
	}

	start := time.Now()
	backend := in.Settings.Backend
	mode := string(in.Settings.Mode)

	fail := func(kind Kind, err error, hint string) Result {
		progress(ctx, StageFailed)
		s.metrics.ObserveGeneration(backend, mode, kind.String(), time.Since(start))
		slog.WarnContext(ctx, "Video generation failed", "backend", backend, "mode", mode, "kind", kind.String(), logger.Err(err))
		return Result{Err: &Error{Kind: kind, Err: err, Hint: hint}}
	}

	progress(ctx, StageValidating)

	provider, err := s.provider(backend)
	if err != nil {
		return fail(KindConfig, err, remediation(backend))
	}

	if err := validate(in); err != nil {
		return fail(KindValidation, err, "")
	}

	imageURL := in.ImageURL
	if in.Settings.Mode == domain.ModeImageToVideo && imageURL == "" {
		if _, ok := provider.(llm.Uploader); !ok {
			return fail(KindConfig, fmt.Errorf("backend %s cannot host images: %w", backend, domain.ErrUnsupportedMode), "")
		}

		progress(ctx, StageUploading)
		imageURL, err = s.uploadImage(ctx, backend, in.Image)
		if err != nil {
			return fail(KindRemote, err, "")
		}
		slog.InfoContext(ctx, "Image uploaded", "backend", backend, "url", imageURL)
	}

	req := BuildRequest(in.Settings, strings.TrimSpace(in.Prompt), imageURL)

	progress(ctx, StageSubmitting)
	slog.InfoContext(ctx, "Submitting video generation",
		"backend", backend, "mode", mode, "frames", req.NumFrames,
		"guidanceScale", req.GuidanceScale, "steps", req.InferenceSteps)

	videoURL, err := s.providers.GenerateVideo(ctx, req)
	if err != nil {
		res := fail(KindRemote, err, "")
		res.Request = req
		res.ImageURL = imageURL
		return res
	}

	progress(ctx, StageSucceeded)
	s.metrics.ObserveGeneration(backend, mode, "success", time.Since(start))
	slog.InfoContext(ctx, "Video generated", "backend", backend, "url", videoURL, "elapsed", time.Since(start))

	return Result{
		Request:  req,
		VideoURL: videoURL,
		ImageURL: imageURL,
	}
}

func (s *Service) provider(backend string) (llm.VideoGenerator, error) {
	if _, ok := domain.LookupBackend(backend); !ok {
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
	provider, ok := s.providers.Provider(backend)
	if !ok {
		return nil, fmt.Errorf("backend %s: %w", backend, domain.ErrNotConfigured)
	}
	return provider, nil
}

func validate(in Input) error {
	if strings.TrimSpace(in.Prompt) == "" {
		return domain.ErrEmptyPrompt
	}

	b, _ := domain.LookupBackend(in.Settings.Backend)
	if !b.Supports(in.Settings.Mode) {
		return fmt.Errorf("%s with %s: %w", in.Settings.Mode.DisplayName(), b.DisplayName, domain.ErrUnsupportedMode)
	}

	if in.Settings.Mode == domain.ModeImageToVideo && len(in.Image) == 0 && in.ImageURL == "" {
		return domain.ErrImageRequired
	}

	return domain.ValidateSettings(&in.Settings)
}

func remediation(backend string) string {
	if b, ok := domain.LookupBackend(backend); ok {
		return b.Remediation()
	}
	return fmt.Sprintf("Backend %q is not supported.", backend)
}

// uploadImage writes data to a scratch .png file because the upload APIs
// take a path. The file is removed afterwards on a best effort basis.
func (s *Service) uploadImage(ctx context.Context, backend string, data []byte) (string, error) {
	if err := os.MkdirAll(s.tempDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("unable to create temp directory: %w", err)
	}

	f, err := os.CreateTemp(s.tempDir, "upload-*.png")
	if err != nil {
		return "", fmt.Errorf("unable to create temp file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("unable to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("unable to close temp file: %w", err)
	}

	url, err := s.providers.UploadFile(ctx, backend, f.Name())
	if err != nil {
		return "", fmt.Errorf("uploading image: %w", err)
	}

	return url, nil
}
