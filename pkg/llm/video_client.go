package llm

import (
	"context"
	"fmt"

	"github.com/dskvich/video-bot/pkg/domain"
)

type VideoGenerator interface {
	GenerateVideo(ctx context.Context, req domain.GenerationRequest) (string, error)
}

// Uploader is implemented by backends that host user images themselves.
type Uploader interface {
	UploadFile(ctx context.Context, path string) (string, error)
}

type MultiProviderVideoClient struct {
	providers map[string]VideoGenerator
}

func NewMultiProviderVideoClient(providers map[string]VideoGenerator) *MultiProviderVideoClient {
	return &MultiProviderVideoClient{
		providers: providers,
	}
}

// Provider returns the generator registered for backend. A backend without a
// credential is never registered, so ok is false for it.
func (c *MultiProviderVideoClient) Provider(backend string) (VideoGenerator, bool) {
	provider, ok := c.providers[backend]
	return provider, ok && provider != nil
}

func (c *MultiProviderVideoClient) GenerateVideo(ctx context.Context, req domain.GenerationRequest) (string, error) {
	provider, ok := c.Provider(req.Backend)
	if !ok {
		return "", fmt.Errorf("no provider found for backend %s: %w", req.Backend, domain.ErrNotConfigured)
	}

	return provider.GenerateVideo(ctx, req)
}

func (c *MultiProviderVideoClient) UploadFile(ctx context.Context, backend, path string) (string, error) {
	provider, ok := c.Provider(backend)
	if !ok {
		return "", fmt.Errorf("no provider found for backend %s: %w", backend, domain.ErrNotConfigured)
	}

	uploader, ok := provider.(Uploader)
	if !ok {
		return "", fmt.Errorf("backend %s cannot host images: %w", backend, domain.ErrUnsupportedMode)
	}

	return uploader.UploadFile(ctx, path)
}
