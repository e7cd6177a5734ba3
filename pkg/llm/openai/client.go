package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dskvich/video-bot/pkg/domain"
)

type client struct {
	token   string
	model   string
	baseURL string
	hc      *http.Client
}

type Option func(*client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) { c.hc = hc }
}

func WithBaseURL(baseURL string) Option {
	return func(c *client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

func WithModel(model string) Option {
	return func(c *client) {
		if model != "" {
			c.model = model
		}
	}
}

func NewClient(token string, opts ...Option) (*client, error) {
	if token == "" {
		return nil, errors.New("token cannot be empty")
	}
	c := &client{
		token:   token,
		model:   DefaultVideoModel,
		baseURL: DefaultBaseURL,
		hc:      &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GenerateVideo submits a text prompt and returns the URL of the first result.
func (c *client) GenerateVideo(ctx context.Context, req domain.GenerationRequest) (string, error) {
	if req.Mode != domain.ModeTextToVideo {
		return "", fmt.Errorf("mode %s: %w", req.Mode, domain.ErrUnsupportedMode)
	}

	reqBody, err := json.Marshal(videoGenerationRequest{
		Model:      c.model,
		Prompt:     req.Prompt,
		Duration:   req.DurationSeconds,
		Resolution: req.Resolution,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/videos/generations", bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status code: %d, response: %s", resp.StatusCode, string(respBody))
	}

	var result videoGenerationResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnexpectedResponse, err)
	}

	if len(result.Data) == 0 || result.Data[0].URL == "" {
		return "", domain.ErrUnexpectedResponse
	}

	return result.Data[0].URL, nil
}
