package fal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dskvich/video-bot/pkg/domain"
)

const (
	defaultRunURL  = "https://fal.run"
	defaultRestURL = "https://rest.alpha.fal.ai"

	uploadInitiatePath = "/storage/upload/initiate?storage_type=fal-cdn-v3"
)

type client struct {
	key     string
	hc      *http.Client
	runURL  string
	restURL string
}

type Option func(*client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) { c.hc = hc }
}

// WithBaseURLs points the client at other run and storage hosts.
func WithBaseURLs(runURL, restURL string) Option {
	return func(c *client) {
		c.runURL = strings.TrimRight(runURL, "/")
		c.restURL = strings.TrimRight(restURL, "/")
	}
}

func NewClient(key string, opts ...Option) (*client, error) {
	if key == "" {
		return nil, errors.New("key cannot be empty")
	}
	c := &client{
		key:     key,
		hc:      &http.Client{},
		runURL:  defaultRunURL,
		restURL: defaultRestURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GenerateVideo runs the LongCat endpoint for req.Mode and blocks until the
// job finishes.
func (c *client) GenerateVideo(ctx context.Context, req domain.GenerationRequest) (string, error) {
	endpoint, ok := ModeToEndpoint[req.Mode]
	if !ok {
		return "", fmt.Errorf("mode %s: %w", req.Mode, domain.ErrUnsupportedMode)
	}

	arguments := buildArguments(req)

	reqBody, err := json.Marshal(arguments)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.runURL+"/"+endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	respBody, err := c.doRequest(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to run %s: %w", endpoint, err)
	}

	return ExtractVideoURL(respBody)
}

func buildArguments(req domain.GenerationRequest) map[string]any {
	arguments := map[string]any{
		"prompt":              req.Prompt,
		"num_frames":          req.NumFrames,
		"guidance_scale":      req.GuidanceScale,
		"num_inference_steps": req.InferenceSteps,
		"fps":                 domain.FrameRate,
	}
	if req.NegativePrompt != "" {
		arguments["negative_prompt"] = req.NegativePrompt
	}
	if req.Mode == domain.ModeImageToVideo {
		arguments["image_url"] = req.ImageURL
	}
	return arguments
}

// UploadFile stores a local file on the fal CDN and returns its public URL.
func (c *client) UploadFile(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading upload file: %w", err)
	}

	reqBody, err := json.Marshal(initiateUploadRequest{
		ContentType: uploadContentType,
		FileName:    filepath.Base(path),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.restURL+uploadInitiatePath, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	respBody, err := c.doRequest(req)
	if err != nil {
		return "", fmt.Errorf("failed to initiate upload: %w", err)
	}

	var initiated initiateUploadResponse
	if err := json.Unmarshal(respBody, &initiated); err != nil {
		return "", fmt.Errorf("failed to parse upload response: %w", err)
	}
	if initiated.UploadURL == "" || initiated.FileURL == "" {
		return "", errors.New("upload response is missing urls")
	}

	put, err := http.NewRequestWithContext(ctx, http.MethodPut, initiated.UploadURL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}
	put.Header.Set("Content-Type", uploadContentType)

	resp, err := c.hc.Do(put)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("failed to upload file: unexpected status code: %d, response: %s", resp.StatusCode, string(body))
	}

	return initiated.FileURL, nil
}

func (c *client) doRequest(req *http.Request) ([]byte, error) {
	req.Header.Set("Authorization", "Key "+c.key)
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status code: %d, response: %s", resp.StatusCode, string(respBody))
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return respBody, nil
}
