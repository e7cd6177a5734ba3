package replicate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dskvich/video-bot/pkg/domain"
)

const (
	defaultAPIURL          = "https://api.replicate.com/v1"
	defaultPollingTimeout  = 10 * time.Minute
	defaultPollingInterval = 1 * time.Second
)

type client struct {
	token           string
	model           string
	apiURL          string
	hc              *http.Client
	pollingTimeout  time.Duration
	pollingInterval time.Duration
}

type Option func(*client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) { c.hc = hc }
}

func WithAPIURL(apiURL string) Option {
	return func(c *client) { c.apiURL = strings.TrimRight(apiURL, "/") }
}

func WithModel(model string) Option {
	return func(c *client) {
		if model != "" {
			c.model = model
		}
	}
}

func WithPolling(interval, timeout time.Duration) Option {
	return func(c *client) {
		c.pollingInterval = interval
		c.pollingTimeout = timeout
	}
}

func NewClient(token string, opts ...Option) (*client, error) {
	if token == "" {
		return nil, errors.New("token cannot be empty")
	}
	c := &client{
		token:           token,
		model:           DefaultVideoModel,
		apiURL:          defaultAPIURL,
		hc:              &http.Client{},
		pollingTimeout:  defaultPollingTimeout,
		pollingInterval: defaultPollingInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *client) GenerateVideo(ctx context.Context, req domain.GenerationRequest) (string, error) {
	predictionURL := fmt.Sprintf("%s/models/%s/predictions", c.apiURL, c.model)

	reqBody, err := json.Marshal(CreatePredictionRequest{Input: buildInput(req)})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, predictionURL, bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Prefer", "wait") // Wait for the prediction to complete

	respBody, err := c.doRequest(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to create prediction: %w", err)
	}

	var prediction ReplicatePrediction
	if err := json.Unmarshal(respBody, &prediction); err != nil {
		return "", fmt.Errorf("failed to parse prediction response: %w", err)
	}

	// Prefer: wait gives up after a minute; video models usually need longer.
	if !isTerminal(prediction.Status) {
		prediction, err = c.pollPrediction(ctx, prediction.ID)
		if err != nil {
			return "", fmt.Errorf("failed to poll prediction: %w", err)
		}
	}

	if prediction.Status != PredictionStatusSucceeded {
		return "", fmt.Errorf("prediction failed with status %s: %v", prediction.Status, prediction.Error)
	}

	return outputURL(prediction.Output)
}

func buildInput(req domain.GenerationRequest) map[string]interface{} {
	input := map[string]interface{}{
		"prompt":              req.Prompt,
		"num_frames":          req.NumFrames,
		"fps":                 req.FrameRate,
		"guidance_scale":      req.GuidanceScale,
		"num_inference_steps": req.InferenceSteps,
	}
	if req.NegativePrompt != "" {
		input["negative_prompt"] = req.NegativePrompt
	}
	if req.Mode == domain.ModeImageToVideo {
		input["image"] = req.ImageURL
	}
	return input
}

// outputURL accepts both a single URL and a list of URLs.
func outputURL(raw json.RawMessage) (string, error) {
	var single string
	if err := json.Unmarshal(raw, &single); err == nil && single != "" {
		return single, nil
	}

	var many []string
	if err := json.Unmarshal(raw, &many); err == nil && len(many) > 0 && many[0] != "" {
		return many[0], nil
	}

	return "", domain.ErrUnexpectedResponse
}

func isTerminal(status string) bool {
	return status == PredictionStatusSucceeded ||
		status == PredictionStatusFailed ||
		status == PredictionStatusCanceled
}

// UploadFile sends a local file to the Replicate Files API and returns the
// URL predictions can read it from.
func (c *client) UploadFile(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening upload file: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("content", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("creating multipart form: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("copying upload file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("closing multipart form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/files", &body)
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	respBody, err := c.doRequest(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	var file ReplicateFile
	if err := json.Unmarshal(respBody, &file); err != nil {
		return "", fmt.Errorf("failed to parse file response: %w", err)
	}

	fileURL := file.URLs["get"]
	if fileURL == "" {
		return "", errors.New("file response is missing url")
	}

	return fileURL, nil
}

func (c *client) doRequest(req *http.Request) ([]byte, error) {
	req.Header.Set("Authorization", "Bearer "+c.token)

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

func (c *client) pollPrediction(ctx context.Context, predictionID string) (ReplicatePrediction, error) {
	var prediction ReplicatePrediction

	timeoutCtx, cancel := context.WithTimeout(ctx, c.pollingTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-timeoutCtx.Done():
			if err := ctx.Err(); err != nil {
				return prediction, err
			}
			return prediction, errors.New("polling timed out")
		case <-ticker.C:
			predictionURL := fmt.Sprintf("%s/predictions/%s", c.apiURL, predictionID)
			req, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, predictionURL, nil)
			if err != nil {
				return prediction, fmt.Errorf("failed to create HTTP request: %w", err)
			}

			respBody, err := c.doRequest(req)
			if err != nil {
				return prediction, fmt.Errorf("failed to get prediction: %w", err)
			}

			if err := json.Unmarshal(respBody, &prediction); err != nil {
				return prediction, fmt.Errorf("failed to parse prediction response: %w", err)
			}

			if isTerminal(prediction.Status) {
				return prediction, nil
			}
		}
	}
}
