package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dskvich/video-bot/pkg/domain"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient("sk-test", WithBaseURL(srv.URL), WithModel("video-test"))
	require.NoError(t, err)
	return c
}

func TestClient_GenerateVideo(t *testing.T) {
	var got videoGenerationRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/videos/generations", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"data":[{"url":"https://cdn.example/first.mp4"},{"url":"https://cdn.example/second.mp4"}]}`)
	})

	url, err := c.GenerateVideo(context.Background(), domain.GenerationRequest{
		Mode:            domain.ModeTextToVideo,
		Prompt:          "drone shot over a glacier",
		DurationSeconds: 10,
		Resolution:      domain.Resolution,
	})
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example/first.mp4", url)
	assert.Equal(t, videoGenerationRequest{
		Model:      "video-test",
		Prompt:     "drone shot over a glacier",
		Duration:   10,
		Resolution: "720p",
	}, got)
}

func TestClient_GenerateVideo_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		target error
	}{
		{name: "empty data", status: http.StatusOK, body: `{"data":[]}`, target: domain.ErrUnexpectedResponse},
		{name: "missing url", status: http.StatusOK, body: `{"data":[{"id":"v1"}]}`, target: domain.ErrUnexpectedResponse},
		{name: "not json", status: http.StatusOK, body: `oops`, target: domain.ErrUnexpectedResponse},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"error":{"message":"bad key"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			url, err := c.GenerateVideo(context.Background(), domain.GenerationRequest{Mode: domain.ModeTextToVideo, Prompt: "x"})
			require.Error(t, err)
			assert.Empty(t, url)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			} else {
				assert.Contains(t, err.Error(), "bad key")
			}
		})
	}
}

func TestClient_GenerateVideo_ImageModeUnsupported(t *testing.T) {
	c, err := NewClient("sk-test")
	require.NoError(t, err)

	_, err = c.GenerateVideo(context.Background(), domain.GenerationRequest{Mode: domain.ModeImageToVideo})
	assert.ErrorIs(t, err, domain.ErrUnsupportedMode)
}

func TestNewClient_EmptyToken(t *testing.T) {
	_, err := NewClient("")
	assert.Error(t, err)
}
