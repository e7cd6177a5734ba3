package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestLogger(buf *bytes.Buffer, level slog.Level) *slog.Logger {
	return slog.New(NewHandler(buf, &Options{Level: level, NoColor: true}))
}

func TestHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, slog.LevelInfo)

	ctx := WithRequestID(context.Background(), "req-1")
	log.InfoContext(ctx, "Video generated", "backend", "fal", "frames", 180, "prompt", "a cat")

	out := buf.String()
	assert.Contains(t, out, "INFO  Video generated")
	assert.Contains(t, out, "request_id=req-1")
	assert.Contains(t, out, "backend=fal")
	assert.Contains(t, out, "frames=180")
	assert.Contains(t, out, `prompt="a cat"`)
}

func TestHandler_Level(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, slog.LevelWarn)

	log.Info("hidden")
	log.Warn("shown", Err(errors.New("boom")))

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "WARN  shown")
	assert.Contains(t, buf.String(), "error=boom")
}

func TestHandler_AttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, slog.LevelDebug).With("service", "bot").WithGroup("req")

	log.Debug("payload", "mode", "text-to-video", Err(nil))

	out := buf.String()
	assert.Contains(t, out, "service=bot")
	assert.Contains(t, out, "req.mode=text-to-video")
	assert.NotContains(t, out, "error=")
}

func TestRequestID_Missing(t *testing.T) {
	assert.Empty(t, RequestID(context.Background()))
}
