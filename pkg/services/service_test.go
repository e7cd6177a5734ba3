package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type funcService struct {
	name  string
	start func(ctx context.Context) error
}

func (f funcService) Name() string                    { return f.name }
func (f funcService) Start(ctx context.Context) error { return f.start(ctx) }

func TestGroup_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	g := Group{
		funcService{name: "a", start: func(ctx context.Context) error { <-ctx.Done(); return nil }},
		funcService{name: "b", start: func(ctx context.Context) error { <-ctx.Done(); return nil }},
	}

	done := make(chan error, 1)
	go func() { done <- g.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("group did not stop")
	}
}

func TestGroup_FailureCancelsOthers(t *testing.T) {
	boom := errors.New("boom")
	g := Group{
		funcService{name: "failing", start: func(context.Context) error { return boom }},
		funcService{name: "waiting", start: func(ctx context.Context) error { <-ctx.Done(); return nil }},
	}

	err := g.Start(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestRouter(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "videobot_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	srv := httptest.NewServer(NewRouter(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	rec := httptest.NewRecorder()
	NewRouter(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "videobot_test_total 1")
}

func TestNewHTTPServer_EmptyAddr(t *testing.T) {
	_, err := NewHTTPServer("", prometheus.NewRegistry())
	assert.Error(t, err)
}

func TestNewTelegramBot_Nil(t *testing.T) {
	_, err := NewTelegramBot(nil)
	assert.Error(t, err)
}
