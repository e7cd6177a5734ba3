package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/dskvich/video-bot/pkg/logger"
)

type Service interface {
	Name() string
	Start(ctx context.Context) error
}

type Group []Service

// Start runs every service until ctx is done or one of them fails. The first
// failure cancels the rest; all errors are returned together.
func (g Group) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		result *multierror.Error
	)

	for _, svc := range g {
		wg.Add(1)
		go func(svc Service) {
			defer wg.Done()

			slog.Info("starting service", "name", svc.Name())
			if err := svc.Start(ctx); err != nil {
				slog.Error("service failed", "name", svc.Name(), logger.Err(err))
				mu.Lock()
				result = multierror.Append(result, err)
				mu.Unlock()
				cancel()
				return
			}
			slog.Info("service stopped", "name", svc.Name())
		}(svc)
	}

	wg.Wait()
	return result.ErrorOrNil()
}
