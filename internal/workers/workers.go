package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-auth-hub/internal/config"
	"github.com/MKhiriev/go-auth-hub/internal/logger"
	"github.com/MKhiriev/go-auth-hub/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the workers enabled by cfg. The result may be empty.
func NewWorkers(services *service.Services, cfg config.Workers, logger *logger.Logger) *Workers {
	w := &Workers{}

	if cfg.OTPSweepInterval > 0 {
		w.workers = append(w.workers, NewOTPSweeper(services.OTPService, cfg.OTPSweepInterval, logger))
	} else {
		logger.Info().Msg("OTP sweeper disabled")
	}

	return w
}

// Run starts every worker in its own goroutine and blocks until all of them
// have returned.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker.Run(ctx)
		}()
	}
	wg.Wait()
}
