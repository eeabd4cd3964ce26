package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-auth-hub/internal/logger"
	"github.com/MKhiriev/go-auth-hub/internal/service"
)

// OTPSweeper periodically deletes verification codes past their TTL. Expired
// codes are rejected on use anyway; sweeping only bounds storage growth.
type OTPSweeper struct {
	otpService service.OTPService
	interval   time.Duration

	logger *logger.Logger
}

func NewOTPSweeper(otpService service.OTPService, interval time.Duration, logger *logger.Logger) *OTPSweeper {
	return &OTPSweeper{
		otpService: otpService,
		interval:   interval,
		logger:     logger,
	}
}

func (s *OTPSweeper) Run(ctx context.Context) {
	s.logger.Info().Dur("interval", s.interval).Msg("OTP sweeper started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("OTP sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *OTPSweeper) sweep(ctx context.Context) {
	removed, err := s.otpService.Sweep(ctx)
	if err != nil {
		s.logger.Err(err).Msg("sweeping expired codes failed")
		return
	}
	if removed > 0 {
		s.logger.Debug().Int64("removed", removed).Msg("expired codes swept")
	}
}
