package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-auth-hub/internal/config"
	"github.com/MKhiriev/go-auth-hub/internal/logger"
	"github.com/MKhiriev/go-auth-hub/internal/store"
	"github.com/MKhiriev/go-auth-hub/internal/utils"
	"github.com/MKhiriev/go-auth-hub/models"
)

// otpService implements the per-email code lifecycle
// NONE -> PENDING -> CONSUMED | EXPIRED -> NONE on top of an OTPRepository.
type otpService struct {
	otpRepository store.OTPRepository

	ttl      time.Duration
	length   int
	alphabet string

	// now is the clock used for created_at stamps and expiry checks.
	now func() time.Time

	logger *logger.Logger
}

func NewOTPService(otpRepository store.OTPRepository, cfg config.Auth, logger *logger.Logger) OTPService {
	return &otpService{
		otpRepository: otpRepository,
		ttl:           cfg.OTPTTL,
		length:        cfg.OTPLength,
		alphabet:      cfg.OTPAlphabet,
		now:           time.Now,
		logger:        logger,
	}
}

// IssueCode generates a code and stores it in place of any pending one.
// Concurrent calls for one email race on the repository; the last write
// wins and only its code validates afterwards.
func (s *otpService) IssueCode(ctx context.Context, email string) (string, error) {
	log := logger.FromContext(ctx)

	code, err := utils.GenerateCode(s.length, s.alphabet)
	if err != nil {
		log.Err(err).Msg("otp generation failed")
		return "", fmt.Errorf("otp generation failed: %w", err)
	}

	otp := models.OneTimeCode{
		Email:     email,
		Code:      code,
		CreatedAt: s.now().UTC(),
	}
	if err = s.otpRepository.ReplaceOTP(ctx, otp); err != nil {
		log.Err(err).Str("email", email).Msg("storing otp failed")
		return "", fmt.Errorf("storing otp failed: %w", err)
	}

	return code, nil
}

func (s *otpService) ValidateCode(ctx context.Context, email, code string) error {
	log := logger.FromContext(ctx)

	otp, err := s.otpRepository.FindOTPByEmail(ctx, email)
	if errors.Is(err, store.ErrOTPNotFound) {
		return ErrOTPNotFound
	}
	if err != nil {
		log.Err(err).Str("email", email).Msg("otp lookup failed")
		return fmt.Errorf("otp lookup failed: %w", err)
	}

	if otp.IsExpired(s.now(), s.ttl) {
		// only the code read above goes; a concurrent IssueCode may have
		// stored a fresh one since
		if _, err = s.otpRepository.DeleteOTPIfMatch(ctx, otp); err != nil {
			log.Err(err).Str("email", email).Msg("deleting expired otp failed")
			return fmt.Errorf("deleting expired otp failed: %w", err)
		}
		return ErrOTPExpired
	}

	if subtle.ConstantTimeCompare([]byte(otp.Code), []byte(code)) != 1 {
		return ErrOTPMismatch
	}

	return nil
}

func (s *otpService) ConsumeCode(ctx context.Context, email, code string) error {
	log := logger.FromContext(ctx)

	otp, err := s.otpRepository.FindOTPByEmail(ctx, email)
	if errors.Is(err, store.ErrOTPNotFound) {
		return nil
	}
	if err != nil {
		log.Err(err).Str("email", email).Msg("otp lookup failed")
		return fmt.Errorf("otp lookup failed: %w", err)
	}
	if subtle.ConstantTimeCompare([]byte(otp.Code), []byte(code)) != 1 {
		// replaced by a newer code
		return nil
	}

	if _, err = s.otpRepository.DeleteOTPIfMatch(ctx, otp); err != nil {
		log.Err(err).Str("email", email).Msg("deleting otp failed")
		return fmt.Errorf("deleting otp failed: %w", err)
	}
	return nil
}

func (s *otpService) Sweep(ctx context.Context) (int64, error) {
	removed, err := s.otpRepository.DeleteExpiredOTPs(ctx, s.now().Add(-s.ttl))
	if err != nil {
		return 0, fmt.Errorf("sweeping expired otps failed: %w", err)
	}
	return removed, nil
}
