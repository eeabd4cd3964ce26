package service

import (
	"fmt"

	"github.com/MKhiriev/go-auth-hub/internal/adapter"
	"github.com/MKhiriev/go-auth-hub/internal/config"
	"github.com/MKhiriev/go-auth-hub/internal/crypto"
	"github.com/MKhiriev/go-auth-hub/internal/logger"
	"github.com/MKhiriev/go-auth-hub/internal/store"
)

type Services struct {
	AuthService    AuthService
	TokenService   TokenService
	OTPService     OTPService
	EmailService   EmailService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, sender adapter.EmailSender, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	hasher := crypto.NewBcryptHasher(cfg.Auth.BcryptCost, cfg.Auth.HashWorkers)
	tokenService := NewTokenService(cfg.Auth, logger)
	otpService := NewOTPService(storages.OTPRepository, cfg.Auth, logger)
	emailService := NewEmailService(sender, logger)

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, otpService, tokenService, emailService, hasher, logger),
		TokenService:   tokenService,
		OTPService:     otpService,
		EmailService:   emailService,
		AppInfoService: appInfoService,
	}, nil
}
