package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-auth-hub/internal/config"
	"github.com/MKhiriev/go-auth-hub/internal/logger"
	"github.com/MKhiriev/go-auth-hub/internal/utils"
	"github.com/MKhiriev/go-auth-hub/models"
)

// tokenService is the concrete implementation of TokenService.
// All state is read-only after construction.
type tokenService struct {
	params     utils.JWTParams
	defaultTTL time.Duration

	logger *logger.Logger
}

// NewTokenService builds a TokenService from the auth configuration.
// The signing key and method are captured once and never reloaded.
func NewTokenService(cfg config.Auth, logger *logger.Logger) TokenService {
	return &tokenService{
		params: utils.JWTParams{
			Issuer:  cfg.TokenIssuer,
			SignKey: cfg.TokenSignKey,
			Method:  cfg.TokenSigningMethod,
		},
		defaultTTL: cfg.TokenDuration,
		logger:     logger,
	}
}

func (s *tokenService) Issue(ctx context.Context, userID int64, role models.Role, ttl time.Duration) (models.Token, error) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	token, err := utils.GenerateJWTToken(s.params, userID, role, ttl)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", userID).Msg("token creation failed")
		return models.Token{}, fmt.Errorf("token creation failed: %w", err)
	}

	return token, nil
}

func (s *tokenService) Verify(ctx context.Context, tokenString string) (int64, error) {
	token, err := utils.ValidateAndParseJWTToken(s.params, tokenString)
	switch {
	case errors.Is(err, utils.ErrJWTExpired):
		return 0, ErrExpiredToken
	case errors.Is(err, utils.ErrJWTMissingSubject):
		return 0, newError(KindInvalidToken, "token is missing user id")
	case err != nil:
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return 0, ErrInvalidToken
	}

	return token.UserID, nil
}
