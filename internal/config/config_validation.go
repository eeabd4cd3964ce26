// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog"
)

var (
	supportedSigningMethods = []string{"HS256", "HS384", "HS512"}
	supportedDBDrivers      = []string{"postgres", "sqlite"}
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Auth.TokenSignKey == "" {
		return fmt.Errorf("%w: empty token sign key", ErrInvalidAuthConfigs)
	}
	if !slices.Contains(supportedSigningMethods, cfg.Auth.TokenSigningMethod) {
		return fmt.Errorf("%w: unsupported signing method %q", ErrInvalidAuthConfigs, cfg.Auth.TokenSigningMethod)
	}
	if cfg.Auth.TokenDuration <= 0 || cfg.Auth.OTPTTL <= 0 {
		return fmt.Errorf("%w: token duration and otp ttl must be positive", ErrInvalidAuthConfigs)
	}
	if cfg.Auth.OTPLength <= 0 || cfg.Auth.OTPAlphabet == "" {
		return fmt.Errorf("%w: otp length and alphabet must be set", ErrInvalidAuthConfigs)
	}

	if cfg.Storage.DB.DSN != "" && !slices.Contains(supportedDBDrivers, cfg.Storage.DB.Driver) {
		return fmt.Errorf("%w: unsupported driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}
	if cfg.Storage.Redis.Addr != "" && cfg.Storage.Redis.OTPRetention <= cfg.Auth.OTPTTL {
		return fmt.Errorf("%w: redis otp retention must exceed otp ttl", ErrInvalidStorageConfigs)
	}

	if _, err := zerolog.ParseLevel(cfg.App.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAppConfigs, err)
	}

	return nil
}
