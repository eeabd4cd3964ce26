package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAuthConfigs indicates missing or unusable token/OTP settings
	// (for example, an empty sign key or a non-HMAC signing method).
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")
	// ErrInvalidStorageConfigs indicates an unknown database driver.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates an unparsable log level.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
)
