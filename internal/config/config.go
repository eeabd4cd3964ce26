// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-auth-hub server. It aggregates all sub-configurations and is
// populated by merging defaults, environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds process-level settings such as the version and log level.
	App App `envPrefix:"APP_"`

	// Auth holds the signing and one-time code parameters. Loaded once at
	// startup and never changed afterwards.
	Auth Auth `envPrefix:"AUTH_"`

	// Storage holds configuration for the user and OTP persistence backends.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP and
	// gRPC servers.
	Server Server `envPrefix:"SERVER_"`

	// Email holds settings of the outbound email API.
	Email Email `envPrefix:"EMAIL_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// Version is the semantic version string of the running application
	// (e.g. "1.2.3"). Exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is a zerolog level name ("debug", "info", "warn", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Auth holds session token and one-time code parameters.
type Auth struct {
	// TokenSignKey is the secret key used to sign and verify session tokens.
	// Must be kept confidential.
	// Env: AUTH_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenSigningMethod is the JWT "alg" every token is signed and verified
	// with. Only the HMAC family (HS256, HS384, HS512) is accepted.
	// Env: AUTH_TOKEN_SIGNING_METHOD
	TokenSigningMethod string `env:"TOKEN_SIGNING_METHOD"`

	// TokenIssuer is the "iss" claim embedded in every issued token and
	// required on verification.
	// Env: AUTH_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the default lifetime of an issued token.
	// Env: AUTH_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// OTPTTL is how long an issued verification code stays valid.
	// Env: AUTH_OTP_TTL
	OTPTTL time.Duration `env:"OTP_TTL"`

	// OTPLength is the number of characters in a verification code.
	// Env: AUTH_OTP_LENGTH
	OTPLength int `env:"OTP_LENGTH"`

	// OTPAlphabet is the set of characters codes are drawn from.
	// Env: AUTH_OTP_ALPHABET
	OTPAlphabet string `env:"OTP_ALPHABET"`

	// BcryptCost is the bcrypt work factor for password credentials.
	// Env: AUTH_BCRYPT_COST
	BcryptCost int `env:"BCRYPT_COST"`

	// HashWorkers bounds how many password hashes are computed at once.
	// Env: AUTH_HASH_WORKERS
	HashWorkers int `env:"HASH_WORKERS"`
}

// Storage groups the configuration for all storage backends used by the
// application.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Redis optionally moves one-time codes out of the relational database.
	Redis Redis `envPrefix:"REDIS_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// Driver selects the SQL dialect: "postgres" or "sqlite".
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the data source name. An empty DSN selects in-memory stores,
	// which is only suitable for development and tests.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Redis holds connection settings for the Redis OTP store.
type Redis struct {
	// Addr is "host:port" of the Redis server. Empty disables Redis.
	// Env: STORAGE_REDIS_ADDR
	Addr string `env:"ADDR"`

	// Env: STORAGE_REDIS_PASSWORD
	Password string `env:"PASSWORD"`

	// Env: STORAGE_REDIS_DB
	DB int `env:"DB"`

	// OTPRetention is the key TTL of stored codes. It must be longer than
	// Auth.OTPTTL so that stale codes are still reported as expired.
	// Env: STORAGE_REDIS_OTP_RETENTION
	OTPRetention time.Duration `env:"OTP_RETENTION"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address of the gRPC health endpoint.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Email holds settings for the transactional email API.
type Email struct {
	// BaseURL of the email API (Postmark compatible).
	// Env: EMAIL_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// ServerToken authenticates against the email API. When empty, messages
	// are only logged.
	// Env: EMAIL_SERVER_TOKEN
	ServerToken string `env:"SERVER_TOKEN"`

	// FromEmail is the sender address.
	// Env: EMAIL_FROM
	FromEmail string `env:"FROM"`

	// Timeout bounds a single send request.
	// Env: EMAIL_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// OTPSweepInterval enables periodic removal of expired codes.
	// Zero disables the sweeper.
	// Env: WORKERS_OTP_SWEEP_INTERVAL
	OTPSweepInterval time.Duration `env:"OTP_SWEEP_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags parsed from args
//  4. JSON file (path resolved from sources 2 and 3)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
