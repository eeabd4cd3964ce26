package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// validBase returns defaults plus the one field that has no default.
func validBase() *StructuredConfig {
	cfg := defaultConfig()
	cfg.Auth.TokenSignKey = "secret"
	return cfg
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilderFailsValidation verifies that a builder without any
// source produces a config that is rejected for lacking a sign key.
func TestBuild_EmptyBuilderFailsValidation(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	assert.Nil(t, cfg)
	require.ErrorIs(t, err, ErrInvalidAuthConfigs)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterSourceOverrides verifies that non-zero fields of a later
// config replace those of an earlier one while zero fields are left alone.
func TestBuild_LaterSourceOverrides(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		validBase(),
		&StructuredConfig{App: App{Version: "1.0.0"}, Auth: Auth{TokenIssuer: "issuer"}},
		&StructuredConfig{Auth: Auth{TokenIssuer: "override"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, "override", cfg.Auth.TokenIssuer)
	assert.Equal(t, "secret", cfg.Auth.TokenSignKey)
	assert.Equal(t, DefaultOTPTTL, cfg.Auth.OTPTTL)
}

// ── withDefaults ──────────────────────────────────────────────────────────────

func TestWithDefaults_AppendsDefaults(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	require.Len(t, b.configs, 1)

	d := b.configs[0]
	assert.Equal(t, DefaultTokenSigningMethod, d.Auth.TokenSigningMethod)
	assert.Equal(t, DefaultTokenDuration, d.Auth.TokenDuration)
	assert.Equal(t, DefaultOTPTTL, d.Auth.OTPTTL)
	assert.Equal(t, DefaultOTPLength, d.Auth.OTPLength)
	assert.Equal(t, DefaultOTPAlphabet, d.Auth.OTPAlphabet)
	assert.Equal(t, DefaultLogLevel, d.App.LogLevel)
	assert.Empty(t, d.Auth.TokenSignKey)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

// TestWithEnv_AppendsEnvConfig verifies that environment variables are read
// into a new config entry.
func TestWithEnv_AppendsEnvConfig(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("APP_VERSION", "3.0.0")

	b := newConfigBuilder().withEnv()
	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "3.0.0", b.configs[0].App.Version)
}

// TestWithEnv_InvalidValueSetsError verifies that a malformed variable is
// recorded on the builder instead of appending a config.
func TestWithEnv_InvalidValueSetsError(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("AUTH_TOKEN_DURATION", "forever")

	b := newConfigBuilder().withEnv()
	require.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

func TestWithFlags_AppendsFlagConfig(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-token-issuer", "flags"})
	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "flags", b.configs[0].Auth.TokenIssuer)
}

func TestWithFlags_BadFlagSetsError(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-bogus"})
	require.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_NoPath verifies that nothing is appended when no source names
// a JSON file.
func TestWithJSON_NoPath(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})

	b.withJSON()
	require.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

// TestWithJSON_UsesLastPath verifies that the path from the latest source is
// the one that gets parsed.
func TestWithJSON_UsesLastPath(t *testing.T) {
	first := writeTempJSONConfig(t, map[string]any{"app": map[string]any{"version": "first"}})
	second := writeTempJSONConfig(t, map[string]any{"app": map[string]any{"version": "second"}})

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: first},
		&StructuredConfig{JSONFilePath: second},
	)

	b.withJSON()
	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "second", b.configs[2].App.Version)
}

func TestWithJSON_MissingFileSetsError(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/nonexistent/config.json"})

	b.withJSON()
	require.Error(t, b.err)
	assert.Len(t, b.configs, 1)
}

// ── GetStructuredConfig ───────────────────────────────────────────────────────

// TestGetStructuredConfig_Priority verifies the documented source order:
// defaults < env < flags < json.
func TestGetStructuredConfig_Priority(t *testing.T) {
	clearEnvVars(t)

	path := writeTempJSONConfig(t, map[string]any{
		"auth": map[string]any{"token_issuer": "from-json"},
	})

	t.Setenv("AUTH_TOKEN_SIGN_KEY", "env-key")
	t.Setenv("AUTH_TOKEN_ISSUER", "from-env")
	t.Setenv("AUTH_OTP_TTL", "2m")
	t.Setenv("CONFIG", path)

	cfg, err := GetStructuredConfig([]string{"-otp-ttl", "3m", "-token-issuer", "from-flags"})
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.Auth.TokenSignKey)
	assert.Equal(t, 3*time.Minute, cfg.Auth.OTPTTL)
	assert.Equal(t, "from-json", cfg.Auth.TokenIssuer)
	assert.Equal(t, DefaultTokenDuration, cfg.Auth.TokenDuration)
	assert.Equal(t, DefaultTokenSigningMethod, cfg.Auth.TokenSigningMethod)
}

func TestGetStructuredConfig_MissingSignKey(t *testing.T) {
	clearEnvVars(t)

	cfg, err := GetStructuredConfig(nil)
	assert.Nil(t, cfg)
	require.ErrorIs(t, err, ErrInvalidAuthConfigs)
}
