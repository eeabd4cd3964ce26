package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/MKhiriev/go-auth-hub/internal/config"
	"github.com/MKhiriev/go-auth-hub/internal/logger"
	"github.com/jackc/pgerrcode"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStorages_Memory(t *testing.T) {
	s, err := NewStorages(context.Background(), config.Storage{}, logger.Nop())
	require.NoError(t, err)

	assert.Nil(t, s.DB)
	assert.IsType(t, &memoryUserRepository{}, s.UserRepository)
	assert.IsType(t, &memoryOTPRepository{}, s.OTPRepository)
	assert.NoError(t, s.Ping(context.Background()))
	assert.NoError(t, s.Close())
}

func TestNewStorages_SQLite(t *testing.T) {
	s := newSQLiteStorages(t)

	require.NotNil(t, s.DB)
	assert.Equal(t, "sqlite", s.DB.Dialect())
	assert.IsType(t, &userRepository{}, s.UserRepository)
	assert.IsType(t, &otpRepository{}, s.OTPRepository)
	assert.NoError(t, s.Ping(context.Background()))
}

func TestNewStorages_UnsupportedDriver(t *testing.T) {
	_, err := NewStorages(context.Background(), config.Storage{
		DB: config.DB{Driver: "oracle", DSN: "x"},
	}, logger.Nop())
	require.ErrorIs(t, err, ErrUnsupportedDriver)
}

// ── error classification ──────────────────────────────────────────────────────

func TestPostgresErrorClassifier(t *testing.T) {
	c := NewPostgresErrorClassifier()

	tests := []struct {
		name string
		err  error
		want ErrorClassification
	}{
		{"nil", nil, NonRetryable},
		{"plain error", errors.New("boom"), NonRetryable},
		{"deadlock", pgError(pgerrcode.DeadlockDetected), Retryable},
		{"connection failure", pgError(pgerrcode.ConnectionFailure), Retryable},
		{"unique violation", pgError(pgerrcode.UniqueViolation), NonRetryable},
		{"undefined table", pgError(pgerrcode.UndefinedTable), NonRetryable},
		{"unable to connect", pgError(pgerrcode.SQLClientUnableToEstablishSQLConnection), Retryable},
		{"serialization failure", pgError(pgerrcode.SerializationFailure), Retryable},
		{"starting up", pgError(pgerrcode.CannotConnectNow), Retryable},
		{"rollback on constraint", pgError(pgerrcode.TransactionIntegrityConstraintViolation), NonRetryable},
		{"wrapped deadlock", fmt.Errorf("update: %w", pgError(pgerrcode.DeadlockDetected)), Retryable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.err))
		})
	}
}

func TestSQLiteErrorClassifier(t *testing.T) {
	c := NewSQLiteErrorClassifier()

	assert.Equal(t, Retryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrBusy}))
	assert.Equal(t, Retryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrLocked}))
	assert.Equal(t, NonRetryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrConstraint}))
	assert.Equal(t, NonRetryable, c.Classify(errors.New("boom")))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(pgError(pgerrcode.UniqueViolation)))
	assert.True(t, isUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}))
	assert.False(t, isUniqueViolation(pgError(pgerrcode.NotNullViolation)))
	assert.False(t, isUniqueViolation(errors.New("duplicate")))
}
