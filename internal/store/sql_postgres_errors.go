package store

import (
	"github.com/jackc/pgerrcode"
)

// ErrorClassification tells [DB.withRetry] whether a failed statement is
// worth another attempt.
type ErrorClassification int

const (
	NonRetryable ErrorClassification = iota
	Retryable
)

// PostgresErrorClassifier classifies pgx errors by SQLSTATE.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify retries lost connections (class 08), serialization failures,
// deadlocks and a server that is still starting up. Constraint violations
// and anything not raised by PostgreSQL are final.
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	code := postgresError(err)
	switch {
	case code == "":
		return NonRetryable
	case pgerrcode.IsConnectionException(code):
		return Retryable
	}

	switch code {
	case pgerrcode.TransactionRollback,
		pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected,
		pgerrcode.CannotConnectNow:
		return Retryable
	}
	return NonRetryable
}

// isUniqueViolation reports whether err is a unique constraint failure in
// either supported dialect.
func isUniqueViolation(err error) bool {
	return postgresError(err) == pgerrcode.UniqueViolation || sqliteUniqueViolation(err)
}
