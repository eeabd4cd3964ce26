package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-auth-hub/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts.
type UserRepository interface {
	// FindUserByEmail returns [ErrUserNotFound] when no user owns email.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	// FindUserByID returns [ErrUserNotFound] when userID does not exist.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	// CreateUser inserts user and returns it with UserID set. A taken email
	// yields [ErrEmailAlreadyExists].
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// UpdateUser overwrites every mutable column of the row identified by
	// user.UserID.
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
}

// OTPRepository persists at most one pending verification code per email.
type OTPRepository interface {
	// FindOTPByEmail returns [ErrOTPNotFound] when no code is stored.
	FindOTPByEmail(ctx context.Context, email string) (models.OneTimeCode, error)
	// ReplaceOTP atomically removes any code stored for otp.Email and stores
	// otp in its place.
	ReplaceOTP(ctx context.Context, otp models.OneTimeCode) error
	// DeleteOTPByEmail is a no-op when nothing is stored.
	DeleteOTPByEmail(ctx context.Context, email string) error
	// DeleteOTPIfMatch removes the code stored for otp.Email only while it is
	// still otp (same code and created_at), so a code issued after otp was
	// read survives. It reports whether anything was removed.
	DeleteOTPIfMatch(ctx context.Context, otp models.OneTimeCode) (bool, error)
	// DeleteExpiredOTPs removes codes created before cutoff and reports how
	// many were removed.
	DeleteExpiredOTPs(ctx context.Context, cutoff time.Time) (int64, error)
}

// ErrorClassificator decides whether a failed database call may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
