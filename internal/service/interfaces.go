package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-auth-hub/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// TokenService issues and verifies stateless session tokens.
type TokenService interface {
	// Issue signs a token for userID. A non-positive ttl selects the
	// configured default lifetime.
	Issue(ctx context.Context, userID int64, role models.Role, ttl time.Duration) (models.Token, error)

	// Verify returns the subject of tokenString. It fails with
	// [ErrExpiredToken] once the token has expired and with [ErrInvalidToken]
	// on any other signature, format or claim problem.
	Verify(ctx context.Context, tokenString string) (int64, error)
}

// OTPService manages the single pending verification code of each email.
type OTPService interface {
	// IssueCode replaces any pending code for email with a fresh one and
	// returns it. It never delivers the code.
	IssueCode(ctx context.Context, email string) (string, error)

	// ValidateCode checks code against the pending one without consuming it.
	// An expired code is deleted before [ErrOTPExpired] is returned, unless a
	// newer code has replaced it in the meantime.
	ValidateCode(ctx context.Context, email, code string) error

	// ConsumeCode deletes the pending code of email if it is still code. A
	// code issued since validation is left in place.
	ConsumeCode(ctx context.Context, email, code string) error

	// Sweep removes every code older than the configured TTL.
	Sweep(ctx context.Context) (int64, error)
}

// EmailService composes and delivers transactional emails.
type EmailService interface {
	// SendVerificationCode mails code to email, greeting the user by name.
	// Failures are reported as [ErrDeliveryFailure].
	SendVerificationCode(ctx context.Context, email, name, code string) error
}

// AuthService orchestrates the email verification, registration and login
// flows.
type AuthService interface {
	VerifyEmail(ctx context.Context, req models.EmailVerifyRequest) error
	VerifyEmailOTP(ctx context.Context, req models.EmailVerifyOTPRequest) error
	RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (models.TokenResponse, error)
	Authenticate(ctx context.Context, tokenString string) (int64, error)
	CurrentUser(ctx context.Context, userID int64) (models.User, error)
	CreateSuperuser(ctx context.Context, email, password string) (models.User, error)
}

// AppInfoService reports build information of the running server.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
