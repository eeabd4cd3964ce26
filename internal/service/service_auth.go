package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-auth-hub/internal/crypto"
	"github.com/MKhiriev/go-auth-hub/internal/logger"
	"github.com/MKhiriev/go-auth-hub/internal/store"
	"github.com/MKhiriev/go-auth-hub/models"
)

const tokenTypeBearer = "Bearer"

// authService is the concrete implementation of AuthService.
// It drives the verify-email, register and login flows over the user store,
// the OTP lifecycle, the password hasher, the token service and email
// delivery. It holds no mutable state of its own.
type authService struct {
	userRepository store.UserRepository

	otpService   OTPService
	tokenService TokenService
	emailService EmailService
	hasher       crypto.PasswordHasher

	now func() time.Time

	logger *logger.Logger
}

// NewAuthService wires an AuthService from its collaborators.
func NewAuthService(
	userRepository store.UserRepository,
	otpService OTPService,
	tokenService TokenService,
	emailService EmailService,
	hasher crypto.PasswordHasher,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepository: userRepository,
		otpService:     otpService,
		tokenService:   tokenService,
		emailService:   emailService,
		hasher:         hasher,
		now:            time.Now,
		logger:         logger,
	}
}

// VerifyEmail starts registration: it issues a fresh code for req.Email and
// mails it. Delivery failures are logged by the email service and otherwise
// ignored so that the caller can retry by requesting a new code.
//
// Returns ErrDuplicateActiveUser if an active account already owns the email.
func (a *authService) VerifyEmail(ctx context.Context, req models.EmailVerifyRequest) error {
	email := normalizeEmail(req.Email)
	if email == "" {
		return ErrInvalidDataProvided
	}

	if _, err := a.findInactiveOrNone(ctx, email); err != nil {
		return err
	}

	code, err := a.otpService.IssueCode(ctx, email)
	if err != nil {
		return err
	}

	if err = a.emailService.SendVerificationCode(ctx, email, req.FirstName, code); err != nil {
		logger.FromContext(ctx).Warn().Str("email", email).Msg("verification code issued but not delivered")
	}

	return nil
}

// VerifyEmailOTP checks a received code without consuming it.
func (a *authService) VerifyEmailOTP(ctx context.Context, req models.EmailVerifyOTPRequest) error {
	email := normalizeEmail(req.Email)
	if email == "" || req.OTP == "" {
		return ErrInvalidDataProvided
	}

	if _, err := a.findInactiveOrNone(ctx, email); err != nil {
		return err
	}

	return a.otpService.ValidateCode(ctx, email, req.OTP)
}

// RegisterUser completes registration.
//
// The code is validated first, then the email is checked against active
// accounts. A new user row is created, or an inactive row left behind by an
// earlier attempt is overwritten. The stored user is active and the code is
// consumed.
//
// Returns the persisted user or:
//   - ErrInvalidDataProvided if email, password or code is empty, the role is
//     unknown, or the password is longer than bcrypt accepts.
//   - ErrOTPNotFound, ErrOTPExpired or ErrOTPMismatch from code validation.
//   - ErrDuplicateActiveUser if an active user already owns the email.
func (a *authService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	email := normalizeEmail(req.Email)
	role := req.Role.OrDefault()
	if email == "" || req.Password == "" || req.OTP == "" || !role.IsValid() {
		return models.User{}, ErrInvalidDataProvided
	}

	if err := a.otpService.ValidateCode(ctx, email, req.OTP); err != nil {
		return models.User{}, err
	}

	user, err := a.saveActiveUser(ctx, models.User{
		Email:     email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
	})
	if err != nil {
		return models.User{}, err
	}

	if err = a.otpService.ConsumeCode(ctx, email, req.OTP); err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("user registered but otp was not consumed")
	}

	return user, nil
}

// Login verifies email/password credentials and issues a session token.
// Unknown emails, inactive accounts and wrong passwords are all reported
// as ErrInvalidCredentials.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.TokenResponse, error) {
	log := logger.FromContext(ctx)

	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return models.TokenResponse{}, ErrInvalidDataProvided
	}

	user, err := a.userRepository.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrUserNotFound) {
		log.Debug().Str("email", email).Msg("login for unknown email")
		return models.TokenResponse{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.TokenResponse{}, fmt.Errorf("user search by email failed: %w", err)
	}
	if !user.IsActive {
		log.Debug().Int64("user_id", user.UserID).Msg("login for inactive user")
		return models.TokenResponse{}, ErrInvalidCredentials
	}

	ok, err := a.hasher.Verify(ctx, req.Password, user.Password)
	if err != nil {
		return models.TokenResponse{}, fmt.Errorf("password verification failed: %w", err)
	}
	if !ok {
		log.Debug().Int64("user_id", user.UserID).Msg("wrong password")
		return models.TokenResponse{}, ErrInvalidCredentials
	}

	token, err := a.tokenService.Issue(ctx, user.UserID, user.Role, 0)
	if err != nil {
		return models.TokenResponse{}, err
	}

	return models.TokenResponse{
		AccessToken: token.SignedString,
		TokenType:   tokenTypeBearer,
		Role:        user.Role,
	}, nil
}

// Authenticate resolves a bearer token to the user ID it was issued for.
func (a *authService) Authenticate(ctx context.Context, tokenString string) (int64, error) {
	return a.tokenService.Verify(ctx, tokenString)
}

func (a *authService) CurrentUser(ctx context.Context, userID int64) (models.User, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, newError(KindNotFound, "user with id %d does not exist", userID)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", userID).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user, nil
}

// CreateSuperuser stores an active admin account directly, bypassing email
// verification.
func (a *authService) CreateSuperuser(ctx context.Context, email, password string) (models.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	return a.saveActiveUser(ctx, models.User{
		Email:    email,
		Password: password,
		Role:     models.RoleAdmin,
	})
}

// saveActiveUser hashes user.Password and stores user as active, either as a
// new row or over an inactive row with the same email.
func (a *authService) saveActiveUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	existing, err := a.findInactiveOrNone(ctx, user.Email)
	if err != nil {
		return models.User{}, err
	}

	credential, err := a.hasher.Hash(ctx, user.Password)
	if errors.Is(err, crypto.ErrPasswordTooLong) {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}
	user.Password = credential
	user.IsActive = true

	if existing != nil {
		user.UserID = existing.UserID
		user.CreatedAt = existing.CreatedAt
		updated, err := a.userRepository.UpdateUser(ctx, user)
		if err != nil {
			log.Err(err).Int64("user_id", user.UserID).Msg("user update ended with error")
			return models.User{}, fmt.Errorf("user update ended with error: %w", err)
		}
		return updated, nil
	}

	user.CreatedAt = a.now().UTC()
	created, err := a.userRepository.CreateUser(ctx, user)
	if errors.Is(err, store.ErrEmailAlreadyExists) {
		return models.User{}, ErrDuplicateActiveUser
	}
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return created, nil
}

// findInactiveOrNone returns the inactive user owning email, nil when nobody
// owns it, or ErrDuplicateActiveUser when the owner is active.
func (a *authService) findInactiveOrNone(ctx context.Context, email string) (*models.User, error) {
	user, err := a.userRepository.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("email", email).Msg("user search by email failed")
		return nil, fmt.Errorf("user search by email failed: %w", err)
	}
	if user.IsActive {
		return nil, ErrDuplicateActiveUser
	}
	return &user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
