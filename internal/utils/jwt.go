package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-auth-hub/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrJWTExpired marks a well-formed, correctly signed token whose "exp"
	// claim has passed.
	ErrJWTExpired = errors.New("token has expired")

	// ErrJWTInvalid covers every other rejection: bad signature, foreign
	// algorithm, malformed payload, wrong issuer or missing subject.
	ErrJWTInvalid = errors.New("token is invalid")

	// ErrJWTMissingSubject is wrapped together with ErrJWTInvalid.
	ErrJWTMissingSubject = errors.New("token is missing user id")
)

// JWTParams is the process-wide signing configuration.
type JWTParams struct {
	// Issuer is written to and required in the "iss" claim.
	Issuer string
	// SignKey is the HMAC secret.
	SignKey string
	// Method is the JWT "alg" name, one of HS256, HS384, HS512.
	Method string
	// Now overrides the clock. Nil means time.Now.
	Now func() time.Time
}

func (p JWTParams) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// signingMethod resolves p.Method, accepting the HMAC family only.
func (p JWTParams) signingMethod() (*jwt.SigningMethodHMAC, error) {
	method, ok := jwt.GetSigningMethod(p.Method).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing method %q", p.Method)
	}
	return method, nil
}

// GenerateJWTToken creates a signed JWT for userID.
//
// The token includes the following claims:
//   - Issuer    (iss): p.Issuer
//   - Subject   (sub): the user ID encoded as a string
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus ttl
//   - role:            the user's role, informational only
//
// Returns an error if the params are incomplete or ttl is not positive.
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken(params, 42, models.RoleUser, time.Hour)
func GenerateJWTToken(p JWTParams, userID int64, role models.Role, ttl time.Duration) (models.Token, error) {
	if p.Issuer == "" || p.SignKey == "" || ttl <= 0 {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	method, err := p.signingMethod()
	if err != nil {
		return models.Token{}, err
	}

	now := p.now()
	claims := models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    p.Issuer,
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role: role,
	}

	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(p.SignKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{Claims: claims, SignedString: signed, UserID: userID}, nil
}

// ValidateAndParseJWTToken verifies tokenString and extracts its claims.
//
// Validation includes signature verification with p.SignKey, an exact match
// of the "alg" header against p.Method, the issuer check, a mandatory "exp"
// claim compared against p.Now, and a numeric subject.
//
// Every failure wraps either ErrJWTExpired or ErrJWTInvalid. Expiry is only
// reported for tokens whose signature is valid.
func ValidateAndParseJWTToken(p JWTParams, tokenString string) (models.Token, error) {
	method, err := p.signingMethod()
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrJWTInvalid, err)
	}

	claims := &models.Claims{}
	_, err = jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(p.SignKey), nil
	},
		jwt.WithValidMethods([]string{method.Alg()}),
		jwt.WithIssuer(p.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return models.Token{}, fmt.Errorf("%w: %w", ErrJWTExpired, err)
	case err != nil:
		return models.Token{}, fmt.Errorf("%w: %w", ErrJWTInvalid, err)
	}

	userID, err := claims.SubjectID()
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w: %w", ErrJWTInvalid, ErrJWTMissingSubject, err)
	}

	return models.Token{Claims: *claims, SignedString: tokenString, UserID: userID}, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
