package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the claim set of a session token. The subject holds the user ID
// in base 10; Role is informational.
type Claims struct {
	jwt.RegisteredClaims

	Role Role `json:"role,omitempty"`
}

// Token wraps a signed session token together with its parsed claims.
type Token struct {
	// Claims as issued or as parsed from SignedString.
	Claims Claims `json:"-"`

	// SignedString is the compact JWS representation
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`

	// UserID is the subject claim converted to int64.
	UserID int64 `json:"-"`
}

// SubjectID parses the "sub" claim as a base-10 int64.
//
// Returns an error if the subject claim is missing or not a number.
func (c Claims) SubjectID() (int64, error) {
	if c.Subject == "" {
		return 0, fmt.Errorf("empty subject claim")
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting subject claim to int64: %w", err)
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.SignedString
}
