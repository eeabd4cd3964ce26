package service

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure. Transport layers translate kinds to
// their own status codes; the service layer never knows about them.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidCredentials
	KindExpiredToken
	KindInvalidToken
	KindOTPNotFound
	KindOTPExpired
	KindOTPMismatch
	KindDuplicateActiveUser
	KindNotFound
	KindDeliveryFailure
)

var kindNames = map[Kind]string{
	KindUnknown:             "unknown",
	KindInvalidCredentials:  "invalid credentials",
	KindExpiredToken:        "expired token",
	KindInvalidToken:        "invalid token",
	KindOTPNotFound:         "otp not found",
	KindOTPExpired:          "otp expired",
	KindOTPMismatch:         "otp mismatch",
	KindDuplicateActiveUser: "duplicate active user",
	KindNotFound:            "not found",
	KindDeliveryFailure:     "delivery failure",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a typed service failure. Two errors are equal under [errors.Is]
// when their kinds match, so a detailed error still matches the sentinel of
// its kind.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// newError builds an [Error] of kind with a formatted message.
func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind of the first [Error] in err's chain.
// Errors outside the taxonomy report [KindUnknown].
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

var (
	ErrInvalidCredentials  = &Error{Kind: KindInvalidCredentials, Msg: "invalid credentials"}
	ErrExpiredToken        = &Error{Kind: KindExpiredToken, Msg: "token has expired"}
	ErrInvalidToken        = &Error{Kind: KindInvalidToken, Msg: "token is invalid"}
	ErrOTPNotFound         = &Error{Kind: KindOTPNotFound, Msg: "otp not found"}
	ErrOTPExpired          = &Error{Kind: KindOTPExpired, Msg: "otp expired"}
	ErrOTPMismatch         = &Error{Kind: KindOTPMismatch, Msg: "invalid otp"}
	ErrDuplicateActiveUser = &Error{Kind: KindDuplicateActiveUser, Msg: "a user with this email already exists"}
	ErrNotFound            = &Error{Kind: KindNotFound, Msg: "not found"}
	ErrDeliveryFailure     = &Error{Kind: KindDeliveryFailure, Msg: "email delivery failed"}
)

var (
	ErrInvalidDataProvided   = errors.New("invalid data provided")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
