package adapter

import "errors"

var (
	ErrNotConfigured = errors.New("email sender not configured")
	ErrUnauthorized  = errors.New("email provider rejected credentials")
	ErrRejected      = errors.New("email provider rejected message")
	ErrUnavailable   = errors.New("email provider unavailable")
)
