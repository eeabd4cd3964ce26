package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-auth-hub/internal/service"
	"github.com/MKhiriev/go-auth-hub/internal/store"
)

var kindStatusMap = map[service.Kind]int{
	service.KindInvalidCredentials:  http.StatusUnauthorized,
	service.KindExpiredToken:        http.StatusUnauthorized,
	service.KindInvalidToken:        http.StatusUnauthorized,
	service.KindOTPNotFound:         http.StatusBadRequest,
	service.KindOTPExpired:          http.StatusBadRequest,
	service.KindOTPMismatch:         http.StatusBadRequest,
	service.KindDuplicateActiveUser: http.StatusBadRequest,
	service.KindNotFound:            http.StatusNotFound,
	service.KindDeliveryFailure:     http.StatusBadGateway,
}

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:   http.StatusBadRequest,
	service.ErrVersionIsNotSpecified: http.StatusInternalServerError,

	ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	ErrInvalidJSON:                http.StatusBadRequest,
	ErrInvalidForm:                http.StatusBadRequest,
	ErrEmptyClientID:              http.StatusBadRequest,

	store.ErrEmailAlreadyExists: http.StatusConflict,
	store.ErrUserNotFound:       http.StatusNotFound,

	context.DeadlineExceeded: http.StatusGatewayTimeout,
}

// statusFromError maps err to the HTTP status reported to the client.
// Typed service errors are resolved by kind; everything unknown is a 500.
func statusFromError(err error) int {
	if kind := service.KindOf(err); kind != service.KindUnknown {
		if status, ok := kindStatusMap[kind]; ok {
			return status
		}
	}
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError returns the client-facing message for err. Internal
// failures never leak their details.
func messageFromError(err error, status int) string {
	if status >= http.StatusInternalServerError {
		return http.StatusText(status)
	}

	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		return svcErr.Msg
	}
	for target := range errorStatusMap {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return http.StatusText(status)
}
