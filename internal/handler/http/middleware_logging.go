package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-auth-hub/internal/logger"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// withLogging writes one access line per request after the handler returns.
// The line goes through the request's trace logger, so it carries the same
// trace_id as everything the handler logged. Its level follows the status
// class.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lw := &responseWriter{ResponseWriter: w}

		next.ServeHTTP(lw, r)

		status := lw.status
		if status == 0 {
			// net/http answers 200 for a handler that wrote nothing
			status = http.StatusOK
		}

		event := logger.FromRequest(r).WithLevel(accessLevel(status))
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			event = event.Str("route", rctx.RoutePattern())
		}
		event.
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Int("status", status).
			Int("size", lw.size).
			Dur("duration", time.Since(start)).
			Send()
	})
}

func accessLevel(status int) zerolog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zerolog.ErrorLevel
	case status >= http.StatusBadRequest:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}
