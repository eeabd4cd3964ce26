package http

import (
	"time"

	"github.com/MKhiriev/go-auth-hub/internal/config"
	"github.com/MKhiriev/go-auth-hub/internal/logger"
	"github.com/MKhiriev/go-auth-hub/internal/registry"
	"github.com/MKhiriev/go-auth-hub/internal/service"
)

type Handler struct {
	services *service.Services
	registry *registry.Registry

	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, registry *registry.Registry, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = config.DefaultRequestTimeout
	}

	return &Handler{
		services:       services,
		registry:       registry,
		requestTimeout: timeout,
		logger:         logger,
	}
}

// CloseConnections drops every live chat connection. Hijacked websocket
// connections are not tracked by http.Server, so shutdown has to close them.
func (h *Handler) CloseConnections() {
	h.registry.CloseAll(registry.ReasonShutdown)
}
