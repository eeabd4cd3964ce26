package handler

import (
	"github.com/MKhiriev/go-auth-hub/internal/config"
	"github.com/MKhiriev/go-auth-hub/internal/handler/grpc"
	"github.com/MKhiriev/go-auth-hub/internal/handler/http"
	"github.com/MKhiriev/go-auth-hub/internal/logger"
	"github.com/MKhiriev/go-auth-hub/internal/registry"
	"github.com/MKhiriev/go-auth-hub/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

func NewHandlers(services *service.Services, registry *registry.Registry, pinger grpc.Pinger, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, registry, cfg, logger)
	}
	if cfg.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(pinger, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
