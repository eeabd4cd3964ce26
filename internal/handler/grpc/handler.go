// Package grpc exposes the standard gRPC health service. Its status follows
// the reachability of the storage backends.
package grpc

import (
	"context"
	"time"

	"github.com/MKhiriev/go-auth-hub/internal/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name reported next to the overall ("")
// status.
const ServiceName = "goauthhub.v1.AuthHub"

const pingTimeout = 2 * time.Second

// Pinger reports whether the backing storage is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler is the root gRPC transport handler.
//
// It owns a health server whose status is refreshed from the configured
// [Pinger]. A handler instance is created once at startup and shared by the
// gRPC server.
type Handler struct {
	health *health.Server
	pinger Pinger

	logger *logger.Logger
}

// NewHandler constructs a [Handler]. The health status starts as SERVING; a
// nil pinger keeps it that way.
func NewHandler(pinger Pinger, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")

	h := &Handler{
		health: health.NewServer(),
		pinger: pinger,
		logger: logger,
	}
	h.setStatus(healthpb.HealthCheckResponse_SERVING)
	return h
}

// Register attaches the health service to s.
func (h *Handler) Register(s grpc.ServiceRegistrar) {
	healthpb.RegisterHealthServer(s, h.health)
}

// Refresh pings storage once and updates the reported status.
func (h *Handler) Refresh(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	if h.pinger == nil {
		return healthpb.HealthCheckResponse_SERVING
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := h.pinger.Ping(ctx); err != nil {
		h.logger.Warn().Err(err).Msg("storage ping failed")
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.setStatus(status)
	return status
}

// Watch calls Refresh every interval until ctx ends.
func (h *Handler) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Refresh(ctx)
		}
	}
}

// Shutdown marks every service NOT_SERVING so clients stop routing here.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}

func (h *Handler) setStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
}
