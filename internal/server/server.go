package server

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-auth-hub/internal/config"
	"github.com/MKhiriev/go-auth-hub/internal/handler"
	"github.com/MKhiriev/go-auth-hub/internal/logger"
	"golang.org/x/sync/errgroup"
)

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer
	logger     *logger.Logger
}

// NewServer binds a listener for every transport with a handler. Listening
// happens here so that address errors surface before RunServer.
func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{logger: logger}

	if handlers.HTTP != nil {
		srv, err := newHTTPServer(handlers.HTTP, cfg, logger)
		if err != nil {
			return nil, err
		}
		servers.httpServer = srv
	}
	if handlers.GRPC != nil {
		srv, err := newGRPCServer(handlers.GRPC, cfg, logger)
		if err != nil {
			servers.Shutdown()
			return nil, err
		}
		servers.gRPCServer = srv
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

// RunServer serves every transport until ctx is done or one of them fails,
// then shuts all of them down.
func (s *server) RunServer(ctx context.Context) error {
	if s.httpServer == nil && s.gRPCServer == nil {
		return errors.New("no servers to run")
	}

	g, gctx := errgroup.WithContext(ctx)

	// stop everything once the caller cancels or a transport fails
	g.Go(func() error {
		<-gctx.Done()
		s.Shutdown()
		return nil
	})

	if s.httpServer != nil {
		s.logger.Info().Msg("Launching HTTP server")
		g.Go(s.httpServer.RunServer)
	}
	if s.gRPCServer != nil {
		s.logger.Info().Msg("Launching gRPC server")
		g.Go(func() error { return s.gRPCServer.RunServer(gctx) })
	}

	err := g.Wait()
	s.logger.Info().Msg("server Shutdown gracefully")
	return err
}

func (s *server) Shutdown() {
	// finish HTTP server
	if s.httpServer != nil {
		s.httpServer.Shutdown()
	}

	// finish gRPC server
	if s.gRPCServer != nil {
		s.gRPCServer.Shutdown()
	}
}
