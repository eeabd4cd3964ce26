package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/MKhiriev/go-auth-hub/internal/config"
	myHTTP "github.com/MKhiriev/go-auth-hub/internal/handler/http"
	"github.com/MKhiriev/go-auth-hub/internal/logger"
)

const shutdownTimeout = 10 * time.Second

type httpServer struct {
	server   *http.Server
	listener net.Listener

	logger *logger.Logger
}

func newHTTPServer(handler *myHTTP.Handler, cfg config.Server, logger *logger.Logger) (*httpServer, error) {
	listener, err := net.Listen("tcp", cfg.HTTPAddress)
	if err != nil {
		logger.Err(err).Str("address", cfg.HTTPAddress).Msg("HTTP listen failed")
		return nil, err
	}

	srv := &http.Server{
		Handler:           handler.Init(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	srv.RegisterOnShutdown(handler.CloseConnections)

	return &httpServer{
		server:   srv,
		listener: listener,
		logger:   logger,
	}, nil
}

func (h *httpServer) Addr() net.Addr {
	return h.listener.Addr()
}

func (h *httpServer) RunServer() error {
	h.logger.Info().Str("address", h.listener.Addr().String()).Msg("HTTP server listening")
	if err := h.server.Serve(h.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		h.logger.Err(err).Msg("HTTP server Serve")
		return err
	}
	return nil
}

func (h *httpServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := h.server.Shutdown(ctx); err != nil {
		h.logger.Err(err).Msg("HTTP server Shutdown")
	}
}
