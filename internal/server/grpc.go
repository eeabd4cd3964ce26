package server

import (
	"context"
	"net"
	"time"

	"github.com/MKhiriev/go-auth-hub/internal/config"
	myGRPC "github.com/MKhiriev/go-auth-hub/internal/handler/grpc"
	"github.com/MKhiriev/go-auth-hub/internal/logger"

	"google.golang.org/grpc"
)

const healthRefreshInterval = 15 * time.Second

type grpcServer struct {
	handler *myGRPC.Handler

	server          *grpc.Server
	gRPCNetListener net.Listener

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) (*grpcServer, error) {
	listener, err := net.Listen("tcp", cfg.GRPCAddress)
	if err != nil {
		logger.Err(err).Str("address", cfg.GRPCAddress).Msg("gRPC listen failed")
		return nil, err
	}

	srv := grpc.NewServer()
	handler.Register(srv)

	return &grpcServer{
		handler:         handler,
		server:          srv,
		gRPCNetListener: listener,
		logger:          logger,
	}, nil
}

func (g *grpcServer) Addr() net.Addr {
	return g.gRPCNetListener.Addr()
}

func (g *grpcServer) RunServer(ctx context.Context) error {
	g.handler.Refresh(ctx)
	go g.handler.Watch(ctx, healthRefreshInterval)

	g.logger.Info().Str("address", g.gRPCNetListener.Addr().String()).Msg("gRPC server listening")
	if err := g.server.Serve(g.gRPCNetListener); err != nil {
		g.logger.Err(err).Msg("gRPC server Serve")
		return err
	}
	return nil
}

func (g *grpcServer) Shutdown() {
	g.logger.Info().Msg("gRPC server Shutdown")
	g.handler.Shutdown()
	g.server.GracefulStop()
}
