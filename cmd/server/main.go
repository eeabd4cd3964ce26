package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-auth-hub/internal/adapter"
	"github.com/MKhiriev/go-auth-hub/internal/config"
	"github.com/MKhiriev/go-auth-hub/internal/handler"
	"github.com/MKhiriev/go-auth-hub/internal/logger"
	"github.com/MKhiriev/go-auth-hub/internal/registry"
	"github.com/MKhiriev/go-auth-hub/internal/server"
	"github.com/MKhiriev/go-auth-hub/internal/service"
	"github.com/MKhiriev/go-auth-hub/internal/store"
	"github.com/MKhiriev/go-auth-hub/internal/workers"
)

const defaultHTTPAddress = ":8080"

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("go-auth-hub")
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	if cfg.App.Version == "" {
		cfg.App.Version = buildVersion
	}
	if cfg.Server.HTTPAddress == "" && cfg.Server.GRPCAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	services, err := service.NewServices(storages, adapter.NewEmailSender(cfg.Email, log), *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, registry.New(log), storages, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	go workers.NewWorkers(services, cfg.Workers, log).Run(ctx)

	if err = srv.RunServer(ctx); err != nil {
		log.Err(err).Msg("server stopped with error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
