// Command admin runs maintenance tasks against the auth hub storage.
//
// Usage:
//
//	admin createsuperuser -email admin@example.com -password secret [-- server flags]
//
// Everything after "--" is read as the server's configuration flags.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/MKhiriev/go-auth-hub/internal/adapter"
	"github.com/MKhiriev/go-auth-hub/internal/config"
	"github.com/MKhiriev/go-auth-hub/internal/logger"
	"github.com/MKhiriev/go-auth-hub/internal/service"
	"github.com/MKhiriev/go-auth-hub/internal/store"
)

var errUsage = errors.New("usage: admin createsuperuser -email <email> -password <password> [-- server flags]")

func main() {
	log := logger.NewLogger("go-auth-hub-admin")

	if err := run(context.Background(), os.Args[1:], log); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, log *logger.Logger) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "createsuperuser":
		return createSuperuser(ctx, args[1:], log)
	default:
		return fmt.Errorf("unknown command %q\n%w", args[0], errUsage)
	}
}

func createSuperuser(ctx context.Context, args []string, log *logger.Logger) error {
	fs := flag.NewFlagSet("createsuperuser", flag.ContinueOnError)
	email := fs.String("email", "", "admin email")
	password := fs.String("password", "", "admin password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return errUsage
	}

	cfg, err := config.GetStructuredConfig(fs.Args())
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}
	if cfg.App.Version == "" {
		cfg.App.Version = "admin"
	}

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("error creating storages: %w", err)
	}
	defer storages.Close()

	services, err := service.NewServices(storages, adapter.NewLogSender(log), *cfg, log)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}

	user, err := services.AuthService.CreateSuperuser(ctx, *email, *password)
	if err != nil {
		return fmt.Errorf("error creating superuser: %w", err)
	}

	fmt.Printf("superuser %s created with id %d\n", user.Email, user.UserID)
	return nil
}
