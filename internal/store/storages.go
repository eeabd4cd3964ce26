package store

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-auth-hub/internal/config"
	"github.com/MKhiriev/go-auth-hub/internal/logger"
	"github.com/MKhiriev/go-auth-hub/migrations"
)

// Storages bundles the repositories selected by configuration:
//   - no DSN: in-memory users and codes;
//   - DSN: SQL users and codes on postgres or sqlite, migrated on start;
//   - Redis address: codes move to Redis regardless of the DSN.
type Storages struct {
	UserRepository UserRepository
	OTPRepository  OTPRepository

	// DB is nil when running on in-memory repositories.
	DB *DB

	pingers []func(ctx context.Context) error
	closers []io.Closer
}

// NewStorages opens every configured backend. On failure, whatever was
// opened so far is closed again.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (_ *Storages, err error) {
	s := &Storages{}
	defer func() {
		if err != nil {
			_ = s.Close()
		}
	}()

	if cfg.DB.DSN == "" {
		log.Warn().Msg("no database DSN configured, using in-memory storage")
		s.UserRepository = NewMemoryUserRepository()
		s.OTPRepository = NewMemoryOTPRepository()
	} else {
		db, err := connect(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}
		s.DB = db
		s.closers = append(s.closers, db)
		s.pingers = append(s.pingers, db.PingContext)

		if err := db.Migrate(); err != nil {
			log.Err(err).Msg("error applying migrations")
			return nil, err
		}

		s.UserRepository = NewUserRepository(db, log)
		s.OTPRepository = NewOTPRepository(db, log)
	}

	if cfg.Redis.Addr != "" {
		client, err := NewRedisClient(ctx, cfg.Redis, log)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, client)
		s.pingers = append(s.pingers, func(ctx context.Context) error { return client.Ping(ctx).Err() })

		s.OTPRepository = NewRedisOTPRepository(client, cfg.Redis.OTPRetention, log)
	}

	return s, nil
}

func connect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case migrations.DialectPostgres:
		return NewConnectPostgres(ctx, cfg, log)
	case migrations.DialectSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

// Ping checks every remote backend. In-memory storage is always healthy.
func (s *Storages) Ping(ctx context.Context) error {
	var errs []error
	for _, ping := range s.pingers {
		errs = append(errs, ping(ctx))
	}
	return errors.Join(errs...)
}

// Close releases all connections in reverse order of opening.
func (s *Storages) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i].Close())
	}
	s.closers = nil
	return errors.Join(errs...)
}
