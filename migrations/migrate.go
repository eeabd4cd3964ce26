// Package migrations embeds the goose SQL migrations of every supported
// database dialect and applies them at startup.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

// Dialect names accepted by Migrate. They match config.DB.Driver.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// gooseDialects maps a dialect to the goose dialect name and the embedded
// directory holding its migrations.
var gooseDialects = map[string]struct{ goose, dir string }{
	DialectPostgres: {goose: "pgx", dir: "postgres"},
	DialectSQLite:   {goose: "sqlite3", dir: "sqlite"},
}

// Migrate brings db up to the latest schema version for dialect.
func Migrate(db *sql.DB, dialect string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	d, ok := gooseDialects[dialect]
	if !ok {
		return fmt.Errorf("migration error: unsupported dialect %q", dialect)
	}

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(d.goose); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, d.dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
