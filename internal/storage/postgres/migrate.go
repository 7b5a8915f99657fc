package postgres

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrNoChange is returned by Migrate when the schema is already current.
var ErrNoChange = migrate.ErrNoChange

// Migrate applies the embedded migrations to the database at dbUrl.
func Migrate(dbUrl, migrationsTable string) error {
	const op = "storage.postgres.Migrate"

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("%s: create iofs source: %w", op, err)
	}

	if migrationsTable != "" {
		dbUrl = withQueryParam(dbUrl, "x-migrations-table", migrationsTable)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, dbUrl)
	if err != nil {
		return fmt.Errorf("%s: create migrate instance: %w", op, err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return ErrNoChange
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
