package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/ayodelep/weathercat/pkg/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const locationsSchemaFile = "migrations/000001_create_locations_table.up.sql"

// RunMigrations applies all pending schema migrations
func RunMigrations(cfg *config.DatabaseConfig) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load migration source: %w", err)
	}

	url := fmt.Sprintf(
		"pgx5://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, cfg.SSLMode,
	)

	m, err := migrate.NewWithSourceInstance("iofs", source, url)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// LocationsSchema returns the schema script that recreates the locations table.
// The catalog reset replays it after dropping the table.
func LocationsSchema() (string, error) {
	script, err := migrationsFS.ReadFile(locationsSchemaFile)
	if err != nil {
		return "", fmt.Errorf("failed to read locations schema: %w", err)
	}
	return string(script), nil
}
