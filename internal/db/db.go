// internal/db/db.go
package db

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"

	"github.com/openfield/courtbook/internal/config"
	"github.com/openfield/courtbook/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type DB struct {
	*sql.DB
	Store *store.Store
}

// New opens a SQLite database for the given data source name, ensures the
// DSN enables foreign keys and a busy timeout, applies embedded migrations,
// and returns a DB with the query store bound to the connection.
func New(dataSourceName string) (*DB, error) {
	dataSourceName = ensureConnParamsDSN(dataSourceName)
	sqlDB, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := runMigrations(sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("error running migrations: %w", err)
	}

	return &DB{
		DB:    sqlDB,
		Store: store.NewStore(sqlDB),
	}, nil
}

// NewFromConfig creates a DB from cfg, creating the database directory if
// needed. Returns an error if the driver is unsupported, if opening the
// database fails, or if migrations cannot be applied.
func NewFromConfig(cfg *config.Config) (*DB, error) {
	if cfg.Database.Driver != "sqlite" {
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Filename), 0755); err != nil {
		return nil, fmt.Errorf("error creating database directory: %w", err)
	}
	return New(cfg.Database.Filename)
}

// ensureConnParamsDSN adds the `_fk=1` and `_busy_timeout` query parameters
// if missing. The busy timeout makes a writer blocked on SQLite's single
// write lock wait instead of failing with SQLITE_BUSY.
func ensureConnParamsDSN(dataSourceName string) string {
	for _, param := range []string{"_fk=1", "_busy_timeout=5000"} {
		key := param[:strings.Index(param, "=")+1]
		if strings.Contains(dataSourceName, key) {
			continue
		}
		if strings.Contains(dataSourceName, "?") {
			dataSourceName += "&" + param
		} else {
			dataSourceName += "?" + param
		}
	}
	return dataSourceName
}

// runMigrations applies the embedded SQL migrations to the provided database.
// A "no change" result is not treated as an error.
func runMigrations(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("could not create migrate driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("could not create source: %w", err)
	}

	m, err := migrate.NewWithInstance(
		"iofs", source,
		"sqlite3", driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}
