// internal/store/store.go
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/openfield/courtbook/internal/booking"
)

// executor is satisfied by both *sql.DB and *sql.Tx so every query method
// runs against whichever the Store is currently bound to.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store implements booking.Store on SQLite with hand-written queries.
type Store struct {
	db   *sql.DB
	exec executor
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, exec: db}
}

// WithTx returns a Store bound to the given transaction.
func (s *Store) WithTx(tx *sql.Tx) *Store {
	return &Store{db: s.db, exec: tx}
}

// InTx runs fn inside a transaction. SQLite serializes writers, so an
// availability check and its committing write inside one InTx call cannot
// interleave with another writer on the same court. Calls on a Store already
// bound to a transaction join it instead of nesting.
func (s *Store) InTx(ctx context.Context, fn func(booking.Store) error) error {
	if _, ok := s.exec.(*sql.Tx); ok {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(s.WithTx(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("error rolling back: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing: %w", err)
	}

	return nil
}
