package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists the marketplace records as JSON documents in a single
// key/value table. It implements domain.Store.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// New opens a SQLite database at the given path and configures it for use.
// It enables WAL mode and limits the pool to one connection, which is all a
// single-writer document store needs.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Migrate creates the documents table. It is idempotent and runs inside a
// transaction so a failed setup leaves no partial schema behind.
func (s *Store) Migrate(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("create documents table: %w", err)
	}

	return tx.Commit()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
