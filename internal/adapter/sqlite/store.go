// Package sqlite implements every progression repository on an embedded
// SQLite database, for single-device installs that run without PostgreSQL.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/heartmarshall/genius-progression/internal/config"
	"github.com/heartmarshall/genius-progression/internal/domain"
	"github.com/heartmarshall/genius-progression/migrations"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Store owns the SQLite connection and hands out repositories sharing it.
type Store struct {
	db *sqlx.DB
}

// Open connects to the database at cfg.Path, creating the file and its
// directory if needed, and applies pending migrations.
func Open(ctx context.Context, cfg config.SQLiteConfig) (*Store, error) {
	if cfg.Path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=%d&_foreign_keys=on", cfg.Path, cfg.BusyTimeout.Milliseconds())
	db, err := sqlx.ConnectContext(ctx, "sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}

	// SQLite has a single writer; one connection also keeps ":memory:" alive.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &Store{db: db}
	if _, err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Migrate applies pending goose migrations and returns how many ran.
func (s *Store) Migrate(ctx context.Context) (int, error) {
	provider, err := goose.NewProvider(goose.DialectSQLite3, s.db.DB, migrations.SQLite())
	if err != nil {
		return 0, fmt.Errorf("goose new provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("goose up: %w", err)
	}

	return len(results), nil
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Stats returns the user stats repository.
func (s *Store) Stats() *StatsRepo { return &StatsRepo{store: s} }

// Unlocks returns the achievement unlock repository.
func (s *Store) Unlocks() *UnlockRepo { return &UnlockRepo{store: s} }

// Hearts returns the hearts repository.
func (s *Store) Hearts() *HeartsRepo { return &HeartsRepo{store: s} }

// Flashcards returns the flashcard set repository.
func (s *Store) Flashcards() *FlashcardRepo { return &FlashcardRepo{store: s} }

// SavedCards returns the saved card repository.
func (s *Store) SavedCards() *SavedCardRepo { return &SavedCardRepo{store: s} }

// ---------------------------------------------------------------------------
// Transactions
// ---------------------------------------------------------------------------

type txCtxKey struct{}

// RunInTx executes fn within a transaction carried by the context.
// Nested calls are NOT supported: with a single connection they would block.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(context.WithValue(ctx, txCtxKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %w (original error: %v)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// q returns the transaction from ctx if present, otherwise the database.
func (s *Store) q(ctx context.Context) sqlx.ExtContext {
	if tx, ok := ctx.Value(txCtxKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return s.db
}

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

// mapError converts database/sql and go-sqlite3 errors to domain errors.
func mapError(err error, entity string, key string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, key, err)
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, key, domain.ErrNotFound)
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%s %s: %w", entity, key, domain.ErrAlreadyExists)
		case sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%s %s: %w", entity, key, domain.ErrNotFound)
		case sqlite3.ErrConstraintCheck:
			return fmt.Errorf("%s %s: %w", entity, key, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, key, err)
}
