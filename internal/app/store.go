package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/genius-progression/internal/adapter/postgres"
	"github.com/heartmarshall/genius-progression/internal/adapter/postgres/flashcard"
	"github.com/heartmarshall/genius-progression/internal/adapter/postgres/hearts"
	"github.com/heartmarshall/genius-progression/internal/adapter/postgres/savedcard"
	"github.com/heartmarshall/genius-progression/internal/adapter/postgres/stats"
	"github.com/heartmarshall/genius-progression/internal/adapter/postgres/unlock"
	"github.com/heartmarshall/genius-progression/internal/adapter/sqlite"
	"github.com/heartmarshall/genius-progression/internal/config"
	"github.com/heartmarshall/genius-progression/internal/domain"
	"github.com/heartmarshall/genius-progression/internal/service/progression"
)

type savedCardLister interface {
	ListByUser(ctx context.Context, userID uuid.UUID, category string, limit int) ([]domain.SavedCard, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Store is the persistence backend selected by config.Store.Driver.
type Store struct {
	Driver     string
	Repos      progression.Repos
	SavedCards savedCardLister
	DB         pinger

	close func()
}

// Close releases the backend's connections.
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// OpenStore connects to the configured backend. The sqlite store migrates
// itself on open; postgres is migrated by cmd/migrate.
func OpenStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database, appName)
		if err != nil {
			return nil, err
		}
		saved := savedcard.New(pool)
		return &Store{
			Driver: config.DriverPostgres,
			Repos: progression.Repos{
				Stats:      stats.New(pool),
				Unlocks:    unlock.New(pool),
				Hearts:     hearts.New(pool),
				Flashcards: flashcard.New(pool),
				SavedCards: saved,
				Tx:         postgres.NewTxManager(pool),
			},
			SavedCards: saved,
			DB:         pool,
			close:      pool.Close,
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLite)
		if err != nil {
			return nil, err
		}
		saved := db.SavedCards()
		return &Store{
			Driver: config.DriverSQLite,
			Repos: progression.Repos{
				Stats:      db.Stats(),
				Unlocks:    db.Unlocks(),
				Hearts:     db.Hearts(),
				Flashcards: db.Flashcards(),
				SavedCards: saved,
				Tx:         db,
			},
			SavedCards: saved,
			DB:         db,
			close:      func() { _ = db.Close() },
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
