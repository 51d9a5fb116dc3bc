// Command migrate applies pending schema migrations to the configured store.
// The postgres schema must be migrated before the server starts; the sqlite
// store also migrates itself on open.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/genius-progression/internal/adapter/postgres"
	"github.com/heartmarshall/genius-progression/internal/adapter/sqlite"
	"github.com/heartmarshall/genius-progression/internal/app"
	"github.com/heartmarshall/genius-progression/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var applied int
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		applied, err = postgres.Migrate(ctx, cfg.Database.DSN)
	case config.DriverSQLite:
		// Open applies pending migrations itself.
		var store *sqlite.Store
		if store, err = sqlite.Open(ctx, cfg.SQLite); err == nil {
			err = store.Close()
		}
	}
	if err != nil {
		logger.Error("migrate failed",
			slog.String("store", cfg.Store.Driver),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	if cfg.Store.Driver == config.DriverSQLite {
		logger.Info("sqlite schema is current", slog.String("path", cfg.SQLite.Path))
		return
	}
	logger.Info("migrations applied",
		slog.String("store", cfg.Store.Driver),
		slog.Int("applied", applied),
	)
}
