package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/genius-progression/internal/config"
	"github.com/heartmarshall/genius-progression/internal/scheduler"
	"github.com/heartmarshall/genius-progression/internal/service/progression"
	"github.com/heartmarshall/genius-progression/internal/transport/middleware"
	"github.com/heartmarshall/genius-progression/internal/transport/rest"
)

const rateLimiterCleanupInterval = time.Minute

// Run is the application entry point. It loads configuration, opens the
// store, starts the background jobs and serves HTTP until ctx is cancelled.
// On shutdown open trackers are flushed before the store is closed.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("store", cfg.Store.Driver),
	)

	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	svc, err := progression.NewService(logger, store.Repos, progression.SystemClock{}, cfg.Domain(), nil)
	if err != nil {
		return err
	}

	registry, err := progression.NewRegistry(logger, svc, cfg.Progression.TrackerCacheSize)
	if err != nil {
		return err
	}
	defer func() {
		if err := registry.Close(); err != nil {
			logger.Error("flush trackers", slog.String("error", err.Error()))
			return
		}
		logger.Info("trackers flushed")
	}()

	ticker, err := scheduler.NewHeartsTicker(logger, registry, cfg.Hearts.TickInterval)
	if err != nil {
		return err
	}
	if err := ticker.Start(ctx); err != nil {
		return err
	}
	defer ticker.Stop()

	flushJob, err := scheduler.NewFlushJob(logger, registry, cfg.Progression.FlushInterval)
	if err != nil {
		return err
	}
	if err := flushJob.Start(ctx); err != nil {
		return err
	}
	defer flushJob.Stop()

	limiter := middleware.NewRateLimiter(rateLimiterCleanupInterval)
	defer limiter.Stop()

	handler := newRouter(
		logger,
		cfg,
		rest.NewHealthHandler(store.DB, store.Driver, BuildVersion()),
		rest.NewProgressionHandler(registry, store.SavedCards, logger),
		limiter,
	)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return serve(ctx, logger, srv, cfg.Server.ShutdownTimeout)
}

// serve runs srv until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, logger *slog.Logger, srv *http.Server, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	}
}
