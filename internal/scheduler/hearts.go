// Package scheduler runs periodic background jobs of the progression host.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// heartsTicker is implemented by progression.Registry.
type heartsTicker interface {
	TickHearts(ctx context.Context) int
}

// flusher is implemented by progression.Registry.
type flusher interface {
	Flush(ctx context.Context) error
}

// HeartsTicker regenerates hearts of every open tracker on a fixed interval,
// so a heart regained while the user is idle is visible without a new event.
type HeartsTicker struct {
	scheduler *gocron.Scheduler
	hearts    heartsTicker
	interval  time.Duration
	log       *slog.Logger
}

// NewHeartsTicker creates a ticker; call Start to schedule it.
func NewHeartsTicker(log *slog.Logger, hearts heartsTicker, interval time.Duration) (*HeartsTicker, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("hearts tick interval must be positive, got %s", interval)
	}

	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()

	return &HeartsTicker{
		scheduler: s,
		hearts:    hearts,
		interval:  interval,
		log:       log.With("job", "hearts_ticker"),
	}, nil
}

// Start schedules the tick job and runs the scheduler in the background.
// ctx is passed to every tick; cancel it to abort a tick in progress.
func (h *HeartsTicker) Start(ctx context.Context) error {
	_, err := h.scheduler.Every(h.interval).Do(func() {
		if n := h.hearts.TickHearts(ctx); n > 0 {
			h.log.DebugContext(ctx, "hearts regenerated", slog.Int("trackers", n))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule hearts tick: %w", err)
	}

	h.scheduler.StartAsync()
	h.log.InfoContext(ctx, "hearts ticker started", slog.Duration("interval", h.interval))
	return nil
}

// Stop stops the scheduler.
func (h *HeartsTicker) Stop() {
	h.scheduler.Stop()
}

// FlushJob periodically flushes every open tracker, retrying writes that
// failed earlier while the user stays idle.
type FlushJob struct {
	scheduler *gocron.Scheduler
	registry  flusher
	interval  time.Duration
	log       *slog.Logger
}

// NewFlushJob creates a flush job; call Start to schedule it.
func NewFlushJob(log *slog.Logger, registry flusher, interval time.Duration) (*FlushJob, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("flush interval must be positive, got %s", interval)
	}

	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()

	return &FlushJob{
		scheduler: s,
		registry:  registry,
		interval:  interval,
		log:       log.With("job", "tracker_flush"),
	}, nil
}

// Start schedules the flush job and runs the scheduler in the background.
// The first run happens one interval after Start.
func (f *FlushJob) Start(ctx context.Context) error {
	_, err := f.scheduler.Every(f.interval).WaitForSchedule().Do(func() {
		if err := f.registry.Flush(ctx); err != nil && !errors.Is(err, context.Canceled) {
			f.log.WarnContext(ctx, "flush open trackers", slog.String("error", err.Error()))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule tracker flush: %w", err)
	}

	f.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler.
func (f *FlushJob) Stop() {
	f.scheduler.Stop()
}
