package progression

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

const maxDoAttempts = 8

// Registry hands out one Tracker per user and keeps the most recently used
// ones open. Evicted trackers are flushed and closed; a caller holding an
// evicted tracker gets ErrTrackerClosed and Do reopens a fresh one.
// An evicted tracker whose flush fails is not closed: it is parked in
// unsaved, handed out again on the user's next Do and retried by Flush.
type Registry struct {
	svc *Service
	log *slog.Logger

	mu      sync.Mutex
	cache   *lru.Cache[uuid.UUID, *Tracker]
	unsaved map[uuid.UUID]*Tracker
}

// NewRegistry creates a registry holding at most size open trackers.
func NewRegistry(log *slog.Logger, svc *Service, size int) (*Registry, error) {
	r := &Registry{
		svc:     svc,
		log:     log.With("service", "progression_registry"),
		unsaved: make(map[uuid.UUID]*Tracker),
	}
	cache, err := lru.NewWithEvict[uuid.UUID, *Tracker](size, r.onEvict)
	if err != nil {
		return nil, fmt.Errorf("create tracker cache: %w", err)
	}
	r.cache = cache
	return r, nil
}

// Do runs fn with the user's tracker, opening it on first use.
func (r *Registry) Do(ctx context.Context, userID uuid.UUID, fn func(t *Tracker) error) error {
	var err error
	for range maxDoAttempts {
		var t *Tracker
		t, err = r.get(ctx, userID)
		if err != nil {
			return err
		}
		err = fn(t)
		if !errors.Is(err, ErrTrackerClosed) {
			return err
		}
	}
	return err
}

// TickHearts runs hearts regeneration for every open tracker and returns
// how many regained a heart.
func (r *Registry) TickHearts(ctx context.Context) int {
	r.mu.Lock()
	trackers := make([]*Tracker, 0, r.cache.Len())
	for _, k := range r.cache.Keys() {
		if t, ok := r.cache.Peek(k); ok {
			trackers = append(trackers, t)
		}
	}
	r.mu.Unlock()

	regained := 0
	for _, t := range trackers {
		changed, err := t.TickHearts(ctx)
		if errors.Is(err, ErrTrackerClosed) {
			continue
		}
		if err != nil {
			r.log.WarnContext(ctx, "hearts tick",
				slog.String("user_id", t.UserID().String()),
				slog.String("error", err.Error()),
			)
		}
		if changed {
			regained++
		}
	}
	return regained
}

// Flush writes every open tracker's dirty state without closing it and
// retries the evicted trackers that could not be saved.
func (r *Registry) Flush(ctx context.Context) error {
	errs := r.releaseUnsaved(ctx)

	r.mu.Lock()
	trackers := make([]*Tracker, 0, r.cache.Len())
	for _, k := range r.cache.Keys() {
		if t, ok := r.cache.Peek(k); ok {
			trackers = append(trackers, t)
		}
	}
	r.mu.Unlock()

	for _, t := range trackers {
		if err := t.Flush(ctx); err != nil && !errors.Is(err, ErrTrackerClosed) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Len returns the number of cached trackers, not counting unsaved ones.
func (r *Registry) Len() int {
	return r.cache.Len()
}

// Unsaved returns the number of evicted trackers still waiting for a flush.
func (r *Registry) Unsaved() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.unsaved)
}

// Close flushes and closes every tracker. Trackers that still cannot be
// saved are dropped and reported in the returned error.
func (r *Registry) Close() error {
	r.mu.Lock()
	r.cache.Purge()
	r.mu.Unlock()

	errs := r.releaseUnsaved(context.Background())

	r.mu.Lock()
	defer r.mu.Unlock()
	for id, t := range r.unsaved {
		r.log.Error("tracker state not persisted",
			slog.String("user_id", id.String()),
		)
		_ = t.Close(context.Background())
		delete(r.unsaved, id)
	}
	return errors.Join(errs...)
}

// releaseUnsaved retries parked trackers. It holds mu so get cannot hand a
// tracker out while it is being closed.
func (r *Registry) releaseUnsaved(ctx context.Context) []error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for id, t := range r.unsaved {
		if err := t.release(ctx); err != nil {
			errs = append(errs, fmt.Errorf("flush user %s: %w", id, err))
			continue
		}
		delete(r.unsaved, id)
	}
	return errs
}

func (r *Registry) get(ctx context.Context, userID uuid.UUID) (*Tracker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.cache.Get(userID); ok {
		return t, nil
	}
	if t, ok := r.unsaved[userID]; ok {
		delete(r.unsaved, userID)
		r.cache.Add(userID, t)
		return t, nil
	}

	t, err := r.svc.Open(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("open tracker: %w", err)
	}
	r.cache.Add(userID, t)
	return t, nil
}

// onEvict runs inside cache calls, which always happen with mu held.
func (r *Registry) onEvict(userID uuid.UUID, t *Tracker) {
	if err := t.release(context.Background()); err != nil {
		r.unsaved[userID] = t
		r.log.Warn("flush evicted tracker",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
	}
}
