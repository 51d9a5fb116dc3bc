package progression

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/genius-progression/internal/domain"
)

// ErrTrackerClosed is returned by operations on a tracker that was flushed
// and released. Callers should open a fresh tracker.
var ErrTrackerClosed = errors.New("progression: tracker closed")

// Tracker owns one user's progression state. All operations are serialized
// by mu: validate, mutate in memory, then persist the dirty parts.
type Tracker struct {
	svc    *Service
	userID uuid.UUID
	log    *slog.Logger

	mu       sync.Mutex
	closed   bool
	stats    *domain.UserStats
	unlocked map[string]domain.UnlockRecord
	order    []string
	hearts   domain.HeartsState
	session  *activeSession
	dirty    dirtyState
}

type activeSession struct {
	set       *domain.FlashcardSet
	correct   int
	incorrect int
	startedAt time.Time
}

// dirtyState tracks writes that have not reached storage yet.
type dirtyState struct {
	stats   bool
	hearts  bool
	sets    map[string]*domain.FlashcardSet
	unlocks []domain.UnlockRecord
	saved   []domain.SavedCard
}

func (d *dirtyState) any() bool {
	return d.stats || d.hearts || len(d.sets) > 0 || len(d.unlocks) > 0 || len(d.saved) > 0
}

func (d *dirtyState) parts() []string {
	var parts []string
	if d.stats {
		parts = append(parts, "stats")
	}
	if d.hearts {
		parts = append(parts, "hearts")
	}
	if len(d.sets) > 0 {
		parts = append(parts, "flashcard_sets")
	}
	if len(d.unlocks) > 0 {
		parts = append(parts, "unlocks")
	}
	if len(d.saved) > 0 {
		parts = append(parts, "saved_cards")
	}
	return parts
}

// Open loads a user's state, falling back to defaults for anything not yet
// stored, and applies pending hearts regeneration.
func (s *Service) Open(ctx context.Context, userID uuid.UUID) (*Tracker, error) {
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user_id", "required")
	}

	stats, err := s.stats.Get(ctx, userID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		stats = domain.NewUserStats(userID)
	case err != nil:
		return nil, fmt.Errorf("get stats: %w", err)
	}
	if stats.CategoriesExplored == nil {
		stats.CategoriesExplored = make(map[string]struct{})
	}
	if stats.CategoryXP == nil {
		stats.CategoryXP = make(map[string]int)
	}

	records, err := s.unlocks.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list unlocks: %w", err)
	}

	hearts, err := s.hearts.Get(ctx, userID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		hearts = &domain.HeartsState{UserID: userID, Hearts: s.cfg.MaxHearts}
	case err != nil:
		return nil, fmt.Errorf("get hearts: %w", err)
	}

	t := &Tracker{
		svc:      s,
		userID:   userID,
		log:      s.log.With(slog.String("user_id", userID.String())),
		stats:    stats,
		unlocked: make(map[string]domain.UnlockRecord, len(records)),
		hearts:   *hearts,
		dirty:    dirtyState{sets: make(map[string]*domain.FlashcardSet)},
	}
	for _, rec := range records {
		if _, dup := t.unlocked[rec.AchievementID]; dup {
			continue
		}
		t.unlocked[rec.AchievementID] = rec
		t.order = append(t.order, rec.AchievementID)
	}

	t.regenerate(s.clock.Now())

	return t, nil
}

// UserID returns the owner of the tracker.
func (t *Tracker) UserID() uuid.UUID { return t.userID }

// Flush writes every dirty part. It returns a *domain.PersistenceWarning when
// a write fails; the state stays dirty and is retried on the next operation.
func (t *Tracker) Flush(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return ErrTrackerClosed
	}
	return t.persist(ctx)
}

// Close flushes and releases the tracker. Any later operation returns
// ErrTrackerClosed. The flush error, if any, is returned but the tracker is
// closed regardless.
func (t *Tracker) Close(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	err := t.persist(ctx)
	t.closed = true
	t.session = nil
	return err
}

// release closes the tracker only if its dirty state reaches storage. On a
// failed flush the tracker stays open and the warning is returned.
func (t *Tracker) release(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	if err := t.persist(ctx); err != nil {
		return err
	}
	t.closed = true
	t.session = nil
	return nil
}

// persist writes the dirty parts in one transaction. Flags are cleared only
// after commit. Must be called with mu held.
func (t *Tracker) persist(ctx context.Context) error {
	if !t.dirty.any() {
		return nil
	}

	now := t.svc.clock.Now()
	parts := t.dirty.parts()

	err := t.svc.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if t.dirty.stats {
			stats := t.stats.Clone()
			stats.UpdatedAt = now
			if err := t.svc.stats.Save(txCtx, stats); err != nil {
				return fmt.Errorf("save stats: %w", err)
			}
		}
		if t.dirty.hearts {
			if err := t.svc.hearts.Save(txCtx, t.hearts); err != nil {
				return fmt.Errorf("save hearts: %w", err)
			}
		}
		for _, set := range t.dirty.sets {
			c := set.Clone()
			c.UpdatedAt = now
			if err := t.svc.sets.SaveSet(txCtx, c); err != nil {
				return fmt.Errorf("save set %s: %w", set.ID, err)
			}
		}
		for _, rec := range t.dirty.unlocks {
			if err := t.svc.unlocks.Create(txCtx, rec); err != nil && !errors.Is(err, domain.ErrAlreadyExists) {
				return fmt.Errorf("create unlock %s: %w", rec.AchievementID, err)
			}
		}
		for _, card := range t.dirty.saved {
			if err := t.svc.saved.Save(txCtx, card); err != nil && !errors.Is(err, domain.ErrAlreadyExists) {
				return fmt.Errorf("save card %s: %w", card.CardID, err)
			}
		}
		return nil
	})
	if err != nil {
		t.log.WarnContext(ctx, "persist progression state",
			slog.Any("parts", parts),
			slog.String("error", err.Error()),
		)
		return &domain.PersistenceWarning{Parts: parts, Err: err}
	}

	t.stats.UpdatedAt = now
	t.dirty = dirtyState{sets: make(map[string]*domain.FlashcardSet)}
	return nil
}

// lock acquires mu and reports ErrTrackerClosed for released trackers.
func (t *Tracker) lock() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrTrackerClosed
	}
	return nil
}

// ---------------------------------------------------------------------------
// Shared mutation steps (mu held)
// ---------------------------------------------------------------------------

// touchStreak advances the daily streak at most once per calendar day.
func (t *Tracker) touchStreak(now time.Time) domain.StreakChange {
	today := DateOf(now, t.svc.cfg.Location)
	if t.stats.LastActivityDate != nil && sameDay(*t.stats.LastActivityDate, today) {
		return domain.StreakUnchanged
	}

	res := UpdateStreak(t.stats.LastActivityDate, today, t.stats.CurrentStreak, t.stats.LongestStreak)
	t.stats.CurrentStreak = res.Current
	t.stats.LongestStreak = res.Longest
	t.stats.LastActivityDate = &today
	t.dirty.stats = true
	return res.Change
}

// evaluate runs one throttled evaluation pass and unlocks what it returns.
func (t *Tracker) evaluate(now time.Time) []domain.Achievement {
	ids := NextUnlocks(t.stats, t.svc.catalog.All(), t.unlockedSet(), t.svc.cfg.MaxUnlocksPerEvaluation)

	unlocked := make([]domain.Achievement, 0, len(ids))
	for _, id := range ids {
		a, ok := t.svc.catalog.Get(id)
		if !ok {
			continue
		}
		t.unlock(a, Evaluate(t.stats, a).Progress, now)
		unlocked = append(unlocked, a)
	}
	return unlocked
}

// unlock appends an unlock record and grants the achievement XP once.
func (t *Tracker) unlock(a domain.Achievement, progress int, now time.Time) {
	if _, ok := t.unlocked[a.ID]; ok {
		return
	}
	rec := domain.UnlockRecord{
		ID:               uuid.New(),
		UserID:           t.userID,
		AchievementID:    a.ID,
		UnlockedAt:       now,
		ProgressAtUnlock: progress,
	}
	t.unlocked[a.ID] = rec
	t.order = append(t.order, a.ID)
	t.dirty.unlocks = append(t.dirty.unlocks, rec)

	if a.XPReward > 0 {
		t.stats.TotalXP += a.XPReward
	}
	t.dirty.stats = true

	t.log.Info("achievement unlocked",
		slog.String("achievement_id", a.ID),
		slog.Int("xp_reward", a.XPReward),
	)
}

func (t *Tracker) unlockedSet() map[string]bool {
	set := make(map[string]bool, len(t.unlocked))
	for id := range t.unlocked {
		set[id] = true
	}
	return set
}

// reward assembles the result of an XP-granting event. xpBefore is TotalXP
// before the event.
func (t *Tracker) reward(xpBefore int, streak domain.StreakChange, achievements []domain.Achievement) domain.Reward {
	level := LevelFromXP(t.stats.TotalXP)
	return domain.Reward{
		XPGranted:       t.stats.TotalXP - xpBefore,
		TotalXP:         t.stats.TotalXP,
		Level:           level,
		LeveledUp:       level.Level > LevelFromXP(xpBefore).Level,
		NewAchievements: achievements,
		Streak:          streak,
		CurrentStreak:   t.stats.CurrentStreak,
	}
}
