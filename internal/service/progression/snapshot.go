package progression

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/genius-progression/internal/domain"
)

// SnapshotVersion is the current export format. Version 0 is the unversioned
// format written before hearts and per-category XP were exported.
const SnapshotVersion = 1

// Snapshot is the portable form of one user's progression state.
type Snapshot struct {
	Version    int              `json:"version"`
	UserID     uuid.UUID        `json:"user_id"`
	ExportedAt time.Time        `json:"exported_at"`
	Stats      snapshotStats    `json:"stats"`
	Unlocks    []snapshotUnlock `json:"unlocks"`
	Hearts     *snapshotHearts  `json:"hearts,omitempty"`
}

type snapshotStats struct {
	TotalXP            int            `json:"total_xp"`
	CurrentStreak      int            `json:"current_streak"`
	LongestStreak      int            `json:"longest_streak"`
	LastActivityDate   string         `json:"last_activity_date,omitempty"`
	TotalCardsViewed   int            `json:"total_cards_viewed"`
	TotalCardsSaved    int            `json:"total_cards_saved"`
	CategoriesExplored []string       `json:"categories_explored"`
	CategoryXP         map[string]int `json:"category_xp,omitempty"`
	TotalSessions      int            `json:"total_sessions"`
	PerfectSessions    int            `json:"perfect_sessions"`
}

type snapshotUnlock struct {
	AchievementID    string    `json:"achievement_id"`
	UnlockedAt       time.Time `json:"unlocked_at"`
	ProgressAtUnlock int       `json:"progress_at_unlock"`
}

type snapshotHearts struct {
	Hearts     int        `json:"hearts"`
	LastLostAt *time.Time `json:"last_lost_at,omitempty"`
	IsPremium  bool       `json:"is_premium"`
}

const dateLayout = "2006-01-02"

// ImportResult reports what an import changed.
type ImportResult struct {
	Unlocked int
	Skipped  int
	Warning  error
}

// Export serializes the user's state as a versioned JSON snapshot.
func (t *Tracker) Export() ([]byte, error) {
	if err := t.lock(); err != nil {
		return nil, err
	}
	defer t.mu.Unlock()

	snap := Snapshot{
		Version:    SnapshotVersion,
		UserID:     t.userID,
		ExportedAt: t.svc.clock.Now().UTC(),
		Stats: snapshotStats{
			TotalXP:            t.stats.TotalXP,
			CurrentStreak:      t.stats.CurrentStreak,
			LongestStreak:      t.stats.LongestStreak,
			TotalCardsViewed:   t.stats.TotalCardsViewed,
			TotalCardsSaved:    t.stats.TotalCardsSaved,
			CategoriesExplored: t.stats.Categories(),
			CategoryXP:         t.stats.CategoryXP,
			TotalSessions:      t.stats.TotalSessions,
			PerfectSessions:    t.stats.PerfectSessions,
		},
		Unlocks: make([]snapshotUnlock, 0, len(t.order)),
		Hearts: &snapshotHearts{
			Hearts:     t.hearts.Hearts,
			LastLostAt: t.hearts.LastLostAt,
			IsPremium:  t.hearts.IsPremium,
		},
	}
	if t.stats.LastActivityDate != nil {
		snap.Stats.LastActivityDate = t.stats.LastActivityDate.Format(dateLayout)
	}
	for _, id := range t.order {
		rec := t.unlocked[id]
		snap.Unlocks = append(snap.Unlocks, snapshotUnlock{
			AchievementID:    rec.AchievementID,
			UnlockedAt:       rec.UnlockedAt.UTC(),
			ProgressAtUnlock: rec.ProgressAtUnlock,
		})
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// Import replaces the user's stats and hearts with a snapshot and adds its
// unlock records. Unlock records already present are kept; records for
// achievements missing from the catalog are skipped. Import grants no XP.
func (t *Tracker) Import(ctx context.Context, data []byte) (ImportResult, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return ImportResult{}, domain.NewValidationError("snapshot", "malformed JSON")
	}
	if err := t.lock(); err != nil {
		return ImportResult{}, err
	}
	defer t.mu.Unlock()

	if err := migrateSnapshot(&snap, t.svc.cfg); err != nil {
		return ImportResult{}, err
	}
	stats, err := snap.Stats.toDomain(t.userID)
	if err != nil {
		return ImportResult{}, err
	}
	hearts := domain.HeartsState{
		UserID:     t.userID,
		Hearts:     snap.Hearts.Hearts,
		LastLostAt: snap.Hearts.LastLostAt,
		IsPremium:  snap.Hearts.IsPremium,
	}
	if limit := t.svc.cfg.MaxHeartsFor(hearts.IsPremium); hearts.Hearts < 0 || hearts.Hearts > limit {
		return ImportResult{}, domain.NewValidationError("hearts.hearts", fmt.Sprintf("must be between 0 and %d", limit))
	}

	var res ImportResult
	for _, u := range snap.Unlocks {
		if _, ok := t.svc.catalog.Get(u.AchievementID); !ok {
			res.Skipped++
			continue
		}
		if _, done := t.unlocked[u.AchievementID]; done {
			continue
		}
		rec := domain.UnlockRecord{
			ID:               uuid.New(),
			UserID:           t.userID,
			AchievementID:    u.AchievementID,
			UnlockedAt:       u.UnlockedAt,
			ProgressAtUnlock: u.ProgressAtUnlock,
		}
		t.unlocked[rec.AchievementID] = rec
		t.order = append(t.order, rec.AchievementID)
		t.dirty.unlocks = append(t.dirty.unlocks, rec)
		res.Unlocked++
	}

	t.stats = stats
	t.hearts = hearts
	t.dirty.stats = true
	t.dirty.hearts = true
	t.regenerate(t.svc.clock.Now())

	res.Warning = t.persist(ctx)

	t.log.InfoContext(ctx, "snapshot imported",
		slog.Int("version", snap.Version),
		slog.Int("unlocked", res.Unlocked),
		slog.Int("skipped", res.Skipped),
	)

	return res, nil
}

// migrateSnapshot upgrades older snapshot versions in place.
func migrateSnapshot(snap *Snapshot, cfg domain.ProgressionConfig) error {
	if snap.Version > SnapshotVersion {
		return domain.NewValidationError("version", fmt.Sprintf("unsupported snapshot version %d", snap.Version))
	}
	if snap.Version < 0 {
		return domain.NewValidationError("version", "must be non-negative")
	}

	if snap.Version == 0 {
		if snap.Stats.CategoryXP == nil {
			snap.Stats.CategoryXP = make(map[string]int)
		}
		if snap.Hearts == nil {
			snap.Hearts = &snapshotHearts{Hearts: cfg.MaxHearts}
		}
		snap.Stats.LongestStreak = max(snap.Stats.LongestStreak, snap.Stats.CurrentStreak)
		snap.Version = 1
	}

	if snap.Hearts == nil {
		return domain.NewValidationError("hearts", "required")
	}
	return nil
}

func (s snapshotStats) toDomain(userID uuid.UUID) (*domain.UserStats, error) {
	var errs []domain.FieldError

	for _, f := range []struct {
		name string
		v    int
	}{
		{"stats.total_xp", s.TotalXP},
		{"stats.current_streak", s.CurrentStreak},
		{"stats.longest_streak", s.LongestStreak},
		{"stats.total_cards_viewed", s.TotalCardsViewed},
		{"stats.total_cards_saved", s.TotalCardsSaved},
		{"stats.total_sessions", s.TotalSessions},
		{"stats.perfect_sessions", s.PerfectSessions},
	} {
		if f.v < 0 {
			errs = append(errs, domain.FieldError{Field: f.name, Message: "must be non-negative"})
		}
	}
	if s.LongestStreak < s.CurrentStreak {
		errs = append(errs, domain.FieldError{Field: "stats.longest_streak", Message: "must be >= current_streak"})
	}

	stats := domain.NewUserStats(userID)
	if s.LastActivityDate != "" {
		d, err := time.Parse(dateLayout, s.LastActivityDate)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "stats.last_activity_date", Message: "must be YYYY-MM-DD"})
		} else {
			stats.LastActivityDate = &d
		}
	}

	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}

	stats.TotalXP = s.TotalXP
	stats.CurrentStreak = s.CurrentStreak
	stats.LongestStreak = s.LongestStreak
	stats.TotalCardsViewed = s.TotalCardsViewed
	stats.TotalCardsSaved = s.TotalCardsSaved
	stats.TotalSessions = s.TotalSessions
	stats.PerfectSessions = s.PerfectSessions
	for _, c := range s.CategoriesExplored {
		stats.ExploreCategory(c)
	}
	for c, xp := range s.CategoryXP {
		if xp > 0 {
			stats.CategoryXP[c] = xp
		}
	}
	return stats, nil
}
