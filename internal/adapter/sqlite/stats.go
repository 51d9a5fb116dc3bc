package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/heartmarshall/genius-progression/internal/domain"
)

const dateLayout = "2006-01-02"

// StatsRepo persists user stats. Explored categories and per-category XP are
// stored as JSON text.
type StatsRepo struct {
	store *Store
}

type statsRow struct {
	UserID             uuid.UUID      `db:"user_id"`
	TotalXP            int            `db:"total_xp"`
	CurrentStreak      int            `db:"current_streak"`
	LongestStreak      int            `db:"longest_streak"`
	LastActivityDate   sql.NullString `db:"last_activity_date"`
	TotalCardsViewed   int            `db:"total_cards_viewed"`
	TotalCardsSaved    int            `db:"total_cards_saved"`
	CategoriesExplored string         `db:"categories_explored"`
	CategoryXP         string         `db:"category_xp"`
	TotalSessions      int            `db:"total_sessions"`
	PerfectSessions    int            `db:"perfect_sessions"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

const getStatsSQL = `
SELECT user_id, total_xp, current_streak, longest_streak, last_activity_date,
	total_cards_viewed, total_cards_saved, categories_explored, category_xp,
	total_sessions, perfect_sessions, updated_at
FROM user_stats
WHERE user_id = ?`

const upsertStatsSQL = `
INSERT INTO user_stats (user_id, total_xp, current_streak, longest_streak, last_activity_date,
	total_cards_viewed, total_cards_saved, categories_explored, category_xp,
	total_sessions, perfect_sessions, updated_at)
VALUES (:user_id, :total_xp, :current_streak, :longest_streak, :last_activity_date,
	:total_cards_viewed, :total_cards_saved, :categories_explored, :category_xp,
	:total_sessions, :perfect_sessions, :updated_at)
ON CONFLICT (user_id) DO UPDATE SET
	total_xp            = excluded.total_xp,
	current_streak      = excluded.current_streak,
	longest_streak      = excluded.longest_streak,
	last_activity_date  = excluded.last_activity_date,
	total_cards_viewed  = excluded.total_cards_viewed,
	total_cards_saved   = excluded.total_cards_saved,
	categories_explored = excluded.categories_explored,
	category_xp         = excluded.category_xp,
	total_sessions      = excluded.total_sessions,
	perfect_sessions    = excluded.perfect_sessions,
	updated_at          = excluded.updated_at`

// Get returns the stats of a user, or domain.ErrNotFound.
func (r *StatsRepo) Get(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error) {
	var row statsRow
	if err := sqlx.GetContext(ctx, r.store.q(ctx), &row, getStatsSQL, userID); err != nil {
		return nil, mapError(err, "user_stats", userID.String())
	}

	s := domain.NewUserStats(row.UserID)
	s.TotalXP = row.TotalXP
	s.CurrentStreak = row.CurrentStreak
	s.LongestStreak = row.LongestStreak
	s.TotalCardsViewed = row.TotalCardsViewed
	s.TotalCardsSaved = row.TotalCardsSaved
	s.TotalSessions = row.TotalSessions
	s.PerfectSessions = row.PerfectSessions
	s.UpdatedAt = row.UpdatedAt

	if row.LastActivityDate.Valid {
		d, err := time.Parse(dateLayout, row.LastActivityDate.String)
		if err != nil {
			return nil, fmt.Errorf("user_stats %s: last_activity_date: %w", userID, err)
		}
		s.LastActivityDate = &d
	}

	var categories []string
	if err := json.Unmarshal([]byte(row.CategoriesExplored), &categories); err != nil {
		return nil, fmt.Errorf("user_stats %s: categories_explored: %w", userID, err)
	}
	for _, c := range categories {
		s.ExploreCategory(c)
	}
	if err := json.Unmarshal([]byte(row.CategoryXP), &s.CategoryXP); err != nil {
		return nil, fmt.Errorf("user_stats %s: category_xp: %w", userID, err)
	}

	return s, nil
}

// Save writes the full stats row, creating it on first save.
func (r *StatsRepo) Save(ctx context.Context, s *domain.UserStats) error {
	categories, err := json.Marshal(s.Categories())
	if err != nil {
		return fmt.Errorf("user_stats %s: marshal categories: %w", s.UserID, err)
	}
	categoryXP := s.CategoryXP
	if categoryXP == nil {
		categoryXP = map[string]int{}
	}
	xp, err := json.Marshal(categoryXP)
	if err != nil {
		return fmt.Errorf("user_stats %s: marshal category xp: %w", s.UserID, err)
	}

	row := statsRow{
		UserID:             s.UserID,
		TotalXP:            s.TotalXP,
		CurrentStreak:      s.CurrentStreak,
		LongestStreak:      s.LongestStreak,
		TotalCardsViewed:   s.TotalCardsViewed,
		TotalCardsSaved:    s.TotalCardsSaved,
		CategoriesExplored: string(categories),
		CategoryXP:         string(xp),
		TotalSessions:      s.TotalSessions,
		PerfectSessions:    s.PerfectSessions,
		UpdatedAt:          s.UpdatedAt.UTC(),
	}
	if s.LastActivityDate != nil {
		row.LastActivityDate = sql.NullString{String: s.LastActivityDate.Format(dateLayout), Valid: true}
	}

	if _, err := sqlx.NamedExecContext(ctx, r.store.q(ctx), upsertStatsSQL, row); err != nil {
		return mapError(err, "user_stats", s.UserID.String())
	}

	return nil
}
