// Package stats implements the UserStats repository using PostgreSQL.
// Explored categories are stored as TEXT[] and per-category XP as JSONB.
package stats

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/genius-progression/internal/adapter/postgres"
	"github.com/heartmarshall/genius-progression/internal/domain"
)

// Repo provides user stats persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new stats repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const statsColumns = `user_id, total_xp, current_streak, longest_streak, last_activity_date,
	total_cards_viewed, total_cards_saved, categories_explored, category_xp,
	total_sessions, perfect_sessions, updated_at`

const getSQL = `
SELECT ` + statsColumns + `
FROM user_stats
WHERE user_id = $1`

const upsertSQL = `
INSERT INTO user_stats (` + statsColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (user_id) DO UPDATE SET
	total_xp            = EXCLUDED.total_xp,
	current_streak      = EXCLUDED.current_streak,
	longest_streak      = EXCLUDED.longest_streak,
	last_activity_date  = EXCLUDED.last_activity_date,
	total_cards_viewed  = EXCLUDED.total_cards_viewed,
	total_cards_saved   = EXCLUDED.total_cards_saved,
	categories_explored = EXCLUDED.categories_explored,
	category_xp         = EXCLUDED.category_xp,
	total_sessions      = EXCLUDED.total_sessions,
	perfect_sessions    = EXCLUDED.perfect_sessions,
	updated_at          = EXCLUDED.updated_at`

// Get returns the stats of a user.
// Returns domain.ErrNotFound if the user has no stats row yet.
func (r *Repo) Get(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		s          = domain.NewUserStats(userID)
		lastActive *time.Time
		categories []string
		categoryXP map[string]int
	)

	err := querier.QueryRow(ctx, getSQL, userID).Scan(
		&s.UserID, &s.TotalXP, &s.CurrentStreak, &s.LongestStreak, &lastActive,
		&s.TotalCardsViewed, &s.TotalCardsSaved, &categories, &categoryXP,
		&s.TotalSessions, &s.PerfectSessions, &s.UpdatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "user_stats", userID.String())
	}

	if lastActive != nil {
		d := time.Date(lastActive.Year(), lastActive.Month(), lastActive.Day(), 0, 0, 0, 0, time.UTC)
		s.LastActivityDate = &d
	}
	for _, c := range categories {
		s.ExploreCategory(c)
	}
	for c, xp := range categoryXP {
		s.CategoryXP[c] = xp
	}

	return s, nil
}

// Save writes the full stats row, creating it on first save.
func (r *Repo) Save(ctx context.Context, s *domain.UserStats) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	categoryXP := s.CategoryXP
	if categoryXP == nil {
		categoryXP = map[string]int{}
	}

	_, err := querier.Exec(ctx, upsertSQL,
		s.UserID, s.TotalXP, s.CurrentStreak, s.LongestStreak, s.LastActivityDate,
		s.TotalCardsViewed, s.TotalCardsSaved, s.Categories(), categoryXP,
		s.TotalSessions, s.PerfectSessions, s.UpdatedAt.UTC().Truncate(time.Microsecond),
	)
	if err != nil {
		return postgres.MapError(err, "user_stats", s.UserID.String())
	}

	return nil
}
