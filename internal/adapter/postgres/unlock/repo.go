// Package unlock implements the append-only achievement unlock log using PostgreSQL.
package unlock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/genius-progression/internal/adapter/postgres"
	"github.com/heartmarshall/genius-progression/internal/domain"
)

// Repo provides unlock record persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new unlock repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const listByUserSQL = `
SELECT id, user_id, achievement_id, unlocked_at, progress_at_unlock
FROM achievement_unlocks
WHERE user_id = $1
ORDER BY unlocked_at, achievement_id`

// insertSQL ignores a second unlock of the same achievement; the first record wins.
const insertSQL = `
INSERT INTO achievement_unlocks (id, user_id, achievement_id, unlocked_at, progress_at_unlock)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (user_id, achievement_id) DO NOTHING`

// ListByUser returns every unlock of a user, oldest first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.UnlockRecord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list unlocks: %w", err)
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.UnlockRecord, error) {
		var rec domain.UnlockRecord
		err := row.Scan(&rec.ID, &rec.UserID, &rec.AchievementID, &rec.UnlockedAt, &rec.ProgressAtUnlock)
		return rec, err
	})
	if err != nil {
		return nil, fmt.Errorf("list unlocks: %w", err)
	}

	return records, nil
}

// Create appends an unlock record. Idempotent per (user, achievement).
func (r *Repo) Create(ctx context.Context, rec domain.UnlockRecord) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	_, err := querier.Exec(ctx, insertSQL,
		rec.ID, rec.UserID, rec.AchievementID,
		rec.UnlockedAt.UTC().Truncate(time.Microsecond), rec.ProgressAtUnlock,
	)
	if err != nil {
		return postgres.MapError(err, "achievement_unlock", rec.AchievementID)
	}

	return nil
}
