// Package hearts implements the hearts state repository using PostgreSQL.
package hearts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/genius-progression/internal/adapter/postgres"
	"github.com/heartmarshall/genius-progression/internal/domain"
)

// Repo provides hearts persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new hearts repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getSQL = `
SELECT user_id, hearts, last_lost_at, is_premium
FROM user_hearts
WHERE user_id = $1`

const upsertSQL = `
INSERT INTO user_hearts (user_id, hearts, last_lost_at, is_premium)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id) DO UPDATE SET
	hearts       = EXCLUDED.hearts,
	last_lost_at = EXCLUDED.last_lost_at,
	is_premium   = EXCLUDED.is_premium`

// Get returns the hearts state of a user.
// Returns domain.ErrNotFound if the user has never had hearts stored.
func (r *Repo) Get(ctx context.Context, userID uuid.UUID) (*domain.HeartsState, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var st domain.HeartsState
	err := querier.QueryRow(ctx, getSQL, userID).Scan(&st.UserID, &st.Hearts, &st.LastLostAt, &st.IsPremium)
	if err != nil {
		return nil, postgres.MapError(err, "user_hearts", userID.String())
	}

	return &st, nil
}

// Save writes the hearts state, creating the row on first save.
func (r *Repo) Save(ctx context.Context, st domain.HeartsState) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var lastLost *time.Time
	if st.LastLostAt != nil {
		t := st.LastLostAt.UTC().Truncate(time.Microsecond)
		lastLost = &t
	}

	_, err := querier.Exec(ctx, upsertSQL, st.UserID, st.Hearts, lastLost, st.IsPremium)
	if err != nil {
		return postgres.MapError(err, "user_hearts", st.UserID.String())
	}

	return nil
}
