package sqlite

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/heartmarshall/genius-progression/internal/domain"
)

// HeartsRepo persists the hearts resource.
type HeartsRepo struct {
	store *Store
}

type heartsRow struct {
	UserID     uuid.UUID    `db:"user_id"`
	Hearts     int          `db:"hearts"`
	LastLostAt sql.NullTime `db:"last_lost_at"`
	IsPremium  bool         `db:"is_premium"`
}

const getHeartsSQL = `
SELECT user_id, hearts, last_lost_at, is_premium
FROM user_hearts
WHERE user_id = ?`

const upsertHeartsSQL = `
INSERT INTO user_hearts (user_id, hearts, last_lost_at, is_premium)
VALUES (:user_id, :hearts, :last_lost_at, :is_premium)
ON CONFLICT (user_id) DO UPDATE SET
	hearts       = excluded.hearts,
	last_lost_at = excluded.last_lost_at,
	is_premium   = excluded.is_premium`

// Get returns the hearts state of a user, or domain.ErrNotFound.
func (r *HeartsRepo) Get(ctx context.Context, userID uuid.UUID) (*domain.HeartsState, error) {
	var row heartsRow
	if err := sqlx.GetContext(ctx, r.store.q(ctx), &row, getHeartsSQL, userID); err != nil {
		return nil, mapError(err, "user_hearts", userID.String())
	}

	st := &domain.HeartsState{UserID: row.UserID, Hearts: row.Hearts, IsPremium: row.IsPremium}
	if row.LastLostAt.Valid {
		t := row.LastLostAt.Time
		st.LastLostAt = &t
	}
	return st, nil
}

// Save writes the hearts state, creating the row on first save.
func (r *HeartsRepo) Save(ctx context.Context, st domain.HeartsState) error {
	row := heartsRow{UserID: st.UserID, Hearts: st.Hearts, IsPremium: st.IsPremium}
	if st.LastLostAt != nil {
		row.LastLostAt = sql.NullTime{Time: st.LastLostAt.UTC(), Valid: true}
	}

	if _, err := sqlx.NamedExecContext(ctx, r.store.q(ctx), upsertHeartsSQL, row); err != nil {
		return mapError(err, "user_hearts", st.UserID.String())
	}
	return nil
}
