package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/heartmarshall/genius-progression/internal/domain"
)

// UnlockRepo persists the append-only achievement unlock log.
type UnlockRepo struct {
	store *Store
}

type unlockRow struct {
	ID               uuid.UUID `db:"id"`
	UserID           uuid.UUID `db:"user_id"`
	AchievementID    string    `db:"achievement_id"`
	UnlockedAt       time.Time `db:"unlocked_at"`
	ProgressAtUnlock int       `db:"progress_at_unlock"`
}

const listUnlocksSQL = `
SELECT id, user_id, achievement_id, unlocked_at, progress_at_unlock
FROM achievement_unlocks
WHERE user_id = ?
ORDER BY unlocked_at, achievement_id`

const insertUnlockSQL = `
INSERT INTO achievement_unlocks (id, user_id, achievement_id, unlocked_at, progress_at_unlock)
VALUES (:id, :user_id, :achievement_id, :unlocked_at, :progress_at_unlock)
ON CONFLICT (user_id, achievement_id) DO NOTHING`

// ListByUser returns every unlock of a user, oldest first.
func (r *UnlockRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.UnlockRecord, error) {
	var rows []unlockRow
	if err := sqlx.SelectContext(ctx, r.store.q(ctx), &rows, listUnlocksSQL, userID); err != nil {
		return nil, fmt.Errorf("list unlocks: %w", err)
	}

	records := make([]domain.UnlockRecord, len(rows))
	for i, row := range rows {
		records[i] = domain.UnlockRecord(row)
	}
	return records, nil
}

// Create appends an unlock record. Idempotent per (user, achievement).
func (r *UnlockRepo) Create(ctx context.Context, rec domain.UnlockRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.UnlockedAt = rec.UnlockedAt.UTC()

	if _, err := sqlx.NamedExecContext(ctx, r.store.q(ctx), insertUnlockSQL, unlockRow(rec)); err != nil {
		return mapError(err, "achievement_unlock", rec.AchievementID)
	}
	return nil
}
