package sqlite

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/heartmarshall/genius-progression/internal/domain"
)

// SavedCardRepo persists right-swiped fact cards.
type SavedCardRepo struct {
	store *Store
}

type savedCardRow struct {
	UserID   uuid.UUID `db:"user_id"`
	CardID   string    `db:"card_id"`
	Category string    `db:"category"`
	SavedAt  time.Time `db:"saved_at"`
}

const insertSavedCardSQL = `
INSERT INTO saved_cards (user_id, card_id, category, saved_at)
VALUES (:user_id, :card_id, :category, :saved_at)
ON CONFLICT (user_id, card_id) DO NOTHING`

// Save records a saved card. Idempotent per (user, card).
func (r *SavedCardRepo) Save(ctx context.Context, card domain.SavedCard) error {
	card.SavedAt = card.SavedAt.UTC()
	if _, err := sqlx.NamedExecContext(ctx, r.store.q(ctx), insertSavedCardSQL, savedCardRow(card)); err != nil {
		return mapError(err, "saved_card", card.CardID)
	}
	return nil
}

// ListByUser returns the saved cards of a user, newest first, optionally
// restricted to one category. limit <= 0 means no limit.
func (r *SavedCardRepo) ListByUser(ctx context.Context, userID uuid.UUID, category string, limit int) ([]domain.SavedCard, error) {
	b := sq.
		Select("user_id", "card_id", "category", "saved_at").
		From("saved_cards").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("saved_at DESC", "card_id")
	if category != "" {
		b = b.Where(sq.Eq{"category": category})
	}
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build saved card select: %w", err)
	}

	var rows []savedCardRow
	if err := sqlx.SelectContext(ctx, r.store.q(ctx), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list saved cards: %w", err)
	}

	cards := make([]domain.SavedCard, len(rows))
	for i, row := range rows {
		cards[i] = domain.SavedCard(row)
	}
	return cards, nil
}
