// Package savedcard implements the saved (right-swiped) fact card repository using PostgreSQL.
package savedcard

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/genius-progression/internal/adapter/postgres"
	"github.com/heartmarshall/genius-progression/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides saved card persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new saved card repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Save records a saved card. Idempotent per (user, card): the first save time wins.
func (r *Repo) Save(ctx context.Context, card domain.SavedCard) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.
		Insert("saved_cards").
		Columns("user_id", "card_id", "category", "saved_at").
		Values(card.UserID, card.CardID, card.Category, card.SavedAt.UTC().Truncate(time.Microsecond)).
		Suffix("ON CONFLICT (user_id, card_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build saved card insert: %w", err)
	}

	if _, err := querier.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "saved_card", card.CardID)
	}

	return nil
}

// ListByUser returns the saved cards of a user, newest first, optionally
// restricted to one category. limit <= 0 means no limit.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID, category string, limit int) ([]domain.SavedCard, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	b := psql.
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

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list saved cards: %w", err)
	}

	cards, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.SavedCard, error) {
		var c domain.SavedCard
		err := row.Scan(&c.UserID, &c.CardID, &c.Category, &c.SavedAt)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("list saved cards: %w", err)
	}

	return cards, nil
}
