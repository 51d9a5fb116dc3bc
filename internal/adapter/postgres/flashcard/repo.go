// Package flashcard implements the FlashcardSet repository using PostgreSQL.
// A set is stored as one flashcard_sets row plus ordered flashcards rows; the
// card upsert is built with squirrel because its VALUES list is variadic.
package flashcard

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

// Repo provides flashcard set persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new flashcard repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const getSetSQL = `
SELECT id, user_id, title, total_reviews, created_at, updated_at
FROM flashcard_sets
WHERE id = $1 AND user_id = $2`

const getCardsSQL = `
SELECT id, question, answer, difficulty, mastery_level
FROM flashcards
WHERE set_id = $1
ORDER BY position`

// upsertSetSQL never moves a set to another owner: the conflicting row is only
// updated when it already belongs to the same user.
const upsertSetSQL = `
INSERT INTO flashcard_sets (id, user_id, title, total_reviews, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET
	title         = EXCLUDED.title,
	total_reviews = EXCLUDED.total_reviews,
	updated_at    = EXCLUDED.updated_at
WHERE flashcard_sets.user_id = EXCLUDED.user_id`

const deleteMissingCardsSQL = `
DELETE FROM flashcards
WHERE set_id = $1 AND NOT (id = ANY($2))`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetSet returns a set with its cards in order.
// Returns domain.ErrNotFound if the set does not exist or belongs to another user.
func (r *Repo) GetSet(ctx context.Context, userID uuid.UUID, setID string) (*domain.FlashcardSet, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var set domain.FlashcardSet
	err := querier.QueryRow(ctx, getSetSQL, setID, userID).Scan(
		&set.ID, &set.UserID, &set.Title, &set.TotalReviews, &set.CreatedAt, &set.UpdatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "flashcard_set", setID)
	}

	rows, err := querier.Query(ctx, getCardsSQL, setID)
	if err != nil {
		return nil, fmt.Errorf("flashcard_set %s: get cards: %w", setID, err)
	}

	set.Cards, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Flashcard, error) {
		var (
			c          domain.Flashcard
			difficulty string
		)
		err := row.Scan(&c.ID, &c.Question, &c.Answer, &difficulty, &c.MasteryLevel)
		c.Difficulty = domain.Difficulty(difficulty)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("flashcard_set %s: get cards: %w", setID, err)
	}

	return &set, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// SaveSet writes the set header and replaces its cards with set.Cards, keeping
// their order. Run it inside TxManager.RunInTx so header and cards commit together.
// Returns domain.ErrNotFound if the id is taken by another user's set.
func (r *Repo) SaveSet(ctx context.Context, set *domain.FlashcardSet) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	createdAt := set.CreatedAt.UTC().Truncate(time.Microsecond)
	if set.CreatedAt.IsZero() {
		createdAt = now
	}

	ct, err := querier.Exec(ctx, upsertSetSQL,
		set.ID, set.UserID, set.Title, set.TotalReviews, createdAt, now,
	)
	if err != nil {
		return postgres.MapError(err, "flashcard_set", set.ID)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("flashcard_set %s: %w", set.ID, domain.ErrNotFound)
	}

	ids := make([]string, len(set.Cards))
	for i := range set.Cards {
		ids[i] = set.Cards[i].ID
	}
	if _, err := querier.Exec(ctx, deleteMissingCardsSQL, set.ID, ids); err != nil {
		return postgres.MapError(err, "flashcard_set", set.ID)
	}

	if len(set.Cards) == 0 {
		return nil
	}

	insert := psql.
		Insert("flashcards").
		Columns("set_id", "id", "position", "question", "answer", "difficulty", "mastery_level")
	for i, c := range set.Cards {
		insert = insert.Values(set.ID, c.ID, i, c.Question, c.Answer, string(c.Difficulty), c.MasteryLevel)
	}
	query, args, err := insert.
		Suffix(`ON CONFLICT (set_id, id) DO UPDATE SET
	position      = EXCLUDED.position,
	question      = EXCLUDED.question,
	answer        = EXCLUDED.answer,
	difficulty    = EXCLUDED.difficulty,
	mastery_level = EXCLUDED.mastery_level`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build flashcards upsert: %w", err)
	}

	if _, err := querier.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "flashcard_set", set.ID)
	}

	return nil
}
