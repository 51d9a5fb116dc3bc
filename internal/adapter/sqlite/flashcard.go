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

// FlashcardRepo persists flashcard sets and their ordered cards.
type FlashcardRepo struct {
	store *Store
}

type setRow struct {
	ID           string    `db:"id"`
	UserID       uuid.UUID `db:"user_id"`
	Title        string    `db:"title"`
	TotalReviews int       `db:"total_reviews"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type cardRow struct {
	ID           string `db:"id"`
	Question     string `db:"question"`
	Answer       string `db:"answer"`
	Difficulty   string `db:"difficulty"`
	MasteryLevel int    `db:"mastery_level"`
}

const getSetRowSQL = `
SELECT id, user_id, title, total_reviews, created_at, updated_at
FROM flashcard_sets
WHERE id = ? AND user_id = ?`

const getCardRowsSQL = `
SELECT id, question, answer, difficulty, mastery_level
FROM flashcards
WHERE set_id = ?
ORDER BY position`

const upsertSetRowSQL = `
INSERT INTO flashcard_sets (id, user_id, title, total_reviews, created_at, updated_at)
VALUES (:id, :user_id, :title, :total_reviews, :created_at, :updated_at)
ON CONFLICT (id) DO UPDATE SET
	title         = excluded.title,
	total_reviews = excluded.total_reviews,
	updated_at    = excluded.updated_at
WHERE flashcard_sets.user_id = excluded.user_id`

// GetSet returns a set with its cards in order.
// Returns domain.ErrNotFound if the set does not exist or belongs to another user.
func (r *FlashcardRepo) GetSet(ctx context.Context, userID uuid.UUID, setID string) (*domain.FlashcardSet, error) {
	q := r.store.q(ctx)

	var row setRow
	if err := sqlx.GetContext(ctx, q, &row, getSetRowSQL, setID, userID); err != nil {
		return nil, mapError(err, "flashcard_set", setID)
	}

	var cards []cardRow
	if err := sqlx.SelectContext(ctx, q, &cards, getCardRowsSQL, setID); err != nil {
		return nil, fmt.Errorf("flashcard_set %s: get cards: %w", setID, err)
	}

	set := &domain.FlashcardSet{
		ID:           row.ID,
		UserID:       row.UserID,
		Title:        row.Title,
		TotalReviews: row.TotalReviews,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
		Cards:        make([]domain.Flashcard, len(cards)),
	}
	for i, c := range cards {
		set.Cards[i] = domain.Flashcard{
			ID:           c.ID,
			Question:     c.Question,
			Answer:       c.Answer,
			Difficulty:   domain.Difficulty(c.Difficulty),
			MasteryLevel: c.MasteryLevel,
		}
	}

	return set, nil
}

// SaveSet writes the set header and replaces its cards with set.Cards.
// Run it inside Store.RunInTx so header and cards commit together.
// Returns domain.ErrNotFound if the id is taken by another user's set.
func (r *FlashcardRepo) SaveSet(ctx context.Context, set *domain.FlashcardSet) error {
	q := r.store.q(ctx)

	now := time.Now().UTC()
	row := setRow{
		ID:           set.ID,
		UserID:       set.UserID,
		Title:        set.Title,
		TotalReviews: set.TotalReviews,
		CreatedAt:    set.CreatedAt.UTC(),
		UpdatedAt:    now,
	}
	if set.CreatedAt.IsZero() {
		row.CreatedAt = now
	}

	res, err := sqlx.NamedExecContext(ctx, q, upsertSetRowSQL, row)
	if err != nil {
		return mapError(err, "flashcard_set", set.ID)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("flashcard_set %s: %w", set.ID, domain.ErrNotFound)
	}

	del := sq.Delete("flashcards").Where(sq.Eq{"set_id": set.ID})
	if len(set.Cards) > 0 {
		ids := make([]string, len(set.Cards))
		for i := range set.Cards {
			ids[i] = set.Cards[i].ID
		}
		del = del.Where(sq.NotEq{"id": ids})
	}
	query, args, err := del.ToSql()
	if err != nil {
		return fmt.Errorf("build flashcards delete: %w", err)
	}
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return mapError(err, "flashcard_set", set.ID)
	}

	if len(set.Cards) == 0 {
		return nil
	}

	insert := sq.
		Insert("flashcards").
		Columns("set_id", "id", "position", "question", "answer", "difficulty", "mastery_level")
	for i, c := range set.Cards {
		insert = insert.Values(set.ID, c.ID, i, c.Question, c.Answer, string(c.Difficulty), c.MasteryLevel)
	}
	query, args, err = insert.
		Suffix(`ON CONFLICT (set_id, id) DO UPDATE SET
	position      = excluded.position,
	question      = excluded.question,
	answer        = excluded.answer,
	difficulty    = excluded.difficulty,
	mastery_level = excluded.mastery_level`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build flashcards upsert: %w", err)
	}
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return mapError(err, "flashcard_set", set.ID)
	}

	return nil
}
