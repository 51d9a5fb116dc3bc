package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/genius-progression/internal/domain"
)

// SeedFlashcardSet inserts a set with the given number of medium cards for a
// fresh user and returns it as stored.
func SeedFlashcardSet(t *testing.T, pool *pgxpool.Pool, cards int) domain.FlashcardSet {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	set := domain.FlashcardSet{
		ID:        domain.NewPublicID(),
		UserID:    uuid.New(),
		Title:     "Seed set " + uuid.New().String()[:8],
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO flashcard_sets (id, user_id, title, total_reviews, created_at, updated_at)
		 VALUES ($1, $2, $3, 0, $4, $4)`,
		set.ID, set.UserID, set.Title, now,
	)
	if err != nil {
		t.Fatalf("SeedFlashcardSet: insert set: %v", err)
	}

	for i := range cards {
		card := domain.Flashcard{
			ID:         domain.NewPublicID(),
			Question:   "Question " + uuid.New().String()[:8],
			Answer:     "Answer",
			Difficulty: domain.DifficultyMedium,
		}
		_, err := pool.Exec(ctx,
			`INSERT INTO flashcards (set_id, id, position, question, answer, difficulty, mastery_level)
			 VALUES ($1, $2, $3, $4, $5, $6, 0)`,
			set.ID, card.ID, i, card.Question, card.Answer, string(card.Difficulty),
		)
		if err != nil {
			t.Fatalf("SeedFlashcardSet: insert card: %v", err)
		}
		set.Cards = append(set.Cards, card)
	}

	return set
}
