package domain

import (
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Flashcard is a question/answer card with a 0..100 mastery score.
type Flashcard struct {
	ID           string
	Question     string
	Answer       string
	Difficulty   Difficulty
	MasteryLevel int
}

// FlashcardSet is an ordered collection of flashcards owned by a user.
type FlashcardSet struct {
	ID           string
	UserID       uuid.UUID
	Title        string
	Cards        []Flashcard
	TotalReviews int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CardIndex returns the position of the card with the given id, or -1.
func (s *FlashcardSet) CardIndex(cardID string) int {
	for i := range s.Cards {
		if s.Cards[i].ID == cardID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the set.
func (s *FlashcardSet) Clone() *FlashcardSet {
	c := *s
	c.Cards = append([]Flashcard(nil), s.Cards...)
	return &c
}

// SavedCard is a fact card the user swiped right on.
type SavedCard struct {
	UserID   uuid.UUID
	CardID   string
	Category string
	SavedAt  time.Time
}

// SessionSummary is the outcome of one flashcard review session.
type SessionSummary struct {
	SetID          string
	CardsStudied   int
	CardsCorrect   int
	CardsIncorrect int
	Duration       time.Duration
}

// Accuracy returns the correct ratio in [0,1]; zero for an empty session.
func (s SessionSummary) Accuracy() float64 {
	if s.CardsStudied <= 0 {
		return 0
	}
	return float64(s.CardsCorrect) / float64(s.CardsStudied)
}

// IsPerfect reports whether every studied card was answered correctly.
func (s SessionSummary) IsPerfect() bool {
	return s.CardsStudied > 0 && s.CardsCorrect == s.CardsStudied
}

// NewPublicID returns a URL-safe identifier for client-visible sets and cards.
func NewPublicID() string {
	return gonanoid.Must()
}
