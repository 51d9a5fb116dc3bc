package progression

import (
	"fmt"
	"time"

	"github.com/heartmarshall/genius-progression/internal/domain"
)

const maxSessionDuration = 24 * time.Hour

// SwipeInput holds the parameters of a fact-card swipe.
type SwipeInput struct {
	CardID    string
	Category  string
	Direction domain.SwipeDirection
}

// Validate normalizes the category, then checks all fields and collects all errors.
func (i *SwipeInput) Validate() error {
	var errs []domain.FieldError

	i.Category = domain.NormalizeKey(i.Category)

	if i.CardID == "" {
		errs = append(errs, domain.FieldError{Field: "card_id", Message: "required"})
	}
	if len(i.CardID) > 64 {
		errs = append(errs, domain.FieldError{Field: "card_id", Message: "max 64 characters"})
	}
	if len(i.Category) > 64 {
		errs = append(errs, domain.FieldError{Field: "category", Message: "max 64 characters"})
	}
	if !i.Direction.IsValid() {
		errs = append(errs, domain.FieldError{Field: "direction", Message: "must be left or right"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ReviewInput holds the outcome of one flashcard review.
type ReviewInput struct {
	CardID  string
	Correct bool
}

// Validate checks all fields and collects all errors.
func (i *ReviewInput) Validate() error {
	if i.CardID == "" {
		return domain.NewValidationError("card_id", "required")
	}
	return nil
}

// validateSummary checks a completed session summary.
func validateSummary(s domain.SessionSummary) error {
	var errs []domain.FieldError

	if s.SetID == "" {
		errs = append(errs, domain.FieldError{Field: "set_id", Message: "required"})
	}
	if s.CardsStudied <= 0 {
		errs = append(errs, domain.FieldError{Field: "cards_studied", Message: "must be positive"})
	}
	if s.CardsCorrect < 0 {
		errs = append(errs, domain.FieldError{Field: "cards_correct", Message: "must be non-negative"})
	}
	if s.CardsIncorrect < 0 {
		errs = append(errs, domain.FieldError{Field: "cards_incorrect", Message: "must be non-negative"})
	}
	if s.CardsCorrect+s.CardsIncorrect > s.CardsStudied {
		errs = append(errs, domain.FieldError{Field: "cards_correct", Message: "correct + incorrect exceeds cards studied"})
	}
	if s.Duration < 0 {
		errs = append(errs, domain.FieldError{Field: "duration", Message: "must be non-negative"})
	}
	if s.Duration > maxSessionDuration {
		errs = append(errs, domain.FieldError{Field: "duration", Message: "max 24 hours"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// checkSummary rejects a summary that claims more correct or incorrect
// answers than the session recorded.
func (s *activeSession) checkSummary(sum domain.SessionSummary) error {
	var errs []domain.FieldError

	if sum.CardsCorrect > s.correct {
		errs = append(errs, domain.FieldError{
			Field:   "cards_correct",
			Message: fmt.Sprintf("exceeds the %d correct answers reviewed", s.correct),
		})
	}
	if sum.CardsIncorrect > s.incorrect {
		errs = append(errs, domain.FieldError{
			Field:   "cards_incorrect",
			Message: fmt.Sprintf("exceeds the %d incorrect answers reviewed", s.incorrect),
		})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
