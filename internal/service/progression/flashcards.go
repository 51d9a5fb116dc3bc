package progression

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/genius-progression/internal/domain"
)

// ReviewOutcome is the result of reviewing one flashcard.
type ReviewOutcome struct {
	Card             domain.Flashcard
	SessionCorrect   int
	SessionIncorrect int
	Warning          error
}

// StartSession loads a flashcard set and makes it the active session.
// A session already in progress is abandoned; mastery changes it made stand.
func (t *Tracker) StartSession(ctx context.Context, setID string) (*domain.FlashcardSet, error) {
	if setID == "" {
		return nil, domain.NewValidationError("set_id", "required")
	}
	if err := t.lock(); err != nil {
		return nil, err
	}
	defer t.mu.Unlock()

	set, err := t.loadSet(ctx, setID)
	if err != nil {
		return nil, err
	}

	t.session = &activeSession{set: set, startedAt: t.svc.clock.Now()}

	t.log.InfoContext(ctx, "session started",
		slog.String("set_id", setID),
		slog.Int("cards", len(set.Cards)),
	)

	return set.Clone(), nil
}

// OnFlashcardReviewed updates the mastery of one card in the active session
// and counts the answer. No XP is granted per card.
func (t *Tracker) OnFlashcardReviewed(ctx context.Context, input ReviewInput) (ReviewOutcome, error) {
	if err := input.Validate(); err != nil {
		return ReviewOutcome{}, err
	}
	if err := t.lock(); err != nil {
		return ReviewOutcome{}, err
	}
	defer t.mu.Unlock()

	if t.session == nil {
		return ReviewOutcome{}, domain.NewValidationError("session", "no active session")
	}
	set := t.session.set
	idx := set.CardIndex(input.CardID)
	if idx < 0 {
		return ReviewOutcome{}, domain.NewValidationError("card_id", "not in the active set")
	}

	cfg := t.svc.cfg
	card := &set.Cards[idx]
	card.MasteryLevel = UpdateMastery(card.MasteryLevel, input.Correct, cfg.MasteryCorrectStep, cfg.MasteryIncorrectStep)
	if input.Correct {
		t.session.correct++
	} else {
		t.session.incorrect++
	}
	t.dirty.sets[set.ID] = set

	return ReviewOutcome{
		Card:             *card,
		SessionCorrect:   t.session.correct,
		SessionIncorrect: t.session.incorrect,
		Warning:          t.persist(ctx),
	}, nil
}

// OnSessionCompleted grants session XP, counts a review of the set and
// advances the streak. Reward.XPGranted is the "+N XP" shown to the user.
// When the summary belongs to the active session it may not claim more
// answers than were reviewed; a summary for a set without an active session
// is taken as reported.
func (t *Tracker) OnSessionCompleted(ctx context.Context, summary domain.SessionSummary) (domain.Reward, error) {
	if err := validateSummary(summary); err != nil {
		return domain.Reward{}, err
	}
	if err := t.lock(); err != nil {
		return domain.Reward{}, err
	}
	defer t.mu.Unlock()

	var set *domain.FlashcardSet
	if t.session != nil && t.session.set.ID == summary.SetID {
		if err := t.session.checkSummary(summary); err != nil {
			return domain.Reward{}, err
		}
		set = t.session.set
	} else {
		loaded, err := t.loadSet(ctx, summary.SetID)
		if err != nil {
			return domain.Reward{}, err
		}
		set = loaded
	}

	now := t.svc.clock.Now()
	xpBefore := t.stats.TotalXP

	set.TotalReviews++
	t.dirty.sets[set.ID] = set

	t.stats.TotalXP += SessionXP(summary, t.svc.cfg)
	t.stats.TotalSessions++
	if summary.IsPerfect() {
		t.stats.PerfectSessions++
	}
	t.dirty.stats = true

	streak := t.touchStreak(now)
	achievements := t.evaluate(now)
	t.session = nil

	reward := t.reward(xpBefore, streak, achievements)
	reward.Warning = t.persist(ctx)

	t.log.InfoContext(ctx, "session completed",
		slog.String("set_id", set.ID),
		slog.Int("cards_studied", summary.CardsStudied),
		slog.Int("cards_correct", summary.CardsCorrect),
		slog.Int("xp_granted", reward.XPGranted),
		slog.Int("streak", reward.CurrentStreak),
	)

	return reward, nil
}

// loadSet prefers a set with unsaved changes over the stored copy.
func (t *Tracker) loadSet(ctx context.Context, setID string) (*domain.FlashcardSet, error) {
	if set, ok := t.dirty.sets[setID]; ok {
		return set, nil
	}
	set, err := t.svc.sets.GetSet(ctx, t.userID, setID)
	if err != nil {
		return nil, fmt.Errorf("get set: %w", err)
	}
	return set, nil
}
