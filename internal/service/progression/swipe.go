package progression

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/genius-progression/internal/domain"
)

// OnCardSwiped records a fact-card swipe: every card viewed earns SwipeXP,
// a right swipe also saves the card and earns SaveBonusXP.
func (t *Tracker) OnCardSwiped(ctx context.Context, input SwipeInput) (domain.Reward, error) {
	if err := input.Validate(); err != nil {
		return domain.Reward{}, err
	}
	if err := t.lock(); err != nil {
		return domain.Reward{}, err
	}
	defer t.mu.Unlock()

	now := t.svc.clock.Now()
	xpBefore := t.stats.TotalXP
	xp := SwipeXP(input.Direction, t.svc.cfg)

	t.stats.TotalCardsViewed++
	t.stats.TotalXP += xp
	if input.Category != "" {
		t.stats.ExploreCategory(input.Category)
		t.stats.CategoryXP[input.Category] += xp
	}
	if input.Direction == domain.SwipeRight {
		t.stats.TotalCardsSaved++
		t.dirty.saved = append(t.dirty.saved, domain.SavedCard{
			UserID:   t.userID,
			CardID:   input.CardID,
			Category: input.Category,
			SavedAt:  now,
		})
	}
	t.dirty.stats = true

	streak := t.touchStreak(now)
	achievements := t.evaluate(now)

	reward := t.reward(xpBefore, streak, achievements)
	reward.Warning = t.persist(ctx)

	t.log.InfoContext(ctx, "card swiped",
		slog.String("direction", input.Direction.String()),
		slog.Int("xp_granted", reward.XPGranted),
		slog.Int("streak", reward.CurrentStreak),
	)

	return reward, nil
}
