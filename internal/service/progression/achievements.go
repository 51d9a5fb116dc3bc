package progression

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/genius-progression/internal/domain"
)

// TriggerSpecial grants a special achievement computed outside the engine
// (onboarding, time of day, day of week). Triggering an achievement that is
// already unlocked is a no-op.
func (t *Tracker) TriggerSpecial(ctx context.Context, achievementID string) (domain.Reward, error) {
	a, ok := t.svc.catalog.Get(achievementID)
	if !ok {
		return domain.Reward{}, fmt.Errorf("achievement %q: %w", achievementID, domain.ErrNotFound)
	}
	if !a.IsSpecial() {
		return domain.Reward{}, domain.NewValidationError("achievement_id", "not a special achievement")
	}
	if err := t.lock(); err != nil {
		return domain.Reward{}, err
	}
	defer t.mu.Unlock()

	xpBefore := t.stats.TotalXP
	if _, done := t.unlocked[a.ID]; done {
		return t.reward(xpBefore, domain.StreakUnchanged, nil), nil
	}

	now := t.svc.clock.Now()
	t.unlock(a, 1, now)

	reward := t.reward(xpBefore, domain.StreakUnchanged, []domain.Achievement{a})
	reward.Warning = t.persist(ctx)

	t.log.InfoContext(ctx, "special achievement triggered",
		slog.String("achievement_id", a.ID),
		slog.Int("xp_granted", reward.XPGranted),
	)

	return reward, nil
}

// Progress returns a snapshot of the user's stats and level.
func (t *Tracker) Progress() (domain.ProgressView, error) {
	if err := t.lock(); err != nil {
		return domain.ProgressView{}, err
	}
	defer t.mu.Unlock()

	return domain.ProgressView{
		Stats: t.stats.Clone(),
		Level: LevelFromXP(t.stats.TotalXP),
	}, nil
}

// Achievements returns every catalog achievement with its status for the
// user, and the unlock summary.
func (t *Tracker) Achievements() ([]domain.AchievementView, domain.UnlockSummary, error) {
	if err := t.lock(); err != nil {
		return nil, domain.UnlockSummary{}, err
	}
	defer t.mu.Unlock()

	views, summary := Statuses(t.stats, t.svc.catalog.All(), t.unlocked)
	return views, summary, nil
}

// UnlockedIDs returns the unlocked achievement ids in unlock order.
func (t *Tracker) UnlockedIDs() ([]string, error) {
	if err := t.lock(); err != nil {
		return nil, err
	}
	defer t.mu.Unlock()

	return append([]string(nil), t.order...), nil
}
