package progression

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/genius-progression/internal/domain"
)

// Hearts returns the current hearts, applying any regeneration due.
func (t *Tracker) Hearts(ctx context.Context) (domain.HeartsStatus, error) {
	if err := t.lock(); err != nil {
		return domain.HeartsStatus{}, err
	}
	defer t.mu.Unlock()

	now := t.svc.clock.Now()
	t.regenerate(now)

	status := t.heartsStatus(now)
	status.Warning = t.persist(ctx)
	return status, nil
}

// TickHearts is the scheduler entry point. It runs the same regeneration as
// Hearts and reports whether a heart was regained.
func (t *Tracker) TickHearts(ctx context.Context) (bool, error) {
	if err := t.lock(); err != nil {
		return false, err
	}
	defer t.mu.Unlock()

	if !t.regenerate(t.svc.clock.Now()) {
		return false, nil
	}
	return true, t.persist(ctx)
}

// ConsumeHeart spends one heart. Regeneration is applied first; at zero
// hearts it fails with domain.ErrNoHearts and nothing changes.
func (t *Tracker) ConsumeHeart(ctx context.Context) (domain.HeartsStatus, error) {
	if err := t.lock(); err != nil {
		return domain.HeartsStatus{}, err
	}
	defer t.mu.Unlock()

	now := t.svc.clock.Now()
	t.regenerate(now)

	if t.hearts.Hearts <= 0 {
		return t.heartsStatus(now), domain.ErrNoHearts
	}

	// The regeneration clock starts when the first heart is lost; later
	// losses keep the running clock so partial progress is not reset.
	if t.hearts.Hearts >= t.maxHearts() || t.hearts.LastLostAt == nil {
		lostAt := now
		t.hearts.LastLostAt = &lostAt
	}
	t.hearts.Hearts--
	t.dirty.hearts = true

	status := t.heartsStatus(now)
	status.Warning = t.persist(ctx)

	t.log.InfoContext(ctx, "heart consumed", slog.Int("hearts", status.Hearts))

	return status, nil
}

// RefillHearts restores hearts to the cap and stops regeneration.
func (t *Tracker) RefillHearts(ctx context.Context) (domain.HeartsStatus, error) {
	if err := t.lock(); err != nil {
		return domain.HeartsStatus{}, err
	}
	defer t.mu.Unlock()

	t.hearts.Hearts = t.maxHearts()
	t.hearts.LastLostAt = nil
	t.dirty.hearts = true

	status := t.heartsStatus(t.svc.clock.Now())
	status.Warning = t.persist(ctx)

	t.log.InfoContext(ctx, "hearts refilled", slog.Int("hearts", status.Hearts))

	return status, nil
}

// SetPremium switches the account type. The cap changes immediately; hearts
// above a lowered cap are kept until spent.
func (t *Tracker) SetPremium(ctx context.Context, premium bool) (domain.HeartsStatus, error) {
	if err := t.lock(); err != nil {
		return domain.HeartsStatus{}, err
	}
	defer t.mu.Unlock()

	now := t.svc.clock.Now()
	if t.hearts.IsPremium != premium {
		t.regenerate(now)
		t.hearts.IsPremium = premium
		if t.hearts.Hearts < t.maxHearts() && t.hearts.LastLostAt == nil {
			lostAt := now
			t.hearts.LastLostAt = &lostAt
		}
		t.dirty.hearts = true
	}

	status := t.heartsStatus(now)
	status.Warning = t.persist(ctx)
	return status, nil
}

// regenerate applies elapsed-time regeneration and reports whether the
// state changed. Must be called with mu held.
func (t *Tracker) regenerate(now time.Time) bool {
	next := ApplyRegeneration(t.hearts, now, t.svc.cfg.HeartRegenInterval, t.maxHearts())
	if next.Hearts == t.hearts.Hearts && equalTime(next.LastLostAt, t.hearts.LastLostAt) {
		return false
	}
	t.hearts = next
	t.dirty.hearts = true
	return true
}

func (t *Tracker) maxHearts() int {
	return t.svc.cfg.MaxHeartsFor(t.hearts.IsPremium)
}

func (t *Tracker) heartsStatus(now time.Time) domain.HeartsStatus {
	return domain.HeartsStatus{
		Hearts:      t.hearts.Hearts,
		MaxHearts:   t.maxHearts(),
		IsPremium:   t.hearts.IsPremium,
		NextHeartIn: NextHeartIn(t.hearts, now, t.svc.cfg.HeartRegenInterval, t.maxHearts()),
	}
}

func equalTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
