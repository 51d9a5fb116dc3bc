package progression

import (
	"time"

	"github.com/heartmarshall/genius-progression/internal/domain"
)

// RegenerateHearts returns how many hearts the user has at now.
// Pure value: the result is in [hearts, maxHearts] and depends only on the
// elapsed time since lastLostAt, so polling and lazy calls agree.
func RegenerateHearts(hearts int, lastLostAt *time.Time, now time.Time, interval time.Duration, maxHearts int) int {
	if hearts >= maxHearts || lastLostAt == nil || interval <= 0 {
		return hearts
	}
	elapsed := now.Sub(*lastLostAt)
	if elapsed <= 0 {
		return hearts
	}
	regenerated := int(elapsed / interval)
	return min(maxHearts, hearts+regenerated)
}

// ApplyRegeneration funnels through RegenerateHearts and moves the
// regeneration clock: cleared when hearts are full again, otherwise advanced
// by the whole intervals consumed so partial progress carries over.
func ApplyRegeneration(state domain.HeartsState, now time.Time, interval time.Duration, maxHearts int) domain.HeartsState {
	next := RegenerateHearts(state.Hearts, state.LastLostAt, now, interval, maxHearts)

	if next >= maxHearts {
		state.Hearts = next
		state.LastLostAt = nil
		return state
	}

	gained := next - state.Hearts
	if gained > 0 {
		advanced := state.LastLostAt.Add(time.Duration(gained) * interval)
		state.LastLostAt = &advanced
	}
	state.Hearts = next
	return state
}

// NextHeartIn returns how long until the next heart regenerates, or 0 when
// the user is at the cap or no regeneration is running.
func NextHeartIn(state domain.HeartsState, now time.Time, interval time.Duration, maxHearts int) time.Duration {
	state = ApplyRegeneration(state, now, interval, maxHearts)
	if state.Hearts >= maxHearts || state.LastLostAt == nil {
		return 0
	}
	left := state.LastLostAt.Add(interval).Sub(now)
	if left < 0 {
		return 0
	}
	return left
}
