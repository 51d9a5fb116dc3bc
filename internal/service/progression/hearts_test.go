package progression

import (
	"testing"
	"time"

	"github.com/heartmarshall/genius-progression/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const regen = 30 * time.Minute

func TestRegenerateHearts(t *testing.T) {
	t.Parallel()

	lost := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		hearts int
		last   *time.Time
		now    time.Time
		want   int
	}{
		{name: "full stays full", hearts: 5, last: &lost, now: lost.Add(5 * time.Hour), want: 5},
		{name: "no clock", hearts: 2, last: nil, now: lost.Add(5 * time.Hour), want: 2},
		{name: "under one interval", hearts: 2, last: &lost, now: lost.Add(29 * time.Minute), want: 2},
		{name: "one interval", hearts: 2, last: &lost, now: lost.Add(30 * time.Minute), want: 3},
		{name: "two and a half intervals", hearts: 1, last: &lost, now: lost.Add(75 * time.Minute), want: 3},
		{name: "capped", hearts: 3, last: &lost, now: lost.Add(10 * time.Hour), want: 5},
		{name: "now before last lost", hearts: 3, last: &lost, now: lost.Add(-time.Hour), want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := RegenerateHearts(tt.hearts, tt.last, tt.now, regen, 5)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyRegeneration_FullClearsClock(t *testing.T) {
	t.Parallel()

	lost := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	state := domain.HeartsState{Hearts: 3, LastLostAt: &lost}

	got := ApplyRegeneration(state, lost.Add(60*time.Minute), regen, 5)

	assert.Equal(t, 5, got.Hearts)
	assert.Nil(t, got.LastLostAt)
}

func TestApplyRegeneration_AdvancesClockByConsumedIntervals(t *testing.T) {
	t.Parallel()

	lost := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	state := domain.HeartsState{Hearts: 1, LastLostAt: &lost}

	got := ApplyRegeneration(state, lost.Add(70*time.Minute), regen, 5)

	assert.Equal(t, 3, got.Hearts)
	require.NotNil(t, got.LastLostAt)
	assert.True(t, lost.Add(60*time.Minute).Equal(*got.LastLostAt))
	// input is not mutated
	assert.True(t, lost.Equal(*state.LastLostAt))
}

func TestApplyRegeneration_SplitIntervalsMatchSingleCall(t *testing.T) {
	t.Parallel()

	lost := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	start := domain.HeartsState{Hearts: 0, LastLostAt: &lost}

	splits := []time.Duration{
		time.Second, 17 * time.Minute, 29*time.Minute + 59*time.Second, 31 * time.Minute, 44 * time.Minute, 90 * time.Minute,
	}

	for _, first := range splits {
		for _, total := range []time.Duration{45 * time.Minute, 95 * time.Minute, 2 * time.Hour, 4 * time.Hour} {
			if first > total {
				continue
			}
			single := ApplyRegeneration(start, lost.Add(total), regen, 5)

			mid := ApplyRegeneration(start, lost.Add(first), regen, 5)
			split := ApplyRegeneration(mid, lost.Add(total), regen, 5)

			assert.Equal(t, single.Hearts, split.Hearts, "first=%v total=%v", first, total)
			assert.True(t, equalTime(single.LastLostAt, split.LastLostAt), "first=%v total=%v", first, total)
		}
	}
}

func TestRegenerateHearts_StaysWithinBounds(t *testing.T) {
	t.Parallel()

	lost := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for hearts := 0; hearts <= 5; hearts++ {
		for m := 0; m < 400; m += 13 {
			got := RegenerateHearts(hearts, &lost, lost.Add(time.Duration(m)*time.Minute), regen, 5)
			if got < hearts || got > 5 {
				t.Fatalf("RegenerateHearts(%d, +%dm) = %d, outside [%d, 5]", hearts, m, got, hearts)
			}
		}
	}
}

func TestNextHeartIn(t *testing.T) {
	t.Parallel()

	lost := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, 20*time.Minute, NextHeartIn(domain.HeartsState{Hearts: 2, LastLostAt: &lost}, lost.Add(10*time.Minute), regen, 5))
	assert.Equal(t, 25*time.Minute, NextHeartIn(domain.HeartsState{Hearts: 2, LastLostAt: &lost}, lost.Add(35*time.Minute), regen, 5))
	assert.Zero(t, NextHeartIn(domain.HeartsState{Hearts: 5}, lost, regen, 5))
	assert.Zero(t, NextHeartIn(domain.HeartsState{Hearts: 4, LastLostAt: &lost}, lost.Add(time.Hour), regen, 5))
}
