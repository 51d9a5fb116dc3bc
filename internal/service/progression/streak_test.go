package progression

import (
	"testing"
	"time"

	"github.com/heartmarshall/genius-progression/internal/domain"
	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestUpdateStreak(t *testing.T) {
	t.Parallel()

	d := day(2024, 3, 10)

	tests := []struct {
		name    string
		last    *time.Time
		today   time.Time
		current int
		longest int
		want    StreakResult
	}{
		{
			name:  "first activity",
			last:  nil,
			today: d,
			want:  StreakResult{Current: 1, Longest: 1, Change: domain.StreakStarted},
		},
		{
			name:    "same day is idempotent",
			last:    ptr(d),
			today:   d,
			current: 4, longest: 6,
			want: StreakResult{Current: 4, Longest: 6, Change: domain.StreakUnchanged},
		},
		{
			name:    "next day extends",
			last:    ptr(d),
			today:   d.AddDate(0, 0, 1),
			current: 4, longest: 4,
			want: StreakResult{Current: 5, Longest: 5, Change: domain.StreakExtended},
		},
		{
			name:    "gap of two days resets",
			last:    ptr(d),
			today:   d.AddDate(0, 0, 2),
			current: 4, longest: 9,
			want: StreakResult{Current: 1, Longest: 9, Change: domain.StreakReset},
		},
		{
			name:    "gap of three days resets",
			last:    ptr(d),
			today:   d.AddDate(0, 0, 3),
			current: 12, longest: 12,
			want: StreakResult{Current: 1, Longest: 12, Change: domain.StreakReset},
		},
		{
			name:    "clock skew resets without error",
			last:    ptr(d),
			today:   d.AddDate(0, 0, -1),
			current: 3, longest: 3,
			want: StreakResult{Current: 1, Longest: 3, Change: domain.StreakReset},
		},
		{
			name:    "month boundary extends",
			last:    ptr(day(2024, 2, 29)),
			today:   day(2024, 3, 1),
			current: 2, longest: 2,
			want: StreakResult{Current: 3, Longest: 3, Change: domain.StreakExtended},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := UpdateStreak(tt.last, tt.today, tt.current, tt.longest)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUpdateStreak_SecondCallSameDayChangesNothing(t *testing.T) {
	t.Parallel()

	last := day(2024, 3, 10)
	today := last.AddDate(0, 0, 1)

	first := UpdateStreak(&last, today, 7, 7)
	second := UpdateStreak(&today, today, first.Current, first.Longest)

	assert.Equal(t, first.Current, second.Current)
	assert.Equal(t, first.Longest, second.Longest)
	assert.Equal(t, domain.StreakUnchanged, second.Change)
}

func TestDateOf(t *testing.T) {
	t.Parallel()

	instant := time.Date(2024, 2, 15, 20, 30, 0, 0, time.UTC)

	tests := []struct {
		tz   string
		want time.Time
	}{
		{tz: "UTC", want: day(2024, 2, 15)},
		{tz: "America/New_York", want: day(2024, 2, 15)},
		{tz: "Asia/Tokyo", want: day(2024, 2, 16)},
	}

	for _, tt := range tests {
		t.Run(tt.tz, func(t *testing.T) {
			t.Parallel()
			got := DateOf(instant, ParseTimezone(tt.tz))
			assert.True(t, tt.want.Equal(got), "DateOf() = %v, want %v", got, tt.want)
		})
	}
}

func TestDateOf_DSTDayStepsByOne(t *testing.T) {
	t.Parallel()

	loc := ParseTimezone("America/New_York")
	before := DateOf(time.Date(2024, 3, 9, 23, 0, 0, 0, loc), loc)
	after := DateOf(time.Date(2024, 3, 10, 23, 0, 0, 0, loc), loc)

	res := UpdateStreak(&before, after, 1, 1)
	assert.Equal(t, domain.StreakExtended, res.Change)
}

func TestParseTimezone_InvalidFallsBackToUTC(t *testing.T) {
	t.Parallel()

	assert.Equal(t, time.UTC, ParseTimezone("Not/AZone"))
}

func ptr[T any](v T) *T { return &v }
