package progression

import (
	"time"

	"github.com/heartmarshall/genius-progression/internal/domain"
)

// StreakResult is the outcome of UpdateStreak.
type StreakResult struct {
	Current int
	Longest int
	Change  domain.StreakChange
}

// UpdateStreak advances a daily streak for an activity on today.
//
//   - no previous activity: streak starts at 1
//   - same calendar day: no change
//   - exactly one day later: streak + 1
//   - anything else (gap or today before last): reset to 1
//
// Longest is always max(longest, current). Both dates must come from DateOf.
func UpdateStreak(last *time.Time, today time.Time, current, longest int) StreakResult {
	res := StreakResult{Current: current, Longest: longest, Change: domain.StreakUnchanged}

	switch {
	case last == nil:
		res.Current = 1
		res.Change = domain.StreakStarted
	case sameDay(*last, today):
		// already counted today
	case sameDay(last.AddDate(0, 0, 1), today):
		res.Current = current + 1
		res.Change = domain.StreakExtended
	default:
		res.Current = 1
		res.Change = domain.StreakReset
	}

	res.Longest = max(res.Longest, res.Current)
	return res
}

// DateOf returns the calendar date of t in loc as midnight UTC, so dates from
// different zones compare and step by whole days.
func DateOf(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseTimezone parses a timezone string, returning UTC as fallback.
func ParseTimezone(tz string) *time.Location {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
