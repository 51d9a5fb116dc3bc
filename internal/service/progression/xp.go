package progression

import (
	"math"

	"github.com/heartmarshall/genius-progression/internal/domain"
)

// SwipeXP is the XP for viewing one fact card, with a bonus when it is saved.
func SwipeXP(direction domain.SwipeDirection, cfg domain.ProgressionConfig) int {
	xp := cfg.SwipeXP
	if direction == domain.SwipeRight {
		xp += cfg.SaveBonusXP
	}
	return xp
}

// SessionXP is the XP for a completed flashcard session: a per-card base
// scaled by accuracy, plus a flat bonus for a perfect session.
func SessionXP(summary domain.SessionSummary, cfg domain.ProgressionConfig) int {
	if summary.CardsStudied <= 0 {
		return 0
	}
	base := float64(cfg.SessionXPPerCard * summary.CardsStudied)
	xp := int(math.Round(base * summary.Accuracy()))
	if summary.IsPerfect() {
		xp += cfg.PerfectSessionBonusXP
	}
	return xp
}
