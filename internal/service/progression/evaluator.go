package progression

import (
	"math"

	"github.com/heartmarshall/genius-progression/internal/domain"
)

// Evaluate checks one achievement against a stats snapshot. Pure function.
// Special achievements are never satisfied here; they are granted through
// Tracker.TriggerSpecial.
func Evaluate(stats *domain.UserStats, a domain.Achievement) domain.Evaluation {
	req := a.Requirement

	var progress int
	switch req.Kind {
	case domain.RequirementXP:
		progress = stats.TotalXP
	case domain.RequirementLevel:
		progress = LevelFromXP(stats.TotalXP).Level
	case domain.RequirementStreak:
		progress = stats.LongestStreak
	case domain.RequirementCardsViewed:
		progress = stats.TotalCardsViewed
	case domain.RequirementCardsSaved:
		progress = stats.TotalCardsSaved
	case domain.RequirementCategoriesExplored:
		progress = len(stats.CategoriesExplored)
	case domain.RequirementCategoryLevel:
		progress = LevelFromXP(stats.CategoryXP[req.Category]).Level
	case domain.RequirementPerfectSessions:
		progress = stats.PerfectSessions
	case domain.RequirementSpecial:
		return domain.Evaluation{}
	default:
		// Unreachable for catalogs built by NewCatalog.
		return domain.Evaluation{}
	}

	return domain.Evaluation{
		Satisfied: progress >= req.Threshold,
		Progress:  progress,
	}
}

// EvaluateAll returns the ids of achievements satisfied by stats and not yet
// unlocked, in declaration order.
func EvaluateAll(stats *domain.UserStats, achievements []domain.Achievement, unlocked map[string]bool) []string {
	var ids []string
	for _, a := range achievements {
		if unlocked[a.ID] {
			continue
		}
		if Evaluate(stats, a).Satisfied {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// NextUnlocks applies the per-pass unlock throttle: at most
// maxUnlocksPerEvaluation of the newly satisfied achievements, first in
// declaration order. The rest are picked up on later passes.
func NextUnlocks(stats *domain.UserStats, achievements []domain.Achievement, unlocked map[string]bool, maxUnlocksPerEvaluation int) []string {
	ids := EvaluateAll(stats, achievements, unlocked)
	if maxUnlocksPerEvaluation < 1 {
		maxUnlocksPerEvaluation = 1
	}
	if len(ids) > maxUnlocksPerEvaluation {
		ids = ids[:maxUnlocksPerEvaluation]
	}
	return ids
}

// ClampProgress limits a raw progress value to [0, threshold] for display.
func ClampProgress(progress int, req domain.Requirement) int {
	if req.Kind == domain.RequirementSpecial {
		return clamp(progress, 0, 1)
	}
	return clamp(progress, 0, req.Threshold)
}

// Statuses returns every catalog achievement with its display status, in
// declaration order, and the overall unlock summary.
func Statuses(stats *domain.UserStats, achievements []domain.Achievement, records map[string]domain.UnlockRecord) ([]domain.AchievementView, domain.UnlockSummary) {
	views := make([]domain.AchievementView, 0, len(achievements))
	unlocked := 0

	for _, a := range achievements {
		ev := Evaluate(stats, a)
		maxProgress := a.Requirement.Threshold
		if a.IsSpecial() {
			maxProgress = 1
		}

		view := domain.AchievementView{
			Achievement: a,
			Status:      domain.AchievementLocked,
			Progress:    ClampProgress(ev.Progress, a.Requirement),
			MaxProgress: maxProgress,
		}

		if rec, ok := records[a.ID]; ok {
			r := rec
			view.Status = domain.AchievementCompleted
			view.Progress = maxProgress
			view.UnlockedAt = &r
			unlocked++
		} else if ev.Progress > 0 {
			view.Status = domain.AchievementInProgress
		}

		views = append(views, view)
	}

	summary := domain.UnlockSummary{Total: len(achievements), Unlocked: unlocked}
	if summary.Total > 0 {
		summary.Percentage = int(math.Round(float64(unlocked) * 100 / float64(summary.Total)))
	}
	return views, summary
}
