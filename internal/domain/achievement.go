package domain

// Requirement is the declarative unlock condition of an achievement.
// Category is only meaningful for RequirementCategoryLevel; Threshold is
// ignored for RequirementSpecial.
type Requirement struct {
	Kind      RequirementKind
	Threshold int
	Category  string
}

// Achievement is a static, build-time unlockable milestone.
type Achievement struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Rarity      Rarity
	Group       string
	Requirement Requirement
	XPReward    int
}

// IsSpecial reports whether the achievement is granted by an external trigger.
func (a Achievement) IsSpecial() bool {
	return a.Requirement.Kind == RequirementSpecial
}

// Evaluation is the result of checking one requirement against stats.
// Progress is the raw statistic, not clamped to the threshold.
type Evaluation struct {
	Satisfied bool
	Progress  int
}

// AchievementView is an achievement with its per-user display status.
type AchievementView struct {
	Achievement Achievement
	Status      AchievementStatus
	Progress    int // clamped to [0, threshold]
	MaxProgress int
	UnlockedAt  *UnlockRecord
}

// UnlockSummary aggregates unlock progress across the catalog.
type UnlockSummary struct {
	Total      int
	Unlocked   int
	Percentage int
}
