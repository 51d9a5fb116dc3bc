package domain

// SwipeDirection is the direction a fact card was swiped.
// Right saves the card, left dismisses it.
type SwipeDirection string

const (
	SwipeLeft  SwipeDirection = "left"
	SwipeRight SwipeDirection = "right"
)

func (d SwipeDirection) String() string { return string(d) }

func (d SwipeDirection) IsValid() bool {
	switch d {
	case SwipeLeft, SwipeRight:
		return true
	}
	return false
}

// Difficulty of a flashcard.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) String() string { return string(d) }

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// RequirementKind selects which statistic an achievement requirement inspects.
type RequirementKind string

const (
	RequirementXP                 RequirementKind = "xp"
	RequirementLevel              RequirementKind = "level"
	RequirementStreak             RequirementKind = "streak"
	RequirementCardsViewed        RequirementKind = "cardsViewed"
	RequirementCardsSaved         RequirementKind = "cardsSaved"
	RequirementCategoriesExplored RequirementKind = "categoriesExplored"
	RequirementCategoryLevel      RequirementKind = "categoryLevel"
	RequirementPerfectSessions    RequirementKind = "perfectSessions"
	RequirementSpecial            RequirementKind = "special"
)

func (k RequirementKind) String() string { return string(k) }

func (k RequirementKind) IsValid() bool {
	switch k {
	case RequirementXP, RequirementLevel, RequirementStreak, RequirementCardsViewed,
		RequirementCardsSaved, RequirementCategoriesExplored, RequirementCategoryLevel,
		RequirementPerfectSessions, RequirementSpecial:
		return true
	}
	return false
}

// Rarity of an achievement, used by the UI for styling only.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

func (r Rarity) String() string { return string(r) }

func (r Rarity) IsValid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	}
	return false
}

// StreakChange describes what an activity did to the daily streak.
type StreakChange string

const (
	StreakUnchanged StreakChange = "unchanged"
	StreakStarted   StreakChange = "started"
	StreakExtended  StreakChange = "extended"
	StreakReset     StreakChange = "reset"
)

func (c StreakChange) String() string { return string(c) }

// AchievementStatus is the display state of an achievement for one user.
type AchievementStatus string

const (
	AchievementLocked     AchievementStatus = "locked"
	AchievementInProgress AchievementStatus = "inProgress"
	AchievementCompleted  AchievementStatus = "completed"
)
