package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// UserStats is the per-user progression aggregate.
type UserStats struct {
	UserID             uuid.UUID
	TotalXP            int
	CurrentStreak      int
	LongestStreak      int
	LastActivityDate   *time.Time // calendar day, midnight UTC
	TotalCardsViewed   int
	TotalCardsSaved    int
	CategoriesExplored map[string]struct{}
	CategoryXP         map[string]int
	TotalSessions      int
	PerfectSessions    int
	UpdatedAt          time.Time
}

// NewUserStats returns the all-zero stats a user starts with.
func NewUserStats(userID uuid.UUID) *UserStats {
	return &UserStats{
		UserID:             userID,
		CategoriesExplored: make(map[string]struct{}),
		CategoryXP:         make(map[string]int),
	}
}

// ExploreCategory records a category as explored.
func (s *UserStats) ExploreCategory(category string) {
	if category == "" {
		return
	}
	if s.CategoriesExplored == nil {
		s.CategoriesExplored = make(map[string]struct{})
	}
	s.CategoriesExplored[category] = struct{}{}
}

// Categories returns the explored categories sorted by name.
func (s *UserStats) Categories() []string {
	out := make([]string, 0, len(s.CategoriesExplored))
	for c := range s.CategoriesExplored {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// Clone returns a deep copy, so callers can snapshot state before mutating it.
func (s *UserStats) Clone() *UserStats {
	c := *s
	if s.LastActivityDate != nil {
		d := *s.LastActivityDate
		c.LastActivityDate = &d
	}
	c.CategoriesExplored = make(map[string]struct{}, len(s.CategoriesExplored))
	for k := range s.CategoriesExplored {
		c.CategoriesExplored[k] = struct{}{}
	}
	c.CategoryXP = make(map[string]int, len(s.CategoryXP))
	for k, v := range s.CategoryXP {
		c.CategoryXP[k] = v
	}
	return &c
}

// LevelProgress is a position on the XP curve.
type LevelProgress struct {
	Level            int
	CurrentXPInLevel int
	XPToNextLevel    int
}

// UnlockRecord is the append-only proof that an achievement was unlocked.
type UnlockRecord struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	AchievementID    string
	UnlockedAt       time.Time
	ProgressAtUnlock int
}

// HeartsState is the capped, time-regenerating session resource.
type HeartsState struct {
	UserID     uuid.UUID
	Hearts     int
	LastLostAt *time.Time
	IsPremium  bool
}

// Reward is what a progression event returns to the UI.
// XPGranted includes the XP reward of any achievement unlocked by the event.
type Reward struct {
	XPGranted       int
	TotalXP         int
	Level           LevelProgress
	LeveledUp       bool
	NewAchievements []Achievement
	Streak          StreakChange
	CurrentStreak   int
	// Warning is non-nil when the state change could not be persisted.
	// The change itself stands.
	Warning error
}

// NewAchievement returns the first achievement unlocked by the event, if any.
func (r Reward) NewAchievement() *Achievement {
	if len(r.NewAchievements) == 0 {
		return nil
	}
	a := r.NewAchievements[0]
	return &a
}

// HeartsStatus is the hearts view returned to the UI.
type HeartsStatus struct {
	Hearts      int
	MaxHearts   int
	IsPremium   bool
	NextHeartIn time.Duration
	Warning     error
}

// ProgressView is a read-only snapshot of a user's progression.
type ProgressView struct {
	Stats *UserStats
	Level LevelProgress
}

// ProgressionConfig holds the tunable reward constants (pure domain type).
type ProgressionConfig struct {
	SwipeXP                 int
	SaveBonusXP             int
	SessionXPPerCard        int
	PerfectSessionBonusXP   int
	MaxUnlocksPerEvaluation int
	MasteryCorrectStep      int
	MasteryIncorrectStep    int
	MaxHearts               int
	PremiumMaxHearts        int
	HeartRegenInterval      time.Duration
	Location                *time.Location
}

// DefaultProgressionConfig returns the reference reward constants.
func DefaultProgressionConfig() ProgressionConfig {
	return ProgressionConfig{
		SwipeXP:                 2,
		SaveBonusXP:             10,
		SessionXPPerCard:        10,
		PerfectSessionBonusXP:   50,
		MaxUnlocksPerEvaluation: 1,
		MasteryCorrectStep:      20,
		MasteryIncorrectStep:    15,
		MaxHearts:               5,
		PremiumMaxHearts:        10,
		HeartRegenInterval:      30 * time.Minute,
		Location:                time.UTC,
	}
}

// MaxHeartsFor returns the heart cap for the given account type.
func (c ProgressionConfig) MaxHeartsFor(premium bool) int {
	if premium {
		return c.PremiumMaxHearts
	}
	return c.MaxHearts
}
