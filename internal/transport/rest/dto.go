package rest

import (
	"time"

	"github.com/heartmarshall/genius-progression/internal/domain"
	"github.com/heartmarshall/genius-progression/internal/service/progression"
)

// ---------------------------------------------------------------------------
// Requests
// ---------------------------------------------------------------------------

type swipeRequest struct {
	CardID    string `json:"cardId"`
	Category  string `json:"category"`
	Direction string `json:"direction"`
}

type startSessionRequest struct {
	SetID string `json:"setId"`
}

type reviewRequest struct {
	CardID  string `json:"cardId"`
	Correct bool   `json:"correct"`
}

type completeSessionRequest struct {
	SetID          string `json:"setId"`
	CardsStudied   int    `json:"cardsStudied"`
	CardsCorrect   int    `json:"cardsCorrect"`
	CardsIncorrect int    `json:"cardsIncorrect"`
	DurationMs     int64  `json:"durationMs"`
}

type premiumRequest struct {
	IsPremium bool `json:"isPremium"`
}

// ---------------------------------------------------------------------------
// Responses
// ---------------------------------------------------------------------------

type levelResponse struct {
	Level            int `json:"level"`
	CurrentXPInLevel int `json:"currentXpInLevel"`
	XPToNextLevel    int `json:"xpToNextLevel"`
}

type requirementResponse struct {
	Kind      string `json:"kind"`
	Threshold int    `json:"threshold"`
	Category  string `json:"category,omitempty"`
}

type achievementResponse struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Icon        string              `json:"icon"`
	Rarity      string              `json:"rarity"`
	Group       string              `json:"group,omitempty"`
	XPReward    int                 `json:"xpReward"`
	Requirement requirementResponse `json:"requirement"`
}

type rewardResponse struct {
	XPGranted       int                   `json:"xpGranted"`
	TotalXP         int                   `json:"totalXp"`
	Level           levelResponse         `json:"level"`
	LeveledUp       bool                  `json:"leveledUp"`
	NewAchievement  *achievementResponse  `json:"newAchievement,omitempty"`
	NewAchievements []achievementResponse `json:"newAchievements"`
	Streak          string                `json:"streak"`
	CurrentStreak   int                   `json:"currentStreak"`
	Persisted       bool                  `json:"persisted"`
}

type heartsResponse struct {
	Hearts             int  `json:"hearts"`
	MaxHearts          int  `json:"maxHearts"`
	IsPremium          bool `json:"isPremium"`
	NextHeartInSeconds int  `json:"nextHeartInSeconds"`
	Persisted          bool `json:"persisted"`
}

type progressResponse struct {
	TotalXP            int            `json:"totalXp"`
	Level              levelResponse  `json:"level"`
	CurrentStreak      int            `json:"currentStreak"`
	LongestStreak      int            `json:"longestStreak"`
	LastActivityDate   *string        `json:"lastActivityDate,omitempty"`
	TotalCardsViewed   int            `json:"totalCardsViewed"`
	TotalCardsSaved    int            `json:"totalCardsSaved"`
	CategoriesExplored []string       `json:"categoriesExplored"`
	CategoryXP         map[string]int `json:"categoryXp"`
	TotalSessions      int            `json:"totalSessions"`
	PerfectSessions    int            `json:"perfectSessions"`
}

type achievementViewResponse struct {
	Achievement achievementResponse `json:"achievement"`
	Status      string              `json:"status"`
	Progress    int                 `json:"progress"`
	MaxProgress int                 `json:"maxProgress"`
	UnlockedAt  *time.Time          `json:"unlockedAt,omitempty"`
}

type unlockSummaryResponse struct {
	Total      int `json:"total"`
	Unlocked   int `json:"unlocked"`
	Percentage int `json:"percentage"`
}

type achievementsResponse struct {
	Achievements []achievementViewResponse `json:"achievements"`
	Summary      unlockSummaryResponse     `json:"summary"`
}

type flashcardResponse struct {
	ID           string `json:"id"`
	Question     string `json:"question"`
	Answer       string `json:"answer"`
	Difficulty   string `json:"difficulty"`
	MasteryLevel int    `json:"masteryLevel"`
}

type sessionResponse struct {
	SetID        string              `json:"setId"`
	Title        string              `json:"title"`
	TotalReviews int                 `json:"totalReviews"`
	Cards        []flashcardResponse `json:"cards"`
}

type reviewResponse struct {
	Card             flashcardResponse `json:"card"`
	SessionCorrect   int               `json:"sessionCorrect"`
	SessionIncorrect int               `json:"sessionIncorrect"`
	Persisted        bool              `json:"persisted"`
}

type importResponse struct {
	Unlocked  int  `json:"unlocked"`
	Skipped   int  `json:"skipped"`
	Persisted bool `json:"persisted"`
}

type savedCardResponse struct {
	CardID   string    `json:"cardId"`
	Category string    `json:"category,omitempty"`
	SavedAt  time.Time `json:"savedAt"`
}

// ---------------------------------------------------------------------------
// Mapping
// ---------------------------------------------------------------------------

func toLevelResponse(l domain.LevelProgress) levelResponse {
	return levelResponse{
		Level:            l.Level,
		CurrentXPInLevel: l.CurrentXPInLevel,
		XPToNextLevel:    l.XPToNextLevel,
	}
}

func toAchievementResponse(a domain.Achievement) achievementResponse {
	return achievementResponse{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Icon:        a.Icon,
		Rarity:      a.Rarity.String(),
		Group:       a.Group,
		XPReward:    a.XPReward,
		Requirement: requirementResponse{
			Kind:      a.Requirement.Kind.String(),
			Threshold: a.Requirement.Threshold,
			Category:  a.Requirement.Category,
		},
	}
}

func toRewardResponse(r domain.Reward) rewardResponse {
	resp := rewardResponse{
		XPGranted:       r.XPGranted,
		TotalXP:         r.TotalXP,
		Level:           toLevelResponse(r.Level),
		LeveledUp:       r.LeveledUp,
		NewAchievements: make([]achievementResponse, 0, len(r.NewAchievements)),
		Streak:          r.Streak.String(),
		CurrentStreak:   r.CurrentStreak,
		Persisted:       r.Warning == nil,
	}
	for _, a := range r.NewAchievements {
		resp.NewAchievements = append(resp.NewAchievements, toAchievementResponse(a))
	}
	if first := r.NewAchievement(); first != nil {
		a := toAchievementResponse(*first)
		resp.NewAchievement = &a
	}
	return resp
}

func toHeartsResponse(s domain.HeartsStatus) heartsResponse {
	return heartsResponse{
		Hearts:             s.Hearts,
		MaxHearts:          s.MaxHearts,
		IsPremium:          s.IsPremium,
		NextHeartInSeconds: int((s.NextHeartIn + time.Second - 1) / time.Second),
		Persisted:          s.Warning == nil,
	}
}

func toProgressResponse(v domain.ProgressView) progressResponse {
	s := v.Stats
	resp := progressResponse{
		TotalXP:            s.TotalXP,
		Level:              toLevelResponse(v.Level),
		CurrentStreak:      s.CurrentStreak,
		LongestStreak:      s.LongestStreak,
		TotalCardsViewed:   s.TotalCardsViewed,
		TotalCardsSaved:    s.TotalCardsSaved,
		CategoriesExplored: s.Categories(),
		CategoryXP:         s.CategoryXP,
		TotalSessions:      s.TotalSessions,
		PerfectSessions:    s.PerfectSessions,
	}
	if resp.CategoryXP == nil {
		resp.CategoryXP = map[string]int{}
	}
	if s.LastActivityDate != nil {
		d := s.LastActivityDate.Format(time.DateOnly)
		resp.LastActivityDate = &d
	}
	return resp
}

func toAchievementsResponse(views []domain.AchievementView, summary domain.UnlockSummary) achievementsResponse {
	resp := achievementsResponse{
		Achievements: make([]achievementViewResponse, 0, len(views)),
		Summary: unlockSummaryResponse{
			Total:      summary.Total,
			Unlocked:   summary.Unlocked,
			Percentage: summary.Percentage,
		},
	}
	for _, v := range views {
		item := achievementViewResponse{
			Achievement: toAchievementResponse(v.Achievement),
			Status:      string(v.Status),
			Progress:    v.Progress,
			MaxProgress: v.MaxProgress,
		}
		if v.UnlockedAt != nil {
			at := v.UnlockedAt.UnlockedAt
			item.UnlockedAt = &at
		}
		resp.Achievements = append(resp.Achievements, item)
	}
	return resp
}

func toFlashcardResponse(c domain.Flashcard) flashcardResponse {
	return flashcardResponse{
		ID:           c.ID,
		Question:     c.Question,
		Answer:       c.Answer,
		Difficulty:   c.Difficulty.String(),
		MasteryLevel: c.MasteryLevel,
	}
}

func toSessionResponse(set *domain.FlashcardSet) sessionResponse {
	resp := sessionResponse{
		SetID:        set.ID,
		Title:        set.Title,
		TotalReviews: set.TotalReviews,
		Cards:        make([]flashcardResponse, 0, len(set.Cards)),
	}
	for _, c := range set.Cards {
		resp.Cards = append(resp.Cards, toFlashcardResponse(c))
	}
	return resp
}

func toReviewResponse(o progression.ReviewOutcome) reviewResponse {
	return reviewResponse{
		Card:             toFlashcardResponse(o.Card),
		SessionCorrect:   o.SessionCorrect,
		SessionIncorrect: o.SessionIncorrect,
		Persisted:        o.Warning == nil,
	}
}
