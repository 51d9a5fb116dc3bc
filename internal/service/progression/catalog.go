package progression

import (
	"fmt"
	"slices"

	"github.com/heartmarshall/genius-progression/internal/domain"
)

// Catalog is a validated, ordered list of achievements. Declaration order is
// the unlock order when several achievements become satisfied at once.
type Catalog struct {
	items []domain.Achievement
	byID  map[string]int
}

// NewCatalog validates the achievements and builds a catalog. Every
// requirement kind must be known, ids unique, numeric thresholds positive and
// category-level requirements must name a category.
func NewCatalog(achievements []domain.Achievement) (*Catalog, error) {
	var errs []domain.FieldError
	byID := make(map[string]int, len(achievements))

	for i, a := range achievements {
		field := fmt.Sprintf("achievements[%d]", i)
		if a.ID == "" {
			errs = append(errs, domain.FieldError{Field: field + ".id", Message: "required"})
		} else if _, dup := byID[a.ID]; dup {
			errs = append(errs, domain.FieldError{Field: field + ".id", Message: fmt.Sprintf("duplicate id %q", a.ID)})
		} else {
			byID[a.ID] = i
		}

		req := a.Requirement
		if !req.Kind.IsValid() {
			errs = append(errs, domain.FieldError{Field: field + ".requirement.kind", Message: fmt.Sprintf("unknown kind %q", req.Kind)})
			continue
		}
		if req.Kind != domain.RequirementSpecial && req.Threshold <= 0 {
			errs = append(errs, domain.FieldError{Field: field + ".requirement.threshold", Message: "must be > 0"})
		}
		if req.Kind == domain.RequirementCategoryLevel && req.Category == "" {
			errs = append(errs, domain.FieldError{Field: field + ".requirement.category", Message: "required for categoryLevel"})
		}
		if a.XPReward < 0 {
			errs = append(errs, domain.FieldError{Field: field + ".xp_reward", Message: "must be >= 0"})
		}
	}

	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}

	items := make([]domain.Achievement, len(achievements))
	copy(items, achievements)
	return &Catalog{items: items, byID: byID}, nil
}

// MustCatalog is NewCatalog that panics on an invalid build-time table.
func MustCatalog(achievements []domain.Achievement) *Catalog {
	c, err := NewCatalog(achievements)
	if err != nil {
		panic(fmt.Sprintf("progression: invalid catalog: %v", err))
	}
	return c
}

// All returns a copy of the achievements in declaration order.
func (c *Catalog) All() []domain.Achievement {
	return slices.Clone(c.items)
}

// Get looks up an achievement by id.
func (c *Catalog) Get(id string) (domain.Achievement, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Achievement{}, false
	}
	return c.items[i], true
}

// Len returns the number of achievements.
func (c *Catalog) Len() int { return len(c.items) }

// DefaultCatalog returns the built-in achievements and badges.
func DefaultCatalog() *Catalog {
	return MustCatalog(defaultAchievements())
}

func req(kind domain.RequirementKind, threshold int) domain.Requirement {
	return domain.Requirement{Kind: kind, Threshold: threshold}
}

func categoryReq(category string, level int) domain.Requirement {
	return domain.Requirement{Kind: domain.RequirementCategoryLevel, Threshold: level, Category: category}
}

func special() domain.Requirement {
	return domain.Requirement{Kind: domain.RequirementSpecial}
}

// Categories of fact cards.
var Categories = []string{"science", "art", "history", "geography", "sport", "music", "cinema", "literature"}

func defaultAchievements() []domain.Achievement {
	list := []domain.Achievement{
		// learning
		{ID: "first_fact", Title: "First Steps", Description: "Discover your first fact", Icon: "👣", Rarity: domain.RarityCommon, Group: "learning", Requirement: req(domain.RequirementCardsViewed, 1), XPReward: 10},
		{ID: "curious_mind", Title: "Curious Mind", Description: "Discover 10 facts", Icon: "🧐", Rarity: domain.RarityCommon, Group: "learning", Requirement: req(domain.RequirementCardsViewed, 10), XPReward: 25},
		{ID: "knowledge_seeker", Title: "Knowledge Seeker", Description: "Discover 50 facts", Icon: "🔍", Rarity: domain.RarityRare, Group: "learning", Requirement: req(domain.RequirementCardsViewed, 50), XPReward: 100},
		{ID: "fact_enthusiast", Title: "Fact Enthusiast", Description: "Discover 100 facts", Icon: "📚", Rarity: domain.RarityRare, Group: "learning", Requirement: req(domain.RequirementCardsViewed, 100), XPReward: 200},
		{ID: "walking_encyclopedia", Title: "Walking Encyclopedia", Description: "Discover 500 facts", Icon: "🎓", Rarity: domain.RarityEpic, Group: "learning", Requirement: req(domain.RequirementCardsViewed, 500), XPReward: 500},
		{ID: "genius_mind", Title: "Genius Mind", Description: "Discover 1000 facts", Icon: "🧠", Rarity: domain.RarityLegendary, Group: "learning", Requirement: req(domain.RequirementCardsViewed, 1000), XPReward: 1000},

		// collection
		{ID: "collector_starter", Title: "Starting a Collection", Description: "Save 5 favourite facts", Icon: "⭐", Rarity: domain.RarityCommon, Group: "collection", Requirement: req(domain.RequirementCardsSaved, 5), XPReward: 15},
		{ID: "avid_collector", Title: "Avid Collector", Description: "Save 25 favourite facts", Icon: "💎", Rarity: domain.RarityRare, Group: "collection", Requirement: req(domain.RequirementCardsSaved, 25), XPReward: 75},
		{ID: "treasure_hunter", Title: "Treasure Hunter", Description: "Save 100 favourite facts", Icon: "🏆", Rarity: domain.RarityEpic, Group: "collection", Requirement: req(domain.RequirementCardsSaved, 100), XPReward: 300},
		{ID: "master_curator", Title: "Master Curator", Description: "Save 250 favourite facts", Icon: "👑", Rarity: domain.RarityLegendary, Group: "collection", Requirement: req(domain.RequirementCardsSaved, 250), XPReward: 750},

		// streak
		{ID: "streak_3", Title: "Good Start", Description: "Keep a 3 day streak", Icon: "🔥", Rarity: domain.RarityCommon, Group: "streak", Requirement: req(domain.RequirementStreak, 3), XPReward: 30},
		{ID: "streak_7", Title: "Week on Fire", Description: "Keep a 7 day streak", Icon: "🔥", Rarity: domain.RarityRare, Group: "streak", Requirement: req(domain.RequirementStreak, 7), XPReward: 100},
		{ID: "streak_30", Title: "Perfect Month", Description: "Keep a 30 day streak", Icon: "💪", Rarity: domain.RarityEpic, Group: "streak", Requirement: req(domain.RequirementStreak, 30), XPReward: 500},
		{ID: "streak_100", Title: "Centenarian", Description: "Keep a 100 day streak", Icon: "⚡", Rarity: domain.RarityLegendary, Group: "streak", Requirement: req(domain.RequirementStreak, 100), XPReward: 2000},

		// xp
		{ID: "xp_100", Title: "Apprentice", Description: "Earn 100 XP", Icon: "✨", Rarity: domain.RarityCommon, Group: "mastery", Requirement: req(domain.RequirementXP, 100), XPReward: 20},
		{ID: "rising_star", Title: "Rising Star", Description: "Earn 500 XP", Icon: "🌠", Rarity: domain.RarityCommon, Group: "mastery", Requirement: req(domain.RequirementXP, 500), XPReward: 0},
		{ID: "xp_1000", Title: "Adept", Description: "Earn 1000 XP", Icon: "💫", Rarity: domain.RarityRare, Group: "mastery", Requirement: req(domain.RequirementXP, 1000), XPReward: 100},
		{ID: "xp_5000", Title: "Expert", Description: "Earn 5000 XP", Icon: "🌟", Rarity: domain.RarityEpic, Group: "mastery", Requirement: req(domain.RequirementXP, 5000), XPReward: 300},
		{ID: "xp_10000", Title: "Master", Description: "Earn 10000 XP", Icon: "⭐", Rarity: domain.RarityLegendary, Group: "mastery", Requirement: req(domain.RequirementXP, 10000), XPReward: 1000},

		// level
		{ID: "level_5", Title: "Level 5", Description: "Reach level 5", Icon: "5⃣", Rarity: domain.RarityCommon, Group: "mastery", Requirement: req(domain.RequirementLevel, 5), XPReward: 50},
		{ID: "level_10", Title: "Level 10", Description: "Reach level 10", Icon: "🔟", Rarity: domain.RarityRare, Group: "mastery", Requirement: req(domain.RequirementLevel, 10), XPReward: 150},
		{ID: "level_25", Title: "Level 25", Description: "Reach level 25", Icon: "🎯", Rarity: domain.RarityEpic, Group: "mastery", Requirement: req(domain.RequirementLevel, 25), XPReward: 400},
		{ID: "level_50", Title: "Level 50", Description: "Reach level 50", Icon: "🏅", Rarity: domain.RarityLegendary, Group: "mastery", Requirement: req(domain.RequirementLevel, 50), XPReward: 1000},

		// flashcards
		{ID: "quiz_perfect", Title: "Flawless", Description: "Finish a flashcard session without a mistake", Icon: "💯", Rarity: domain.RarityRare, Group: "mastery", Requirement: req(domain.RequirementPerfectSessions, 1), XPReward: 150},

		// categories
		{ID: "polymath", Title: "Polymath", Description: "Explore six categories", Icon: "🌈", Rarity: domain.RarityEpic, Group: "learning", Requirement: req(domain.RequirementCategoriesExplored, 6), XPReward: 250},
	}

	masters := map[string][2]string{
		"science":    {"Scientist", "🔬"},
		"art":        {"Artist", "🎨"},
		"history":    {"Historian", "🏺"},
		"geography":  {"Explorer", "🌍"},
		"sport":      {"Athlete", "⚽"},
		"music":      {"Music Lover", "🎵"},
		"cinema":     {"Film Buff", "🎬"},
		"literature": {"Scholar", "📜"},
	}
	for _, c := range Categories {
		m := masters[c]
		list = append(list, domain.Achievement{
			ID:          c + "_master",
			Title:       m[0],
			Description: "Reach level 5 in " + c,
			Icon:        m[1],
			Rarity:      domain.RarityRare,
			Group:       "category",
			Requirement: categoryReq(c, 5),
		})
	}

	// special: granted by external triggers
	list = append(list,
		domain.Achievement{ID: "night_owl", Title: "Night Owl", Description: "Learn after midnight", Icon: "🦉", Rarity: domain.RarityRare, Group: "special", Requirement: special(), XPReward: 50},
		domain.Achievement{ID: "early_bird", Title: "Early Bird", Description: "Learn before 7am", Icon: "🐦", Rarity: domain.RarityRare, Group: "special", Requirement: special(), XPReward: 50},
		domain.Achievement{ID: "weekend_warrior", Title: "Weekend Warrior", Description: "Learn on both weekend days", Icon: "⚔️", Rarity: domain.RarityRare, Group: "special", Requirement: special(), XPReward: 75},
		domain.Achievement{ID: "ralph_friend", Title: "Ralph's Friend", Description: "Complete onboarding", Icon: "🐘", Rarity: domain.RarityCommon, Group: "special", Requirement: special(), XPReward: 25},
	)

	return list
}
