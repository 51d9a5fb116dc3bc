package domain

import "testing"

func TestSwipeDirection_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dir  SwipeDirection
		want bool
	}{
		{SwipeLeft, true},
		{SwipeRight, true},
		{SwipeDirection("up"), false},
		{SwipeDirection(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.dir), func(t *testing.T) {
			t.Parallel()
			if got := tt.dir.IsValid(); got != tt.want {
				t.Errorf("SwipeDirection(%q).IsValid() = %v, want %v", tt.dir, got, tt.want)
			}
		})
	}
}

func TestDifficulty_IsValid(t *testing.T) {
	t.Parallel()

	for _, d := range []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard} {
		if !d.IsValid() {
			t.Errorf("Difficulty(%q).IsValid() = false", d)
		}
	}
	if Difficulty("impossible").IsValid() {
		t.Error("Difficulty(impossible).IsValid() = true")
	}
}

func TestRequirementKind_IsValid(t *testing.T) {
	t.Parallel()

	valid := []RequirementKind{
		RequirementXP, RequirementLevel, RequirementStreak, RequirementCardsViewed,
		RequirementCardsSaved, RequirementCategoriesExplored, RequirementCategoryLevel,
		RequirementPerfectSessions, RequirementSpecial,
	}
	for _, k := range valid {
		if !k.IsValid() {
			t.Errorf("RequirementKind(%q).IsValid() = false", k)
		}
	}
	for _, k := range []RequirementKind{"", "timeOfDay", "XP"} {
		if k.IsValid() {
			t.Errorf("RequirementKind(%q).IsValid() = true", k)
		}
	}
}

func TestRarity_IsValid(t *testing.T) {
	t.Parallel()

	if !RarityLegendary.IsValid() {
		t.Error("RarityLegendary.IsValid() = false")
	}
	if Rarity("mythic").IsValid() {
		t.Error("Rarity(mythic).IsValid() = true")
	}
}

func TestStreakChange_String(t *testing.T) {
	t.Parallel()
	if got := StreakExtended.String(); got != "extended" {
		t.Errorf("got %q, want extended", got)
	}
}
