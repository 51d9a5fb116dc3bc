package progression

import (
	"errors"
	"testing"

	"github.com/heartmarshall/genius-progression/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	t.Parallel()

	c := DefaultCatalog()
	require.NotZero(t, c.Len())

	seen := make(map[string]bool)
	for _, a := range c.All() {
		assert.False(t, seen[a.ID], "duplicate id %s", a.ID)
		seen[a.ID] = true
		assert.True(t, a.Requirement.Kind.IsValid(), "%s has unknown kind", a.ID)
		assert.True(t, a.Rarity.IsValid(), "%s has unknown rarity", a.ID)
	}

	for _, c2 := range Categories {
		a, ok := c.Get(c2 + "_master")
		require.True(t, ok, "missing master badge for %s", c2)
		assert.Equal(t, domain.RequirementCategoryLevel, a.Requirement.Kind)
		assert.Equal(t, c2, a.Requirement.Category)
	}

	a, ok := c.Get("ralph_friend")
	require.True(t, ok)
	assert.True(t, a.IsSpecial())
}

func TestCatalog_AllReturnsCopy(t *testing.T) {
	t.Parallel()

	c := DefaultCatalog()
	all := c.All()
	all[0].ID = "mutated"

	assert.NotEqual(t, "mutated", c.All()[0].ID)
}

func TestNewCatalog_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		list  []domain.Achievement
		field string
	}{
		{
			name:  "unknown kind",
			list:  []domain.Achievement{achievement("a", domain.Requirement{Kind: "timeOfDay", Threshold: 1}, 0)},
			field: "achievements[0].requirement.kind",
		},
		{
			name: "duplicate id",
			list: []domain.Achievement{
				achievement("a", req(domain.RequirementXP, 1), 0),
				achievement("a", req(domain.RequirementXP, 2), 0),
			},
			field: "achievements[1].id",
		},
		{
			name:  "missing id",
			list:  []domain.Achievement{achievement("", req(domain.RequirementXP, 1), 0)},
			field: "achievements[0].id",
		},
		{
			name:  "zero threshold",
			list:  []domain.Achievement{achievement("a", req(domain.RequirementCardsViewed, 0), 0)},
			field: "achievements[0].requirement.threshold",
		},
		{
			name:  "category level without category",
			list:  []domain.Achievement{achievement("a", req(domain.RequirementCategoryLevel, 3), 0)},
			field: "achievements[0].requirement.category",
		},
		{
			name:  "negative reward",
			list:  []domain.Achievement{achievement("a", req(domain.RequirementXP, 1), -5)},
			field: "achievements[0].xp_reward",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := NewCatalog(tt.list)
			require.Error(t, err)
			assert.Nil(t, c)
			assert.ErrorIs(t, err, domain.ErrValidation)

			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			fields := make([]string, 0, len(ve.Errors))
			for _, fe := range ve.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestMustCatalog_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		MustCatalog([]domain.Achievement{achievement("a", domain.Requirement{Kind: "bogus"}, 0)})
	})
}
