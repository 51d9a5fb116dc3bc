package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/genius-progression/internal/config"
	"github.com/heartmarshall/genius-progression/internal/domain"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), config.SQLiteConfig{Path: MemoryPath, BusyTimeout: time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// ---------------------------------------------------------------------------
// Store
// ---------------------------------------------------------------------------

func TestOpen_FileCreatesDirectoryAndMigratesOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "progression.db")
	cfg := config.SQLiteConfig{Path: path, BusyTimeout: time.Second}

	s, err := Open(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, s.Ping(ctx))

	n, err := s.Migrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "second migrate must be a no-op")
	require.NoError(t, s.Close())

	reopened, err := Open(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, reopened.Close())
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	ctx := context.Background()
	userID := uuid.New()
	errBoom := errors.New("boom")

	err := s.RunInTx(ctx, func(ctx context.Context) error {
		require.NoError(t, s.Hearts().Save(ctx, domain.HeartsState{UserID: userID, Hearts: 5}))
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	_, err = s.Hearts().Get(ctx, userID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRunInTx_Commit(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	ctx := context.Background()
	userID := uuid.New()

	err := s.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.Hearts().Save(ctx, domain.HeartsState{UserID: userID, Hearts: 4}); err != nil {
			return err
		}
		return s.Stats().Save(ctx, domain.NewUserStats(userID))
	})
	require.NoError(t, err)

	h, err := s.Hearts().Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 4, h.Hearts)
	_, err = s.Stats().Get(ctx, userID)
	assert.NoError(t, err)
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	ctx := context.Background()
	userID := uuid.New()

	assert.PanicsWithValue(t, "test panic", func() {
		_ = s.RunInTx(ctx, func(ctx context.Context) error {
			_ = s.Hearts().Save(ctx, domain.HeartsState{UserID: userID, Hearts: 5})
			panic("test panic")
		})
	})

	_, err := s.Hearts().Get(ctx, userID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---------------------------------------------------------------------------
// Stats
// ---------------------------------------------------------------------------

func TestStatsRepo_GetMissing(t *testing.T) {
	t.Parallel()
	s := newStore(t)

	_, err := s.Stats().Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStatsRepo_SaveAndGet(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	ctx := context.Background()

	day := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	in := domain.NewUserStats(uuid.New())
	in.TotalXP = 512
	in.CurrentStreak = 2
	in.LongestStreak = 9
	in.LastActivityDate = &day
	in.TotalCardsViewed = 80
	in.TotalCardsSaved = 12
	in.ExploreCategory("nature")
	in.ExploreCategory("art")
	in.CategoryXP["nature"] = 300
	in.TotalSessions = 6
	in.PerfectSessions = 2
	in.UpdatedAt = time.Date(2026, 5, 2, 18, 30, 0, 0, time.UTC)

	require.NoError(t, s.Stats().Save(ctx, in))

	got, err := s.Stats().Get(ctx, in.UserID)
	require.NoError(t, err)
	assert.Equal(t, 512, got.TotalXP)
	assert.Equal(t, 2, got.CurrentStreak)
	assert.Equal(t, 9, got.LongestStreak)
	require.NotNil(t, got.LastActivityDate)
	assert.True(t, got.LastActivityDate.Equal(day))
	assert.Equal(t, []string{"art", "nature"}, got.Categories())
	assert.Equal(t, map[string]int{"nature": 300}, got.CategoryXP)
	assert.Equal(t, 6, got.TotalSessions)
	assert.Equal(t, 2, got.PerfectSessions)
	assert.True(t, got.UpdatedAt.Equal(in.UpdatedAt))

	in.TotalXP = 600
	in.LastActivityDate = nil
	require.NoError(t, s.Stats().Save(ctx, in))

	got, err = s.Stats().Get(ctx, in.UserID)
	require.NoError(t, err)
	assert.Equal(t, 600, got.TotalXP)
	assert.Nil(t, got.LastActivityDate)
}

func TestStatsRepo_Save_StreakInvariant(t *testing.T) {
	t.Parallel()
	s := newStore(t)

	in := domain.NewUserStats(uuid.New())
	in.CurrentStreak = 4
	in.LongestStreak = 1

	err := s.Stats().Save(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---------------------------------------------------------------------------
// Unlocks
// ---------------------------------------------------------------------------

func TestUnlockRepo_CreateIdempotentAndOrdered(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	ctx := context.Background()
	userID := uuid.New()
	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, s.Unlocks().Create(ctx, domain.UnlockRecord{UserID: userID, AchievementID: "xp-100", UnlockedAt: base.Add(time.Hour), ProgressAtUnlock: 101}))
	require.NoError(t, s.Unlocks().Create(ctx, domain.UnlockRecord{UserID: userID, AchievementID: "first-swipe", UnlockedAt: base, ProgressAtUnlock: 1}))
	require.NoError(t, s.Unlocks().Create(ctx, domain.UnlockRecord{UserID: userID, AchievementID: "xp-100", UnlockedAt: base.Add(2 * time.Hour), ProgressAtUnlock: 150}))

	got, err := s.Unlocks().ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first-swipe", got[0].AchievementID)
	assert.Equal(t, "xp-100", got[1].AchievementID)
	assert.Equal(t, 101, got[1].ProgressAtUnlock)
	assert.NotEqual(t, uuid.Nil, got[0].ID)
	assert.True(t, got[1].UnlockedAt.Equal(base.Add(time.Hour)))

	other, err := s.Unlocks().ListByUser(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, other)
}

// ---------------------------------------------------------------------------
// Hearts
// ---------------------------------------------------------------------------

func TestHeartsRepo_SaveAndGet(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	ctx := context.Background()

	lost := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	in := domain.HeartsState{UserID: uuid.New(), Hearts: 2, LastLostAt: &lost, IsPremium: true}
	require.NoError(t, s.Hearts().Save(ctx, in))

	got, err := s.Hearts().Get(ctx, in.UserID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Hearts)
	assert.True(t, got.IsPremium)
	require.NotNil(t, got.LastLostAt)
	assert.True(t, got.LastLostAt.Equal(lost))

	in.Hearts = 10
	in.LastLostAt = nil
	require.NoError(t, s.Hearts().Save(ctx, in))

	got, err = s.Hearts().Get(ctx, in.UserID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Hearts)
	assert.Nil(t, got.LastLostAt)
}

func TestHeartsRepo_Save_Negative(t *testing.T) {
	t.Parallel()
	s := newStore(t)

	err := s.Hearts().Save(context.Background(), domain.HeartsState{UserID: uuid.New(), Hearts: -1})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---------------------------------------------------------------------------
// Flashcards
// ---------------------------------------------------------------------------

func newSet(userID uuid.UUID) *domain.FlashcardSet {
	return &domain.FlashcardSet{
		ID:     domain.NewPublicID(),
		UserID: userID,
		Title:  "Planets",
		Cards: []domain.Flashcard{
			{ID: "p1", Question: "Largest planet?", Answer: "Jupiter", Difficulty: domain.DifficultyEasy},
			{ID: "p2", Question: "Hottest planet?", Answer: "Venus", Difficulty: domain.DifficultyMedium},
			{ID: "p3", Question: "Moons of Mars?", Answer: "Phobos, Deimos", Difficulty: domain.DifficultyHard},
		},
	}
}

func TestFlashcardRepo_SaveAndGet(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	ctx := context.Background()
	set := newSet(uuid.New())

	require.NoError(t, s.Flashcards().SaveSet(ctx, set))

	got, err := s.Flashcards().GetSet(ctx, set.UserID, set.ID)
	require.NoError(t, err)
	assert.Equal(t, "Planets", got.Title)
	assert.Equal(t, set.Cards, got.Cards)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestFlashcardRepo_SaveSet_ReplacesCards(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	ctx := context.Background()
	set := newSet(uuid.New())
	require.NoError(t, s.Flashcards().SaveSet(ctx, set))

	set.TotalReviews = 7
	set.Cards = []domain.Flashcard{set.Cards[2], set.Cards[0]}
	set.Cards[0].MasteryLevel = 35
	require.NoError(t, s.Flashcards().SaveSet(ctx, set))

	got, err := s.Flashcards().GetSet(ctx, set.UserID, set.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.TotalReviews)
	require.Len(t, got.Cards, 2)
	assert.Equal(t, "p3", got.Cards[0].ID)
	assert.Equal(t, 35, got.Cards[0].MasteryLevel)
	assert.Equal(t, "p1", got.Cards[1].ID)

	set.Cards = nil
	require.NoError(t, s.Flashcards().SaveSet(ctx, set))
	got, err = s.Flashcards().GetSet(ctx, set.UserID, set.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Cards)
}

func TestFlashcardRepo_OwnerIsolation(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	ctx := context.Background()
	set := newSet(uuid.New())
	require.NoError(t, s.Flashcards().SaveSet(ctx, set))

	_, err := s.Flashcards().GetSet(ctx, uuid.New(), set.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	hijack := &domain.FlashcardSet{ID: set.ID, UserID: uuid.New(), Title: "mine"}
	err = s.Flashcards().SaveSet(ctx, hijack)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFlashcardRepo_Save_InvalidMastery(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	set := newSet(uuid.New())
	set.Cards[1].MasteryLevel = 101

	err := s.RunInTx(context.Background(), func(ctx context.Context) error {
		return s.Flashcards().SaveSet(ctx, set)
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---------------------------------------------------------------------------
// Saved cards
// ---------------------------------------------------------------------------

func TestSavedCardRepo_SaveAndList(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	ctx := context.Background()
	userID := uuid.New()
	base := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	cards := []domain.SavedCard{
		{UserID: userID, CardID: "f1", Category: "ocean", SavedAt: base},
		{UserID: userID, CardID: "f2", Category: "space", SavedAt: base.Add(time.Minute)},
		{UserID: userID, CardID: "f3", Category: "ocean", SavedAt: base.Add(2 * time.Minute)},
	}
	for _, c := range cards {
		require.NoError(t, s.SavedCards().Save(ctx, c))
	}
	// Saving again keeps the first save.
	require.NoError(t, s.SavedCards().Save(ctx, domain.SavedCard{UserID: userID, CardID: "f1", Category: "ocean", SavedAt: base.Add(time.Hour)}))

	all, err := s.SavedCards().ListByUser(ctx, userID, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "f3", all[0].CardID)
	assert.True(t, all[2].SavedAt.Equal(base))

	ocean, err := s.SavedCards().ListByUser(ctx, userID, "ocean", 1)
	require.NoError(t, err)
	require.Len(t, ocean, 1)
	assert.Equal(t, "f3", ocean[0].CardID)
}
