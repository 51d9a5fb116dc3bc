package progression

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/genius-progression/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type statsRepo interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error)
	Save(ctx context.Context, stats *domain.UserStats) error
}

type unlockRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.UnlockRecord, error)
	// Create is idempotent per (user, achievement).
	Create(ctx context.Context, record domain.UnlockRecord) error
}

type heartsRepo interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.HeartsState, error)
	Save(ctx context.Context, state domain.HeartsState) error
}

type flashcardRepo interface {
	GetSet(ctx context.Context, userID uuid.UUID, setID string) (*domain.FlashcardSet, error)
	SaveSet(ctx context.Context, set *domain.FlashcardSet) error
}

type savedCardRepo interface {
	// Save is idempotent per (user, card).
	Save(ctx context.Context, card domain.SavedCard) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Clock is the time source; injectable for deterministic tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Repos groups the persistence collaborators of the engine.
type Repos struct {
	Stats      statsRepo
	Unlocks    unlockRepo
	Hearts     heartsRepo
	Flashcards flashcardRepo
	SavedCards savedCardRepo
	Tx         txManager
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service opens per-user Trackers over a shared set of repositories,
// configuration and achievement catalog.
type Service struct {
	stats   statsRepo
	unlocks unlockRepo
	hearts  heartsRepo
	sets    flashcardRepo
	saved   savedCardRepo
	tx      txManager
	clock   Clock
	log     *slog.Logger
	cfg     domain.ProgressionConfig
	catalog *Catalog
}

// NewService creates a new progression service.
func NewService(
	log *slog.Logger,
	repos Repos,
	clock Clock,
	cfg domain.ProgressionConfig,
	catalog *Catalog,
) (*Service, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid progression config: %w", err)
	}
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if clock == nil {
		clock = SystemClock{}
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	return &Service{
		stats:   repos.Stats,
		unlocks: repos.Unlocks,
		hearts:  repos.Hearts,
		sets:    repos.Flashcards,
		saved:   repos.SavedCards,
		tx:      repos.Tx,
		clock:   clock,
		log:     log.With("service", "progression"),
		cfg:     cfg,
		catalog: catalog,
	}, nil
}

// Catalog returns the achievement catalog the service evaluates.
func (s *Service) Catalog() *Catalog { return s.catalog }

// Config returns the reward configuration.
func (s *Service) Config() domain.ProgressionConfig { return s.cfg }

func validateConfig(cfg domain.ProgressionConfig) error {
	var errs []domain.FieldError

	for _, f := range []struct {
		name string
		v    int
	}{
		{"swipe_xp", cfg.SwipeXP},
		{"save_bonus_xp", cfg.SaveBonusXP},
		{"session_xp_per_card", cfg.SessionXPPerCard},
		{"perfect_session_bonus_xp", cfg.PerfectSessionBonusXP},
	} {
		if f.v < 0 {
			errs = append(errs, domain.FieldError{Field: f.name, Message: "must be >= 0"})
		}
	}
	if cfg.MaxUnlocksPerEvaluation < 1 {
		errs = append(errs, domain.FieldError{Field: "max_unlocks_per_evaluation", Message: "must be >= 1"})
	}
	if cfg.MasteryCorrectStep < 1 || cfg.MasteryCorrectStep > 100 {
		errs = append(errs, domain.FieldError{Field: "mastery_correct_step", Message: "must be between 1 and 100"})
	}
	if cfg.MasteryIncorrectStep < 1 || cfg.MasteryIncorrectStep > 100 {
		errs = append(errs, domain.FieldError{Field: "mastery_incorrect_step", Message: "must be between 1 and 100"})
	}
	if cfg.MaxHearts < 1 {
		errs = append(errs, domain.FieldError{Field: "max_hearts", Message: "must be >= 1"})
	}
	if cfg.PremiumMaxHearts < cfg.MaxHearts {
		errs = append(errs, domain.FieldError{Field: "premium_max_hearts", Message: "must be >= max_hearts"})
	}
	if cfg.HeartRegenInterval <= 0 {
		errs = append(errs, domain.FieldError{Field: "regen_interval", Message: "must be > 0"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
