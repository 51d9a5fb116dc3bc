package config

import (
	"fmt"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for the postgres store")
		}
	case DriverSQLite:
		if c.SQLite.Path == "" {
			return fmt.Errorf("sqlite.path is required for the sqlite store")
		}
	default:
		return fmt.Errorf("store.driver must be %q or %q (got %q)", DriverPostgres, DriverSQLite, c.Store.Driver)
	}

	if c.Server.RateLimitPerMinute < 0 {
		return fmt.Errorf("server.rate_limit_per_minute must be >= 0")
	}

	if err := c.Progression.validate(); err != nil {
		return fmt.Errorf("progression: %w", err)
	}
	if err := c.Hearts.validate(); err != nil {
		return fmt.Errorf("hearts: %w", err)
	}

	return nil
}

func (p *ProgressionConfig) validate() error {
	amounts := []struct {
		name string
		v    int
	}{
		{"swipe_xp", p.SwipeXP},
		{"save_bonus_xp", p.SaveBonusXP},
		{"session_xp_per_card", p.SessionXPPerCard},
		{"perfect_session_bonus_xp", p.PerfectSessionBonusXP},
	}
	for _, a := range amounts {
		if a.v < 0 {
			return fmt.Errorf("%s must be >= 0 (got %d)", a.name, a.v)
		}
	}
	if p.MaxUnlocksPerEvaluation < 1 {
		return fmt.Errorf("max_unlocks_per_evaluation must be >= 1 (got %d)", p.MaxUnlocksPerEvaluation)
	}
	if p.MasteryCorrectStep < 1 || p.MasteryCorrectStep > 100 {
		return fmt.Errorf("mastery_correct_step must be in [1,100] (got %d)", p.MasteryCorrectStep)
	}
	if p.MasteryIncorrectStep < 1 || p.MasteryIncorrectStep > 100 {
		return fmt.Errorf("mastery_incorrect_step must be in [1,100] (got %d)", p.MasteryIncorrectStep)
	}
	if p.TrackerCacheSize < 1 {
		return fmt.Errorf("tracker_cache_size must be >= 1 (got %d)", p.TrackerCacheSize)
	}
	if p.FlushInterval <= 0 {
		return fmt.Errorf("flush_interval must be > 0 (got %v)", p.FlushInterval)
	}

	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return fmt.Errorf("timezone %q: %w", p.Timezone, err)
	}
	p.Location = loc

	return nil
}

func (h *HeartsConfig) validate() error {
	if h.MaxHearts < 1 {
		return fmt.Errorf("max_hearts must be >= 1 (got %d)", h.MaxHearts)
	}
	if h.PremiumMaxHearts < h.MaxHearts {
		return fmt.Errorf("premium_max_hearts must be >= max_hearts (got %d < %d)", h.PremiumMaxHearts, h.MaxHearts)
	}
	if h.RegenInterval <= 0 {
		return fmt.Errorf("regen_interval must be > 0 (got %v)", h.RegenInterval)
	}
	if h.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be > 0 (got %v)", h.TickInterval)
	}
	return nil
}
