package config

import (
	"time"

	"github.com/heartmarshall/genius-progression/internal/domain"
)

// Store drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config is the root application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Store       StoreConfig       `yaml:"store"`
	Database    DatabaseConfig    `yaml:"database"`
	SQLite      SQLiteConfig      `yaml:"sqlite"`
	Log         LogConfig         `yaml:"log"`
	Progression ProgressionConfig `yaml:"progression"`
	Hearts      HeartsConfig      `yaml:"hearts"`
	CORS        CORSConfig        `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-User-ID,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`

	// RateLimitPerMinute caps /v1 requests per user; 0 disables the limit.
	RateLimitPerMinute int `yaml:"rate_limit_per_minute" env:"SERVER_RATE_LIMIT_PER_MINUTE" env-default:"600"`
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	Driver string `yaml:"driver" env:"STORE_DRIVER" env-default:"postgres"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// SQLiteConfig holds settings of the embedded single-device store.
type SQLiteConfig struct {
	Path        string        `yaml:"path"         env:"SQLITE_PATH"         env-default:"./progression.db"`
	BusyTimeout time.Duration `yaml:"busy_timeout" env:"SQLITE_BUSY_TIMEOUT" env-default:"5s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// ProgressionConfig holds the reward constants.
type ProgressionConfig struct {
	SwipeXP                 int    `yaml:"swipe_xp"                   env:"PROGRESSION_SWIPE_XP"                   env-default:"2"`
	SaveBonusXP             int    `yaml:"save_bonus_xp"              env:"PROGRESSION_SAVE_BONUS_XP"              env-default:"10"`
	SessionXPPerCard        int    `yaml:"session_xp_per_card"        env:"PROGRESSION_SESSION_XP_PER_CARD"        env-default:"10"`
	PerfectSessionBonusXP   int    `yaml:"perfect_session_bonus_xp"   env:"PROGRESSION_PERFECT_SESSION_BONUS_XP"   env-default:"50"`
	MaxUnlocksPerEvaluation int    `yaml:"max_unlocks_per_evaluation" env:"PROGRESSION_MAX_UNLOCKS_PER_EVALUATION" env-default:"1"`
	MasteryCorrectStep      int    `yaml:"mastery_correct_step"       env:"PROGRESSION_MASTERY_CORRECT_STEP"       env-default:"20"`
	MasteryIncorrectStep    int    `yaml:"mastery_incorrect_step"     env:"PROGRESSION_MASTERY_INCORRECT_STEP"     env-default:"15"`
	Timezone                string `yaml:"timezone"                   env:"PROGRESSION_TIMEZONE"                   env-default:"UTC"`
	TrackerCacheSize        int    `yaml:"tracker_cache_size"         env:"PROGRESSION_TRACKER_CACHE_SIZE"         env-default:"1024"`

	// FlushInterval is how often open trackers retry writes that failed earlier.
	FlushInterval time.Duration `yaml:"flush_interval" env:"PROGRESSION_FLUSH_INTERVAL" env-default:"1m"`

	// Location is resolved from Timezone during validation.
	Location *time.Location `yaml:"-" env:"-"`
}

// HeartsConfig holds the hearts resource settings.
type HeartsConfig struct {
	MaxHearts        int           `yaml:"max_hearts"         env:"HEARTS_MAX"            env-default:"5"`
	PremiumMaxHearts int           `yaml:"premium_max_hearts" env:"HEARTS_PREMIUM_MAX"    env-default:"10"`
	RegenInterval    time.Duration `yaml:"regen_interval"     env:"HEARTS_REGEN_INTERVAL" env-default:"30m"`
	TickInterval     time.Duration `yaml:"tick_interval"      env:"HEARTS_TICK_INTERVAL"  env-default:"1s"`
}

// Domain converts the reward and hearts settings into the engine config.
func (c *Config) Domain() domain.ProgressionConfig {
	loc := c.Progression.Location
	if loc == nil {
		loc = time.UTC
	}
	return domain.ProgressionConfig{
		SwipeXP:                 c.Progression.SwipeXP,
		SaveBonusXP:             c.Progression.SaveBonusXP,
		SessionXPPerCard:        c.Progression.SessionXPPerCard,
		PerfectSessionBonusXP:   c.Progression.PerfectSessionBonusXP,
		MaxUnlocksPerEvaluation: c.Progression.MaxUnlocksPerEvaluation,
		MasteryCorrectStep:      c.Progression.MasteryCorrectStep,
		MasteryIncorrectStep:    c.Progression.MasteryIncorrectStep,
		MaxHearts:               c.Hearts.MaxHearts,
		PremiumMaxHearts:        c.Hearts.PremiumMaxHearts,
		HeartRegenInterval:      c.Hearts.RegenInterval,
		Location:                loc,
	}
}
