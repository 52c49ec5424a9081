// Package config loads process configuration from the environment
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/miniature-battle/internal/errors"
)

// History storage backends
const (
	HistoryBackendRedis  = "redis"
	HistoryBackendSQLite = "sqlite"
)

// Config is the server configuration. Every field can be set from the
// environment and most can be overridden by command flags.
type Config struct {
	Port            int           `env:"MINIATURE_BATTLE_PORT" envDefault:"50051"`
	ShutdownTimeout time.Duration `env:"MINIATURE_BATTLE_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	LogLevel        slog.Level    `env:"MINIATURE_BATTLE_LOG_LEVEL" envDefault:"INFO"`
	LogFormat       string        `env:"MINIATURE_BATTLE_LOG_FORMAT" envDefault:"text"`

	HistoryBackend string `env:"MINIATURE_BATTLE_HISTORY_BACKEND" envDefault:"sqlite"`
	SQLitePath     string `env:"MINIATURE_BATTLE_SQLITE_PATH" envDefault:"data/battle_history.db"`

	RedisAddrs      []string `env:"MINIATURE_BATTLE_REDIS_ADDRS" envDefault:"localhost:6379" envSeparator:","`
	RedisMasterName string   `env:"MINIATURE_BATTLE_REDIS_MASTER_NAME"`
	RedisPassword   string   `env:"MINIATURE_BATTLE_REDIS_PASSWORD"`
	RedisDB         int      `env:"MINIATURE_BATTLE_REDIS_DB" envDefault:"0"`
	RedisTLS        bool     `env:"MINIATURE_BATTLE_REDIS_TLS"`

	// CatalogPath replaces the embedded miniature catalog when set
	CatalogPath string `env:"MINIATURE_BATTLE_CATALOG_PATH"`

	SRDEnabled  bool          `env:"MINIATURE_BATTLE_SRD_ENABLED" envDefault:"true"`
	SRDBaseURL  string        `env:"MINIATURE_BATTLE_SRD_BASE_URL" envDefault:"https://www.dnd5eapi.co/api/"`
	SRDTimeout  time.Duration `env:"MINIATURE_BATTLE_SRD_TIMEOUT" envDefault:"10s"`
	SRDCacheTTL time.Duration `env:"MINIATURE_BATTLE_SRD_CACHE_TTL" envDefault:"24h"`

	TurnTimer     int    `env:"MINIATURE_BATTLE_TURN_TIMER" envDefault:"30"`
	TimeoutPolicy string `env:"MINIATURE_BATTLE_TIMEOUT_POLICY" envDefault:"pass"`
}

// Load parses the environment into a validated Config
func Load() (*Config, error) {
	return LoadFrom(nil)
}

// LoadFrom parses the process environment with the given variables layered on top
func LoadFrom(environment map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environment}); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("port", c.Port, 1, 65535, vb)
	if c.ShutdownTimeout <= 0 {
		vb.Field("shutdown_timeout", "must be positive")
	}
	errors.ValidateEnum("log_format", strings.ToLower(c.LogFormat), []string{"text", "json"}, vb)
	errors.ValidateEnum("history_backend", c.HistoryBackend, []string{HistoryBackendRedis, HistoryBackendSQLite}, vb)

	switch c.HistoryBackend {
	case HistoryBackendSQLite:
		errors.ValidateRequired("sqlite_path", c.SQLitePath, vb)
	case HistoryBackendRedis:
		if len(c.RedisAddrs) == 0 {
			vb.RequiredField("redis_addrs")
		}
		errors.ValidateMin("redis_db", c.RedisDB, 0, vb)
	}

	if c.SRDEnabled {
		errors.ValidateRequired("srd_base_url", c.SRDBaseURL, vb)
		if c.SRDTimeout <= 0 {
			vb.Field("srd_timeout", "must be positive")
		}
	}
	errors.ValidateMin("turn_timer", c.TurnTimer, 0, vb)
	errors.ValidateEnum("timeout_policy", c.TimeoutPolicy, []string{"pass", "auto_select"}, vb)

	return vb.Build()
}
