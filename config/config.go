package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// History backends accepted by HISTORY_BACKEND.
const (
	BackendFile     = "file"
	BackendBadger   = "badger"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config holds every setting of the library demo and the migrate command.
type Config struct {
	// General
	Environment string `envconfig:"ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// Lending rules
	BorrowingLimit int `envconfig:"BORROWING_LIMIT" default:"3"`
	LoanPeriodDays int `envconfig:"LOAN_PERIOD_DAYS" default:"7"`
	OverdueFine    int `envconfig:"OVERDUE_FINE" default:"100"`

	// History store
	HistoryBackend   string `envconfig:"HISTORY_BACKEND" default:"file"`
	HistoryFile      string `envconfig:"HISTORY_FILE" default:"data/history.json"`
	HistoryBadgerDir string `envconfig:"HISTORY_BADGER_DIR" default:"data/badger"`

	// Redis
	RedisAddr       string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	HistoryRedisKey string `envconfig:"HISTORY_REDIS_KEY" default:"library:history"`

	// PostgreSQL
	DatabaseURL  string `envconfig:"DATABASE_URL"`
	DBTimeoutSec int    `envconfig:"DB_TIMEOUT_SEC" default:"5"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DBTimeout is the per-query timeout of the postgres store.
func (c *Config) DBTimeout() time.Duration {
	return time.Duration(c.DBTimeoutSec) * time.Second
}

func (c *Config) validate() error {
	switch c.HistoryBackend {
	case BackendFile, BackendBadger, BackendRedis:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL must be set when HISTORY_BACKEND is %s", BackendPostgres)
		}
	default:
		return fmt.Errorf("unknown HISTORY_BACKEND %q", c.HistoryBackend)
	}

	if c.BorrowingLimit <= 0 {
		return fmt.Errorf("BORROWING_LIMIT must be positive, got %d", c.BorrowingLimit)
	}
	if c.LoanPeriodDays <= 0 {
		return fmt.Errorf("LOAN_PERIOD_DAYS must be positive, got %d", c.LoanPeriodDays)
	}
	if c.DBTimeoutSec <= 0 {
		return fmt.Errorf("DB_TIMEOUT_SEC must be positive, got %d", c.DBTimeoutSec)
	}
	if c.OverdueFine < 0 {
		return fmt.Errorf("OVERDUE_FINE must not be negative, got %d", c.OverdueFine)
	}
	return nil
}
