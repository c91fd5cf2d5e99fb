package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golibrary/config"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	unsetEnv(t, "ENV", "LOG_LEVEL", "HISTORY_BACKEND", "BORROWING_LIMIT", "LOAN_PERIOD_DAYS",
		"OVERDUE_FINE", "DB_TIMEOUT_SEC", "HISTORY_FILE", "HISTORY_REDIS_KEY")

	cfg, err := config.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, config.BackendFile, cfg.HistoryBackend)
	assert.Equal(t, 3, cfg.BorrowingLimit)
	assert.Equal(t, 7, cfg.LoanPeriodDays)
	assert.Equal(t, 100, cfg.OverdueFine)
	assert.Equal(t, "data/history.json", cfg.HistoryFile)
	assert.Equal(t, "library:history", cfg.HistoryRedisKey)
	assert.Equal(t, 5*time.Second, cfg.DBTimeout())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("HISTORY_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("BORROWING_LIMIT", "5")
	t.Setenv("OVERDUE_FINE", "250")
	t.Setenv("LOAN_PERIOD_DAYS", "14")
	t.Setenv("DB_TIMEOUT_SEC", "2")

	cfg, err := config.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, config.BackendRedis, cfg.HistoryBackend)
	assert.Equal(t, "cache:6380", cfg.RedisAddr)
	assert.Equal(t, 5, cfg.BorrowingLimit)
	assert.Equal(t, 250, cfg.OverdueFine)
	assert.Equal(t, 14, cfg.LoanPeriodDays)
	assert.Equal(t, 2*time.Second, cfg.DBTimeout())
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown backend", env: map[string]string{"HISTORY_BACKEND": "mongo"}},
		{name: "postgres without url", env: map[string]string{"HISTORY_BACKEND": "postgres", "DATABASE_URL": ""}},
		{name: "zero limit", env: map[string]string{"HISTORY_BACKEND": "file", "BORROWING_LIMIT": "0"}},
		{name: "negative fine", env: map[string]string{"HISTORY_BACKEND": "file", "BORROWING_LIMIT": "3", "OVERDUE_FINE": "-1"}},
		{name: "not a number", env: map[string]string{"HISTORY_BACKEND": "file", "BORROWING_LIMIT": "three"}},
		{name: "zero db timeout", env: map[string]string{"HISTORY_BACKEND": "file", "DB_TIMEOUT_SEC": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOAN_PERIOD_DAYS", "7")
			t.Setenv("OVERDUE_FINE", "100")
			t.Setenv("BORROWING_LIMIT", "3")
			t.Setenv("DB_TIMEOUT_SEC", "5")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.LoadConfig()

			assert.Error(t, err)
		})
	}
}
