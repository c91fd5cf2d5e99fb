package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golibrary/config"
	"golibrary/internal/domain"
	"golibrary/internal/pkg/logger"
	"golibrary/internal/repository/historyrepo"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		LogLevel:         "error",
		BorrowingLimit:   3,
		LoanPeriodDays:   7,
		OverdueFine:      100,
		HistoryBackend:   backend,
		HistoryFile:      filepath.Join(dir, "history.json"),
		HistoryBadgerDir: filepath.Join(dir, "badger"),
		DBTimeoutSec:     1,
	}
}

func TestRun_FileBackend(t *testing.T) {
	cfg := testConfig(t, config.BackendFile)
	var out bytes.Buffer

	require.NoError(t, run(context.Background(), cfg, logger.NewNop(), &out))

	text := out.String()
	assert.Contains(t, text, "To Kill a Mockingbird has been borrowed by Mohamed.")
	assert.Contains(t, text, "CONFLICT")
	assert.Contains(t, text, "1984 has been returned by Mohamed.")

	repo := historyrepo.NewFileRepository(cfg.HistoryFile)
	_, err := os.Stat(repo.Path())
	require.NoError(t, err)

	entries, err := repo.GetHistory(context.Background(), domain.HistoryFilter{})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestRun_BadgerBackend(t *testing.T) {
	cfg := testConfig(t, config.BackendBadger)
	var out bytes.Buffer

	require.NoError(t, run(context.Background(), cfg, logger.NewNop(), &out))

	repo, err := historyrepo.OpenBadgerRepository(cfg.HistoryBadgerDir)
	require.NoError(t, err)
	defer repo.Close()

	entries, err := repo.GetHistory(context.Background(), domain.HistoryFilter{})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestOpenHistory_PostgresUnreachable(t *testing.T) {
	cfg := testConfig(t, config.BackendPostgres)
	cfg.DatabaseURL = "postgres://%zz"

	_, _, err := openHistory(context.Background(), cfg)

	assert.Error(t, err)
}
