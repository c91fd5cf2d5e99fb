package historyrepo

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"

	"golibrary/internal/domain"
	apperror "golibrary/internal/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FileRepository keeps the history as a single JSON array on disk.
type FileRepository struct {
	path string
	mu   sync.Mutex
}

// NewFileRepository returns a repository backed by the file at path. The file
// and its parent directory are created on the first write.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

// Path returns the location of the history file.
func (r *FileRepository) Path() string {
	return r.path
}

// SaveRecord appends entry to the array and rewrites the file.
func (r *FileRepository) SaveRecord(ctx context.Context, entry domain.HistoryEntry) error {
	if err := ctx.Err(); err != nil {
		return apperror.NewStorageError("failed to save record to history", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load()
	if err != nil {
		return err
	}
	entries = append(entries, entry)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return apperror.NewStorageError("failed to encode history", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return apperror.NewStorageError("failed to create history directory", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return apperror.NewStorageError("failed to save record to history", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return apperror.NewStorageError("failed to save record to history", err)
	}

	return nil
}

// GetHistory reads the whole file and returns the entries matching filter in write order.
func (r *FileRepository) GetHistory(ctx context.Context, filter domain.HistoryFilter) ([]domain.HistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperror.NewStorageError("failed to read history", err)
	}

	r.mu.Lock()
	entries, err := r.load()
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}

	return lo.Filter(entries, func(e domain.HistoryEntry, _ int) bool {
		return filter.Matches(e)
	}), nil
}

// load treats a missing or blank file as an empty history.
func (r *FileRepository) load() ([]domain.HistoryEntry, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return []domain.HistoryEntry{}, nil
	}
	if err != nil {
		return nil, apperror.NewStorageError("failed to read history file", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []domain.HistoryEntry{}, nil
	}
	if data[0] != '[' {
		return nil, apperror.NewStorageError("history file is not an array", nil)
	}

	entries := []domain.HistoryEntry{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, apperror.NewStorageError("failed to decode history file", err)
	}
	return entries, nil
}
