package historyrepo

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"golibrary/internal/domain"
	apperror "golibrary/internal/errors"
)

// DefaultRedisKey is the list holding the history when no key is configured.
const DefaultRedisKey = "library:history"

// RedisRepository appends entries to a redis list.
type RedisRepository struct {
	client  *redis.Client
	key     string
	timeout time.Duration
}

// NewRedisRepository stores history in the list at key. A zero timeout leaves
// the caller's context unchanged.
func NewRedisRepository(client *redis.Client, key string, timeout time.Duration) *RedisRepository {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisRepository{client: client, key: key, timeout: timeout}
}

// SaveRecord RPUSHes the JSON encoded entry.
func (r *RedisRepository) SaveRecord(ctx context.Context, entry domain.HistoryEntry) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	data, err := json.Marshal(entry)
	if err != nil {
		return apperror.NewStorageError("failed to encode history entry", err)
	}

	if err := r.client.RPush(ctx, r.key, string(data)).Err(); err != nil {
		return apperror.NewStorageError("failed to save record to history", err)
	}
	return nil
}

// GetHistory reads the whole list and returns the matching entries.
func (r *RedisRepository) GetHistory(ctx context.Context, filter domain.HistoryFilter) ([]domain.HistoryEntry, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	values, err := r.client.LRange(ctx, r.key, 0, -1).Result()
	if err != nil && err != redis.Nil {
		return nil, apperror.NewStorageError("failed to read history", err)
	}

	entries := make([]domain.HistoryEntry, 0, len(values))
	for _, v := range values {
		var entry domain.HistoryEntry
		if err := json.UnmarshalFromString(v, &entry); err != nil {
			return nil, apperror.NewStorageError("failed to decode history entry", err)
		}
		if filter.Matches(entry) {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (r *RedisRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}
