package historyrepo

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"golibrary/internal/domain"
	apperror "golibrary/internal/errors"
)

const (
	badgerEntryPrefix  = "history:entry:"
	badgerSeqKey       = "history:seq"
	badgerSeqBandwidth = 100
)

// BadgerRepository stores one key per history entry. Keys carry a zero-padded
// sequence number so prefix iteration yields write order.
type BadgerRepository struct {
	db  *badger.DB
	seq *badger.Sequence
}

// OpenBadgerRepository opens (or creates) a badger store in dir.
func OpenBadgerRepository(dir string) (*BadgerRepository, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLoggingLevel(badger.WARNING))
	if err != nil {
		return nil, apperror.NewStorageError("failed to open badger store", err)
	}

	repo, err := NewBadgerRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// NewBadgerRepository uses an already opened badger database. Close closes db.
func NewBadgerRepository(db *badger.DB) (*BadgerRepository, error) {
	seq, err := db.GetSequence([]byte(badgerSeqKey), badgerSeqBandwidth)
	if err != nil {
		return nil, apperror.NewStorageError("failed to acquire history sequence", err)
	}
	return &BadgerRepository{db: db, seq: seq}, nil
}

// SaveRecord writes entry under the next sequence key.
func (r *BadgerRepository) SaveRecord(ctx context.Context, entry domain.HistoryEntry) error {
	if err := ctx.Err(); err != nil {
		return apperror.NewStorageError("failed to save record to history", err)
	}

	id, err := r.seq.Next()
	if err != nil {
		return apperror.NewStorageError("failed to allocate history key", err)
	}

	value, err := json.Marshal(entry)
	if err != nil {
		return apperror.NewStorageError("failed to encode history entry", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(entryKey(id), value)
	})
	if err != nil {
		return apperror.NewStorageError("failed to save record to history", err)
	}
	return nil
}

// GetHistory iterates the entry prefix and returns the matching entries.
func (r *BadgerRepository) GetHistory(ctx context.Context, filter domain.HistoryFilter) ([]domain.HistoryEntry, error) {
	entries := []domain.HistoryEntry{}

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(badgerEntryPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var entry domain.HistoryEntry
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			})
			if err != nil {
				return err
			}
			if filter.Matches(entry) {
				entries = append(entries, entry)
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperror.NewStorageError("failed to read history", err)
	}

	return entries, nil
}

// Close releases the sequence lease and closes the database.
func (r *BadgerRepository) Close() error {
	if err := r.seq.Release(); err != nil {
		return apperror.NewStorageError("failed to release history sequence", err)
	}
	if err := r.db.Close(); err != nil {
		return apperror.NewStorageError("failed to close badger store", err)
	}
	return nil
}

func entryKey(id uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", badgerEntryPrefix, id))
}
