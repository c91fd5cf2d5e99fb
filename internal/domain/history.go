package domain

import (
	"context"
	"time"
)

// HistoryEntry is a returned loan as persisted in the history store.
type HistoryEntry struct {
	BorrowingRecord
	ReturnedAt time.Time `json:"returnedAt"`
}

// NewHistoryEntry closes a loan at returnedAt.
func NewHistoryEntry(record BorrowingRecord, returnedAt time.Time) HistoryEntry {
	return HistoryEntry{BorrowingRecord: record, ReturnedAt: ToMillis(returnedAt)}
}

// HistoryFilter narrows GetHistory. An empty UserID matches every entry.
type HistoryFilter struct {
	UserID string
}

// Matches reports whether e passes the filter.
func (f HistoryFilter) Matches(e HistoryEntry) bool {
	return f.UserID == "" || e.UserID == f.UserID
}

// HistoryRepository is the durable, append-only store of returned loans.
type HistoryRepository interface {
	SaveRecord(ctx context.Context, entry HistoryEntry) error
	GetHistory(ctx context.Context, filter HistoryFilter) ([]HistoryEntry, error)
}
