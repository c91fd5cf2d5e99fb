package domain

import "time"

const (
	// DefaultBorrowingLimit is the number of simultaneous loans allowed per user.
	DefaultBorrowingLimit = 3
	// DefaultLoanPeriod is used when a loan is created without an explicit due date.
	DefaultLoanPeriod = 7 * 24 * time.Hour
	// DefaultOverdueFine is the flat charge for returning a book late.
	DefaultOverdueFine = 100
)

// BorrowingPolicy caps the number of active loans a user may hold.
type BorrowingPolicy struct {
	limit int
}

// NewBorrowingPolicy returns a policy with the given limit.
func NewBorrowingPolicy(limit int) BorrowingPolicy {
	return BorrowingPolicy{limit: limit}
}

// Limit returns the configured maximum.
func (p BorrowingPolicy) Limit() int {
	return p.limit
}

// IsLimitReached reports whether activeCount has hit the limit.
func (p BorrowingPolicy) IsLimitReached(activeCount int) bool {
	return activeCount >= p.limit
}

// BorrowingRecord is one active loan.
type BorrowingRecord struct {
	UserID     string    `json:"userId"`
	ISBN       string    `json:"isbn"`
	DueDate    time.Time `json:"dueDate"`
	BorrowedAt time.Time `json:"borrowedAt"`
}

// NewBorrowingRecord creates a loan borrowed at borrowedAt. A zero dueDate
// means borrowedAt plus DefaultLoanPeriod.
func NewBorrowingRecord(userID, isbn string, borrowedAt, dueDate time.Time) BorrowingRecord {
	borrowedAt = ToMillis(borrowedAt)
	if dueDate.IsZero() {
		dueDate = borrowedAt.Add(DefaultLoanPeriod)
	}

	return BorrowingRecord{
		UserID:     userID,
		ISBN:       isbn,
		DueDate:    ToMillis(dueDate),
		BorrowedAt: borrowedAt,
	}
}

// IsOverdue reports whether at is strictly after the due date.
func (r BorrowingRecord) IsOverdue(at time.Time) bool {
	return !r.DueDate.IsZero() && at.After(r.DueDate)
}

// ToMillis normalizes t to UTC with millisecond precision.
func ToMillis(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// FineBalance is the outstanding overdue fine of one user.
type FineBalance struct {
	UserID string `json:"userId"`
	Fine   int    `json:"fine"`
}

// StatusSummary is a point-in-time count of the library collections.
type StatusSummary struct {
	Books         int `json:"books"`
	Users         int `json:"users"`
	BorrowedBooks int `json:"borrowedBooks"`
}
