package library

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"golibrary/internal/domain"
	apperror "golibrary/internal/errors"
	"golibrary/internal/pkg/logger"
)

// Library is the aggregate root owning the catalog, the members, the active
// loans and the fine balances. It is not safe for concurrent use.
type Library struct {
	books      *index[string, domain.Book]
	users      *index[string, domain.User]
	loans      *index[string, domain.BorrowingRecord]
	userLoans  map[string]*index[string, struct{}]
	fines      *index[string, int]
	policy     domain.BorrowingPolicy
	fineAmount int
	history    domain.HistoryRepository
	now        func() time.Time
	logger     logger.Logger
}

// Option configures a Library.
type Option func(*Library)

// WithBorrowingPolicy replaces the default policy (limit 3).
func WithBorrowingPolicy(policy domain.BorrowingPolicy) Option {
	return func(l *Library) {
		l.policy = policy
	}
}

// WithOverdueFine sets the flat fine charged for an overdue return.
func WithOverdueFine(amount int) Option {
	return func(l *Library) {
		l.fineAmount = amount
	}
}

// WithClock injects the time source used for loans, overdue checks and returns.
func WithClock(now func() time.Time) Option {
	return func(l *Library) {
		l.now = now
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(log logger.Logger) Option {
	return func(l *Library) {
		l.logger = log
	}
}

// New creates an empty Library that records returned loans in history.
func New(history domain.HistoryRepository, opts ...Option) *Library {
	l := &Library{
		books:      newIndex[string, domain.Book](),
		users:      newIndex[string, domain.User](),
		loans:      newIndex[string, domain.BorrowingRecord](),
		userLoans:  make(map[string]*index[string, struct{}]),
		fines:      newIndex[string, int](),
		policy:     domain.NewBorrowingPolicy(domain.DefaultBorrowingLimit),
		fineAmount: domain.DefaultOverdueFine,
		history:    history,
		now:        time.Now,
		logger:     logger.NewNop(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Now returns the current time of the library clock.
func (l *Library) Now() time.Time {
	return l.now()
}

// Policy returns the borrowing policy in force.
func (l *Library) Policy() domain.BorrowingPolicy {
	return l.policy
}

// --- Catalog ---

// AddBook adds a book to the catalog. The ISBN must not be present yet.
func (l *Library) AddBook(book domain.Book) error {
	if book.ISBN() == "" {
		return apperror.NewValidationError("book must be created with NewBook")
	}
	if l.books.has(book.ISBN()) {
		return apperror.NewConflictError(fmt.Sprintf("book with ISBN %s already exists in library", book.ISBN()))
	}

	l.books.set(book.ISBN(), book)
	l.logger.Debug("book added", map[string]interface{}{"isbn": book.ISBN(), "title": book.Title})
	return nil
}

// RemoveBook removes a book from the catalog.
func (l *Library) RemoveBook(isbn string) error {
	if !l.books.has(isbn) {
		return apperror.NewNotFoundError(fmt.Sprintf("book with ISBN %s does not exist in library", isbn))
	}

	l.books.delete(isbn)
	l.logger.Debug("book removed", map[string]interface{}{"isbn": isbn})
	return nil
}

// GetBook looks a book up by ISBN.
func (l *Library) GetBook(isbn string) (domain.Book, bool) {
	return l.books.get(isbn)
}

// GetAllBooks returns the catalog in insertion order.
func (l *Library) GetAllBooks() []domain.Book {
	return l.books.values()
}

// SearchBook returns every book whose title or author contains keyword
// (case-insensitive) or whose year contains it as text.
func (l *Library) SearchBook(keyword string) []domain.Book {
	needle := strings.ToLower(keyword)

	return lo.Filter(l.books.values(), func(b domain.Book, _ int) bool {
		return strings.Contains(strings.ToLower(b.Title), needle) ||
			strings.Contains(strings.ToLower(b.Author), needle) ||
			strings.Contains(strconv.Itoa(b.Year), keyword)
	})
}

// --- Members ---

// RegisterUser adds a member. A user can be registered once.
func (l *Library) RegisterUser(user domain.User) error {
	if user.ID() == "" {
		return apperror.NewValidationError("user must be created with NewUser")
	}
	if l.users.has(user.ID()) {
		return apperror.NewConflictError(fmt.Sprintf("user with ID %s is already registered in library", user.ID()))
	}

	l.users.set(user.ID(), user)
	l.logger.Debug("user registered", map[string]interface{}{"userId": user.ID(), "name": user.Name})
	return nil
}

// RemoveUser removes a member.
func (l *Library) RemoveUser(userID string) error {
	if !l.users.has(userID) {
		return apperror.NewNotFoundError(fmt.Sprintf("user with ID %s is not registered in library", userID))
	}

	l.users.delete(userID)
	l.logger.Debug("user removed", map[string]interface{}{"userId": userID})
	return nil
}

// GetUser looks a member up by id.
func (l *Library) GetUser(userID string) (domain.User, bool) {
	return l.users.get(userID)
}

// GetAllUsers returns the members in registration order.
func (l *Library) GetAllUsers() []domain.User {
	return l.users.values()
}

// --- Loans ---

// AddToBorrowingRecord stores an active loan and indexes it under its user.
// It does not check availability; the lending workflow does.
func (l *Library) AddToBorrowingRecord(record domain.BorrowingRecord) {
	l.loans.set(record.ISBN, record)

	set, ok := l.userLoans[record.UserID]
	if !ok {
		set = newIndex[string, struct{}]()
		l.userLoans[record.UserID] = set
	}
	set.set(record.ISBN, struct{}{})

	l.logger.Debug("loan recorded", map[string]interface{}{
		"isbn":    record.ISBN,
		"userId":  record.UserID,
		"dueDate": record.DueDate,
	})
}

// RemoveFromBorrowingRecord closes the active loan of isbn. The history entry
// is persisted before any in-memory state changes, so a storage failure
// leaves the loan active and the call can be retried.
func (l *Library) RemoveFromBorrowingRecord(ctx context.Context, isbn string) error {
	record, ok := l.loans.get(isbn)
	if !ok {
		return apperror.NewNotFoundError(fmt.Sprintf("no borrowing record found for ISBN %s", isbn))
	}

	entry := domain.NewHistoryEntry(record, l.now())
	if err := l.history.SaveRecord(ctx, entry); err != nil {
		l.logger.Error("failed to persist history entry", err)
		return err
	}

	l.loans.delete(isbn)

	if set, ok := l.userLoans[record.UserID]; ok {
		set.delete(isbn)
		if set.len() == 0 {
			delete(l.userLoans, record.UserID)
		}
	}

	l.logger.Debug("loan closed", map[string]interface{}{"isbn": isbn, "userId": record.UserID})
	return nil
}

// GetUserBorrowings returns the ISBNs currently lent to userID, oldest first.
func (l *Library) GetUserBorrowings(userID string) []string {
	set, ok := l.userLoans[userID]
	if !ok {
		return []string{}
	}
	return set.orderedKeys()
}

// HasBorrowings reports whether userID has a loan-set entry at all.
func (l *Library) HasBorrowings(userID string) bool {
	_, ok := l.userLoans[userID]
	return ok
}

// IsBorrowingLimitReached applies the borrowing policy to userID's active loans.
func (l *Library) IsBorrowingLimitReached(userID string) bool {
	count := 0
	if set, ok := l.userLoans[userID]; ok {
		count = set.len()
	}
	return l.policy.IsLimitReached(count)
}

// IsBookBorrowed reports whether isbn has an active loan.
func (l *Library) IsBookBorrowed(isbn string) bool {
	return l.loans.has(isbn)
}

// IsOverdue reports whether the active loan of isbn is past due.
func (l *Library) IsOverdue(isbn string) (bool, error) {
	record, ok := l.loans.get(isbn)
	if !ok {
		return false, apperror.NewNotFoundError(fmt.Sprintf("no borrowing record found for ISBN %s", isbn))
	}
	return record.IsOverdue(l.now()), nil
}

// ListBorrowingRecord returns every active loan.
func (l *Library) ListBorrowingRecord() []domain.BorrowingRecord {
	return l.loans.values()
}

// ListOverdueBooks returns the active loans that are past due now.
func (l *Library) ListOverdueBooks() []domain.BorrowingRecord {
	now := l.now()
	return lo.Filter(l.loans.values(), func(r domain.BorrowingRecord, _ int) bool {
		return r.IsOverdue(now)
	})
}

// GetHistory reads returned loans back from the history store.
func (l *Library) GetHistory(ctx context.Context, filter domain.HistoryFilter) ([]domain.HistoryEntry, error) {
	return l.history.GetHistory(ctx, filter)
}

// --- Fines ---

// CalculateOverdueFines returns the flat fine if the loan of isbn is overdue, zero otherwise.
func (l *Library) CalculateOverdueFines(isbn string) (int, error) {
	overdue, err := l.IsOverdue(isbn)
	if err != nil {
		return 0, err
	}
	if overdue {
		return l.fineAmount, nil
	}
	return 0, nil
}

// AddToOverdueFines adds amount to userID's balance.
func (l *Library) AddToOverdueFines(userID string, amount int) {
	current, _ := l.fines.get(userID)
	l.fines.set(userID, current+amount)
	l.logger.Info("overdue fine charged", map[string]interface{}{"userId": userID, "amount": amount, "balance": current + amount})
}

// RemoveFromOverdueFines clears userID's balance.
func (l *Library) RemoveFromOverdueFines(userID string) {
	l.fines.delete(userID)
}

// GetOverdueFines returns userID's balance, zero when none.
func (l *Library) GetOverdueFines(userID string) int {
	fine, _ := l.fines.get(userID)
	return fine
}

// ListOverdueFines returns every outstanding balance.
func (l *Library) ListOverdueFines() []domain.FineBalance {
	return lo.Map(l.fines.orderedKeys(), func(userID string, _ int) domain.FineBalance {
		fine, _ := l.fines.get(userID)
		return domain.FineBalance{UserID: userID, Fine: fine}
	})
}

// StatusSummary counts books, users and active loans.
func (l *Library) StatusSummary() domain.StatusSummary {
	return domain.StatusSummary{
		Books:         l.books.len(),
		Users:         l.users.len(),
		BorrowedBooks: l.loans.len(),
	}
}
