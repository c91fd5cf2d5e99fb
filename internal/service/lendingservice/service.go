package lendingservice

import (
	"context"
	"fmt"
	"time"

	"golibrary/internal/domain"
	apperror "golibrary/internal/errors"
	"golibrary/internal/pkg/logger"
)

// DefaultDueDays is the loan period used when LendBook gets dueDays <= 0.
const DefaultDueDays = 7

// Library is what the lending workflow needs from the aggregate.
type Library interface {
	Now() time.Time
	GetBook(isbn string) (domain.Book, bool)
	GetUser(userID string) (domain.User, bool)
	IsBookBorrowed(isbn string) bool
	IsBorrowingLimitReached(userID string) bool
	GetUserBorrowings(userID string) []string
	GetOverdueFines(userID string) int
	AddToBorrowingRecord(record domain.BorrowingRecord)
	RemoveFromBorrowingRecord(ctx context.Context, isbn string) error
	CalculateOverdueFines(isbn string) (int, error)
	AddToOverdueFines(userID string, amount int)
	RemoveFromOverdueFines(userID string)
	GetHistory(ctx context.Context, filter domain.HistoryFilter) ([]domain.HistoryEntry, error)
}

// Service composes the availability, borrowing-limit and fine rules
// into the lend and return use cases.
type Service struct {
	library        Library
	defaultDueDays int
	logger         logger.Logger
}

// NewService creates a lending service over lib. defaultDueDays <= 0 means DefaultDueDays.
func NewService(lib Library, defaultDueDays int, log logger.Logger) *Service {
	if defaultDueDays <= 0 {
		defaultDueDays = DefaultDueDays
	}
	return &Service{library: lib, defaultDueDays: defaultDueDays, logger: log}
}

// LendBook lends isbn to userID for dueDays days and returns a confirmation message.
// Checks run in order: book exists, user exists, book available, limit, fines.
func (s *Service) LendBook(isbn, userID string, dueDays int) (string, error) {
	s.logger.Debug("lend requested", map[string]interface{}{"isbn": isbn, "userId": userID, "dueDays": dueDays})

	book, user, err := s.resolve(isbn, userID)
	if err != nil {
		return "", err
	}

	if s.library.IsBookBorrowed(isbn) {
		s.logger.Warn("lend refused: book already borrowed", map[string]interface{}{"isbn": isbn})
		return "", apperror.NewConflictError(fmt.Sprintf("book with title: %s is currently marked as borrowed", book.Title))
	}

	if s.library.IsBorrowingLimitReached(userID) {
		count := len(s.library.GetUserBorrowings(userID))
		s.logger.Warn("lend refused: borrowing limit reached", map[string]interface{}{"userId": userID, "active": count})
		return "", apperror.NewPolicyViolationError(fmt.Sprintf("user with ID %s has reached the borrowing limit: %d", userID, count))
	}

	if fines := s.library.GetOverdueFines(userID); fines > 0 {
		s.logger.Warn("lend refused: outstanding fines", map[string]interface{}{"userId": userID, "fines": fines})
		return "", apperror.NewPolicyViolationError(fmt.Sprintf("user with ID %s has %d overdue fines, please pay them first", userID, fines))
	}

	if dueDays <= 0 {
		dueDays = s.defaultDueDays
	}
	now := s.library.Now()
	dueDate := now.AddDate(0, 0, dueDays)
	s.library.AddToBorrowingRecord(domain.NewBorrowingRecord(user.ID(), book.ISBN(), now, dueDate))

	s.logger.Info("book lent", map[string]interface{}{"isbn": isbn, "userId": userID, "dueDate": dueDate})
	return fmt.Sprintf("%s has been borrowed by %s.", book.Title, user.Name), nil
}

// ReturnBook closes the loan of isbn held by userID, charging the overdue fine
// when due. The history write happens inside the aggregate and its failure is
// returned unchanged, with neither the loan nor the fine balance touched.
func (s *Service) ReturnBook(ctx context.Context, isbn, userID string) (string, error) {
	s.logger.Debug("return requested", map[string]interface{}{"isbn": isbn, "userId": userID})

	book, user, err := s.resolve(isbn, userID)
	if err != nil {
		return "", err
	}

	if !s.library.IsBookBorrowed(isbn) {
		return "", apperror.NewNotFoundError(fmt.Sprintf("book with title: %s is not currently marked as borrowed", book.Title))
	}

	fine, err := s.library.CalculateOverdueFines(isbn)
	if err != nil {
		return "", err
	}

	// Charge only after the loan is closed.
	if err := s.library.RemoveFromBorrowingRecord(ctx, isbn); err != nil {
		s.logger.Error("failed to close loan", err)
		return "", err
	}
	if fine > 0 {
		s.library.AddToOverdueFines(user.ID(), fine)
	}

	s.logger.Info("book returned", map[string]interface{}{"isbn": isbn, "userId": userID, "fine": fine})
	if fine > 0 {
		return fmt.Sprintf("%s has been returned by %s with a fine of %d.", book.Title, user.Name, fine), nil
	}
	return fmt.Sprintf("%s has been returned by %s.", book.Title, user.Name), nil
}

// PayFines settles userID's outstanding balance.
func (s *Service) PayFines(userID string) (string, error) {
	user, ok := s.library.GetUser(userID)
	if !ok {
		return "", apperror.NewNotFoundError(fmt.Sprintf("user with ID %s not registered in library", userID))
	}

	fines := s.library.GetOverdueFines(userID)
	if fines == 0 {
		return fmt.Sprintf("%s has no outstanding fines.", user.Name), nil
	}

	s.library.RemoveFromOverdueFines(userID)
	s.logger.Info("fines paid", map[string]interface{}{"userId": userID, "amount": fines})
	return fmt.Sprintf("%s has paid fines of %d.", user.Name, fines), nil
}

// History returns the returned loans of userID, or of everyone when userID is empty.
func (s *Service) History(ctx context.Context, userID string) ([]domain.HistoryEntry, error) {
	entries, err := s.library.GetHistory(ctx, domain.HistoryFilter{UserID: userID})
	if err != nil {
		s.logger.Error("failed to read history", err)
		return nil, err
	}
	return entries, nil
}

func (s *Service) resolve(isbn, userID string) (domain.Book, domain.User, error) {
	book, ok := s.library.GetBook(isbn)
	if !ok {
		return domain.Book{}, domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("book with ISBN %s not found in library", isbn))
	}

	user, ok := s.library.GetUser(userID)
	if !ok {
		return domain.Book{}, domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("user with ID %s not registered in library", userID))
	}

	return book, user, nil
}
