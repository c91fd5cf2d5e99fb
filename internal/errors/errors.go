package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the common interface of every typed error raised by the library.
// Callers read the Category to decide how to present the failure.
type AppError interface {
	Error() string
	Category() string
	Unwrap() error
}

const (
	CategoryValidation      = "INVALID_ARGUMENT"
	CategoryNotFound        = "NOT_FOUND"
	CategoryConflict        = "CONFLICT"
	CategoryPolicyViolation = "POLICY_VIOLATION"
	CategoryStorage         = "STORAGE_ERROR"
	CategoryUnknown         = "UNKNOWN_ERROR"
)

// --- Domain errors ---

// ValidationError reports malformed or wrongly typed input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return fmt.Sprintf("invalid argument: %s", e.Msg) }
func (e *ValidationError) Category() string { return CategoryValidation }
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError creates a new validation error.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// NotFoundError reports an unknown book, user or active loan.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return fmt.Sprintf("not found: %s", e.Msg) }
func (e *NotFoundError) Category() string { return CategoryNotFound }
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError creates a new not-found error.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// ConflictError reports a duplicate identity or a book that is already lent.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string    { return fmt.Sprintf("conflict: %s", e.Msg) }
func (e *ConflictError) Category() string { return CategoryConflict }
func (e *ConflictError) Unwrap() error    { return nil }

// NewConflictError creates a new conflict error.
func NewConflictError(msg string) AppError {
	return &ConflictError{Msg: msg}
}

// PolicyViolationError reports a lending rule that refused the operation
// (borrowing limit reached, outstanding fines).
type PolicyViolationError struct {
	Msg string
}

func (e *PolicyViolationError) Error() string    { return fmt.Sprintf("policy violation: %s", e.Msg) }
func (e *PolicyViolationError) Category() string { return CategoryPolicyViolation }
func (e *PolicyViolationError) Unwrap() error    { return nil }

// NewPolicyViolationError creates a new policy violation error.
func NewPolicyViolationError(msg string) AppError {
	return &PolicyViolationError{Msg: msg}
}

// --- Infrastructure errors ---

// StorageError wraps failures of the durable history store.
type StorageError struct {
	Msg string
	Err error
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("storage error: %s", e.Msg)
	}
	return fmt.Sprintf("storage error: %s: %s", e.Msg, e.Err.Error())
}
func (e *StorageError) Category() string { return CategoryStorage }
func (e *StorageError) Unwrap() error    { return e.Err }

// NewStorageError creates a storage error keeping the underlying cause.
func NewStorageError(msg string, err error) AppError {
	return &StorageError{Msg: msg, Err: err}
}

// CategoryOf returns the category of the first AppError in the chain of err.
func CategoryOf(err error) string {
	var appErr AppError
	if stderrors.As(err, &appErr) {
		return appErr.Category()
	}
	return CategoryUnknown
}

// Describe translates an error into the category and message shown to a user.
func Describe(err error) (string, string) {
	var appErr AppError
	if stderrors.As(err, &appErr) {
		return appErr.Category(), appErr.Error()
	}

	return CategoryUnknown, "an unexpected error occurred"
}
