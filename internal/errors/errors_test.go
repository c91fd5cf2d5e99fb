package errors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	apperror "golibrary/internal/errors"
)

func TestCategoryOf(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected string
	}{
		{"validation", apperror.NewValidationError("bad"), apperror.CategoryValidation},
		{"not found", apperror.NewNotFoundError("missing"), apperror.CategoryNotFound},
		{"conflict", apperror.NewConflictError("dup"), apperror.CategoryConflict},
		{"policy", apperror.NewPolicyViolationError("limit"), apperror.CategoryPolicyViolation},
		{"storage", apperror.NewStorageError("write", errors.New("disk full")), apperror.CategoryStorage},
		{"wrapped", fmt.Errorf("return failed: %w", apperror.NewNotFoundError("loan")), apperror.CategoryNotFound},
		{"plain", errors.New("boom"), apperror.CategoryUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, apperror.CategoryOf(tc.err))
		})
	}
}

func TestStorageError_UnwrapsCause(t *testing.T) {
	cause := errors.New("permission denied")
	err := apperror.NewStorageError("failed to read history file", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to read history file")
	assert.Contains(t, err.Error(), "permission denied")
}

func TestDescribe(t *testing.T) {
	category, msg := apperror.Describe(apperror.NewConflictError("book already borrowed"))
	assert.Equal(t, apperror.CategoryConflict, category)
	assert.Equal(t, "conflict: book already borrowed", msg)

	category, msg = apperror.Describe(errors.New("driver exploded"))
	assert.Equal(t, apperror.CategoryUnknown, category)
	assert.Equal(t, "an unexpected error occurred", msg)
}
