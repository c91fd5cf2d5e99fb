package domain

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apperror "golibrary/internal/errors"
)

var validate = validator.New()

// validationError turns validator output into a single ValidationError naming every failed field.
func validationError(entity string, err error) error {
	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return apperror.NewValidationError(fmt.Sprintf("%s: %v", entity, err))
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
	}
	return apperror.NewValidationError(fmt.Sprintf("%s: %s", entity, strings.Join(parts, ", ")))
}
