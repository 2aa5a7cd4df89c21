package types

import (
	ierr "github.com/openhoa/openhoa/internal/errors"
)

// NewFieldValidationError builds a validation error naming the offending field
func NewFieldValidationError(field, message string) error {
	return ierr.NewError("validation failed for " + field).
		WithHintf("%s: %s", field, message).
		WithReportableDetails(map[string]any{
			"field": field,
		}).
		Mark(ierr.ErrValidation)
}
