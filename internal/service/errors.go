package service

import (
	"github.com/daybook/daybook-go/internal/form"
)

// ValidationError carries field-level messages for user-correctable input
// problems, including duplicate-key collisions surfaced by the store. When
// it is returned no mutation has been performed.
type ValidationError struct {
	Fields form.Errors
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

func validationFailed(errs form.Errors) *ValidationError {
	return &ValidationError{Fields: errs}
}

func fieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: form.Errors{field: message}}
}
