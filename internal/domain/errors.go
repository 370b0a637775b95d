package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks a submission rejected before reaching the store
	ErrValidation = errors.New("validation failed")

	// ErrTableNotFound is returned by a record store when a table does not exist
	ErrTableNotFound = errors.New("table not found")

	// ErrRowNotFound is returned by a record store when a row id does not exist
	ErrRowNotFound = errors.New("row not found")
)

// ValidationError reports which submitted field was rejected
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// MissingField builds the error for an absent required field
func MissingField(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "missing required field"}
}
