package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when a poem is submitted with a blank field.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound is returned by id-keyed lookups that match nothing.
	ErrNotFound = errors.New("poem not found")
)

// FieldError names the field that failed validation. It matches
// ErrInvalidInput with errors.Is.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s must not be empty", ErrInvalidInput, e.Field)
}

func (e *FieldError) Is(target error) bool {
	return target == ErrInvalidInput
}
