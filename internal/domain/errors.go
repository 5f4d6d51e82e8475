package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the two failure classes a caller must tell apart.
var (
	// ErrValidation marks malformed or out-of-domain user input.
	ErrValidation = errors.New("validation error")
	// ErrLookup marks a rate-table gap (unknown year or category).
	ErrLookup = errors.New("rate table lookup error")
)

// ValidationError names the offending input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a validation error for field.
func NewValidationError(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// LookupError reports a missing rate-table entry.
type LookupError struct {
	Table string
	Key   string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("no %s entry for %q", e.Table, e.Key)
}

// Is lets errors.Is(err, ErrLookup) match any LookupError.
func (e *LookupError) Is(target error) bool {
	return target == ErrLookup
}

// NewLookupError creates a lookup error for key in table.
func NewLookupError(table string, key any) error {
	return &LookupError{Table: table, Key: fmt.Sprint(key)}
}
