// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Ledger errors.
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidLimit      = errors.New("invalid limit")
	ErrDuplicateCategory = errors.New("duplicate category")
	ErrCategoryNotFound  = errors.New("category not found")

	// Persistence errors.
	ErrMalformedRecord = errors.New("malformed category record")
	ErrCorruptStore    = errors.New("budget store corrupted")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsRecoverable reports whether an error should be reported to the user and
// control returned to the shell loop, rather than terminating the process.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidLimit) ||
		errors.Is(err, ErrDuplicateCategory) ||
		errors.Is(err, ErrCategoryNotFound)
}
