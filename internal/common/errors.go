// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Storage errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")

	// Input errors.
	ErrInvalidInput = errors.New("invalid input")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ValidationError reports input that is refused before any store call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidInput) match every validation error.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a validation error for the named field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// FailureKind distinguishes the recoverable failure classes of a store write.
type FailureKind int

const (
	// KindTransport is a network or server failure; retrying may succeed.
	KindTransport FailureKind = iota
	// KindConflict means the target no longer exists server-side.
	KindConflict
)

// String returns the name of the failure kind.
func (k FailureKind) String() string {
	if k == KindConflict {
		return "conflict"
	}
	return "transport"
}

// CommitError wraps a failed store write with the message shown to the user.
type CommitError struct {
	Err         error
	UserMessage string
	Kind        FailureKind
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}

// Retryable reports whether re-issuing the same write may succeed.
func (e *CommitError) Retryable() bool {
	return e.Kind == KindTransport
}

// NewCommitError classifies a store failure into the commit error taxonomy.
func NewCommitError(err error) *CommitError {
	if errors.Is(err, ErrNotFound) {
		return &CommitError{
			Kind:        KindConflict,
			Err:         err,
			UserMessage: "item no longer exists; cancel and reload the inventory",
		}
	}
	return &CommitError{
		Kind:        KindTransport,
		Err:         err,
		UserMessage: "could not save the change; try again",
	}
}

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
