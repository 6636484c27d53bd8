// Package errors provides the base error kinds shared by every package. Domain
// packages wrap these sentinels so that callers (the CLI, HTTP handlers) can
// classify a failure with errors.Is without knowing the domain error itself.
package errors

import (
	"errors"
	"fmt"
)

// Base error kinds.
var (
	// ErrInvalidInput indicates malformed input: bad encoding, wrong key size,
	// truncated or unsupported token structure.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates a token that could not be trusted: failed
	// authentication or past its time-to-live.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a conflict with existing data.
	ErrConflict = errors.New("conflict")

	// ErrForbidden indicates the caller is not allowed to perform the operation.
	ErrForbidden = errors.New("forbidden")
)

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Returns nil when err is nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join returns an error that wraps the given errors, discarding nils.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
