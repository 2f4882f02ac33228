// Package apperr holds the error kinds shared by every layer.
// Repositories and services wrap these with fmt.Errorf("...: %w", ...) and the
// REST layer maps them to status codes with errors.Is.
package apperr

import "errors"

var (
	// ErrNotFound means the addressed record does not exist or is not visible to the caller.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the caller is known but may not perform the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict means the operation clashes with the current state of a record.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput means the request failed validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized means the caller could not be authenticated.
	ErrUnauthorized = errors.New("unauthorized")
)
