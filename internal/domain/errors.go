package domain

import "errors"

// Sentinel errors shared across services. Wrap with fmt.Errorf and
// %w so callers can branch with errors.Is.
var (
	// ErrNotFound: a mutation or lookup target does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDataUnavailable: the backing store returned no data for a
	// read that is never legitimately empty. Distinct from a result
	// filtered down to nothing.
	ErrDataUnavailable = errors.New("data unavailable")

	// ErrValidation: a required field is missing or invalid.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized: missing or bad credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden: authenticated but not allowed.
	ErrForbidden = errors.New("forbidden")
)
