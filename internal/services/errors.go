package services

import "errors"

// Sentinel errors returned by the services. The HTTP layer maps these onto
// status codes; anything else is an unexpected internal failure.
var (
	// ErrValidation indicates missing or malformed caller input.
	ErrValidation = errors.New("validation failed")

	// ErrConflict indicates a uniqueness violation, e.g. a duplicate email.
	ErrConflict = errors.New("already exists")

	// ErrNotFound indicates the row does not exist for the caller. Ownership
	// mismatches surface as ErrNotFound too, so one user can never probe for
	// the existence of another user's rows.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials indicates a failed password check.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
