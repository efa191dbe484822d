package errs

import "errors"

// Common sentinel errors for cross-layer signaling.
var (
	ErrNotFound        = errors.New("not_found")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrInvalid         = errors.New("invalid")
	// ErrConflict is used for uniqueness violations (duplicate email)
	ErrConflict = errors.New("conflict")
)
