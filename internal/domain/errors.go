package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every usecase error wraps exactly one of these so the
// transport layer can map it to a status code with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnavailable  = errors.New("storage unavailable")
	ErrInternal     = errors.New("internal error")
)

var (
	ErrEmailTaken         = fmt.Errorf("email already registered: %w", ErrConflict)
	ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", ErrUnauthorized)
	ErrTokenInvalid       = fmt.Errorf("token is invalid or expired: %w", ErrUnauthorized)
	ErrUserNotFound       = fmt.Errorf("user: %w", ErrNotFound)

	ErrTaskNotFound  = fmt.Errorf("task: %w", ErrNotFound)
	ErrUnknownStatus = fmt.Errorf("unknown task status: %w", ErrInternal)
)

var kinds = []error{ErrValidation, ErrUnauthorized, ErrNotFound, ErrConflict, ErrUnavailable, ErrInternal}

// HasKind reports whether err already wraps one of the error kinds.
func HasKind(err error) bool {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return true
		}
	}
	return false
}
