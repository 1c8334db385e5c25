package errors

import (
	"errors"
	"fmt"
)

// Common error types for the dashboard
var (
	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrInvalidPayload  = errors.New("invalid login payload")

	// Storage errors
	ErrStorageKeyNotFound = errors.New("storage key not found")
	ErrStorageUnavailable = errors.New("storage unavailable")

	// Request errors
	ErrInvalidID       = errors.New("invalid id")
	ErrRequired        = errors.New("required field missing")
	ErrNothingToDelete = errors.New("no delete confirmation pending")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
