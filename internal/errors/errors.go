package errors

import (
	"errors"
	"fmt"
)

// Common error types for the people manager client and its embedded backend
var (
	// Session errors
	ErrSessionExpired = errors.New("session expired")
	ErrNoSession      = errors.New("no active session")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")

	// Record errors
	ErrNotFound      = errors.New("not found")
	ErrUsernameTaken = errors.New("username already exists")

	// General errors
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
