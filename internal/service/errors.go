// Package service provides business logic for accounts, profiles and the
// item catalog, delegating persistence and file storage to collaborator
// interfaces.
package service

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized signals that no authenticated principal was
	// presented for an operation requiring one.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials signals a failed login. Unknown username and
	// wrong password are deliberately indistinguishable to avoid user
	// enumeration.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrNotFound signals that the referenced account or item is absent.
	ErrNotFound = errors.New("not found")
)

// ValidationError reports missing or malformed input; the caller can
// recover by resubmitting corrected data.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// DuplicateError reports a uniqueness violation and names the colliding
// field so the caller can show a precise message.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	if e.Field == "" {
		return "duplicate value"
	}
	return fmt.Sprintf("duplicate %s", e.Field)
}
