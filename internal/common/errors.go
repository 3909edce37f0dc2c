// Package common defines shared constants and sentinel errors used across
// Testoria components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Account store errors (validation outcomes, recoverable by the caller).
	ErrDuplicateName      = errors.New("account name already taken")
	ErrInvalidCredentials = errors.New("invalid name or password")

	// Session errors.
	ErrNoActiveSession = errors.New("no active session")
)
