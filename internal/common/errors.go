// Package common defines shared constants and sentinel errors used across
// the storefront client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Auth errors.
	ErrNotLoggedIn  = errors.New("not logged in")
	ErrInvalidToken = errors.New("invalid token")

	// Result of a network call that was superseded while in flight.
	ErrStaleResponse = errors.New("stale response")
)
