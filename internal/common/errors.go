// Package common defines shared constants and sentinel errors used across
// client and server layers of etfdesk. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("access denied")
	ErrorConflict     = errors.New("already exists")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Client-side session errors. Login and registration must let callers
	// distinguish a rejected credential from a transport failure.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNetwork            = errors.New("network error")
	ErrNoToken            = errors.New("no token received from server")
)
