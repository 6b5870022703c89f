// Package common defines shared constants and sentinel errors used across
// client and server layers of the identity service. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors (generic flow control).
	ErrInternal = errors.New("internal error")

	// ErrUnauthorized is the single failure reported for bad credentials.
	// An unknown email and a wrong secret produce the same value so that
	// account existence cannot be probed through the login endpoint.
	ErrUnauthorized = errors.New("invalid credentials")

	// ErrInvalidToken covers tampered, malformed and expired access tokens.
	ErrInvalidToken = errors.New("invalid token")
)
