// Package common defines shared sentinel errors used across TaskKeeper
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")

	// User-editing errors. Both map to the same external status as
	// ErrorEmailTaken, but stay distinguishable for logging.
	ErrorInvalidID = errors.New("invalid id")
	ErrorUserGone  = errors.New("user does not exist")

	// ErrorEmailTaken signals a unique-email conflict at registration
	// or profile edit.
	ErrorEmailTaken = errors.New("email already exists")
)
