package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Validation errors raised at the form boundary, before any store call.
	ErrValidation = errors.New("validation error")

	// Session errors.
	ErrNoSession = errors.New("no active session")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
