package auth

import "errors"

var (
	// ErrMissingToken is returned when no bearer credential is present.
	ErrMissingToken = errors.New("missing or invalid Authorization header")

	// ErrInvalidToken is returned for malformed, tampered or expired tokens.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrUnknownUser is returned when a valid token references an identity
	// that no longer exists.
	ErrUnknownUser = errors.New("unknown user")
)
