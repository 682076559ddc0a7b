package session

import "errors"

var (
	// ErrInvalidSession indicates a malformed or corrupted session.
	ErrInvalidSession = errors.New("session.invalid")

	// ErrSessionExpired indicates the session lifetime has elapsed.
	ErrSessionExpired = errors.New("session.expired")

	// ErrSessionNotFound indicates no session exists for the token.
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrTokenGeneration indicates the random token source failed.
	ErrTokenGeneration = errors.New("session.token_generation_failed")

	// ErrStoreUnavailable indicates the backing store could not be reached.
	ErrStoreUnavailable = errors.New("session.store_unavailable")
)
