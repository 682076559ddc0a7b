package auth

import "errors"

var (
	// ErrInvalidState is returned when the callback state token does not
	// match the one issued for this login attempt.
	ErrInvalidState = errors.New("auth.invalid_state")
	// ErrInvalidCode is returned when the provider rejects the
	// authorization code exchange.
	ErrInvalidCode = errors.New("auth.invalid_code")
	// ErrUnverifiedEmail is returned when the provider account's email is
	// not verified and the adapter requires verification.
	ErrUnverifiedEmail = errors.New("auth.unverified_email")
	// ErrNoEmail is returned when the provider profile carries no email.
	ErrNoEmail = errors.New("auth.no_email")
	// ErrStateGeneration is returned when random state generation fails.
	ErrStateGeneration = errors.New("auth.state_generation_failed")
)
