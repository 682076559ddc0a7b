package guard

import "errors"

var (
	// ErrUnknownRole is returned when a stored role string is not in the
	// closed role set.
	ErrUnknownRole = errors.New("guard.unknown_role")
	// ErrMembershipNotFound is returned by membership sources when the
	// user has no membership in the tenant.
	ErrMembershipNotFound = errors.New("guard.membership_not_found")
	// ErrProfileNotFound is returned by profile sources when the user has
	// no platform profile.
	ErrProfileNotFound = errors.New("guard.profile_not_found")
	// ErrInvalidPolicy is returned when a policy document fails parsing or
	// validation.
	ErrInvalidPolicy = errors.New("guard.invalid_policy")
)
