package storage

import "errors"

var (
	// ErrMembershipExists is returned when a second membership is created
	// for the same (tenant, user) pair.
	ErrMembershipExists = errors.New("storage.membership_exists")
)
