package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when no tenant matches the slug.
	ErrTenantNotFound = errors.New("tenant.not_found")

	// ErrTenantInactive is returned for a tenant that exists but is
	// suspended or switched off.
	ErrTenantInactive = errors.New("tenant.inactive")

	// ErrInvalidSlug is returned when a tenant identifier fails validation.
	ErrInvalidSlug = errors.New("tenant.invalid_slug")

	// ErrNoTenantInContext is returned by RequireTenant when the request
	// reached a tenant-scoped handler without tenant context.
	ErrNoTenantInContext = errors.New("tenant.not_in_context")
)
