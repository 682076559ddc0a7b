package guard

import (
	"context"

	"github.com/google/uuid"
)

// Membership binds a user identity to a tenant with exactly one role.
// There is at most one membership per (user, tenant) pair.
type Membership struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
	Role     Role
}

// Profile is a user's platform-level record, independent of any tenant.
// Only the role matters to the guard: super admins are identified here.
type Profile struct {
	UserID uuid.UUID
	Role   Role
}

// MembershipSource looks up a user's membership within a tenant.
// Implementations return ErrMembershipNotFound when no membership exists.
type MembershipSource interface {
	FindMembership(ctx context.Context, tenantID, userID uuid.UUID) (*Membership, error)
}

// ProfileSource looks up a user's platform profile.
// Implementations return ErrProfileNotFound when no profile exists.
type ProfileSource interface {
	FindProfile(ctx context.Context, userID uuid.UUID) (*Profile, error)
}
