package guard

// DenialReason classifies why a request was turned away.
type DenialReason string

const (
	// DenyNoTenant: the route group needs a tenant and none resolved, or
	// the resolved tenant is unknown or not serving.
	DenyNoTenant DenialReason = "no_tenant"

	// DenyNoSession: no authenticated identity on a protected path.
	DenyNoSession DenialReason = "no_session"

	// DenyNoMembership: a valid identity with no membership in this tenant.
	// Identity and authorization are separate axes; a global login grants
	// nothing inside a salon.
	DenyNoMembership DenialReason = "no_membership"

	// DenyInsufficientRole: a member whose role is outside the group's
	// allow-list.
	DenyInsufficientRole DenialReason = "insufficient_role"
)

// Denial is the guard's structured refusal. The boundary layer decides what
// HTTP response it becomes; the guard itself never writes a redirect.
type Denial struct {
	Reason DenialReason
	// Role is set for insufficient-role denials so the audit trail can
	// name what the caller actually held.
	Role Role
}
