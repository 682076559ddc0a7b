package guard

import "fmt"

// Role is the closed set of roles a user can hold. Owner, Admin, Secretary,
// and Customer are tenant-scoped membership roles; SuperAdmin exists only on
// platform profiles and never appears in a membership.
type Role string

const (
	RoleOwner      Role = "owner"
	RoleAdmin      Role = "admin"
	RoleSecretary  Role = "secretary"
	RoleCustomer   Role = "customer"
	RoleSuperAdmin Role = "super_admin"
)

// ParseRole converts a stored string into a Role, rejecting anything outside
// the closed set so an unexpected database value cannot widen access.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleOwner, RoleAdmin, RoleSecretary, RoleCustomer, RoleSuperAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// In reports whether the role appears in the allow-list.
func (r Role) In(allowed []Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

func (r Role) String() string { return string(r) }
