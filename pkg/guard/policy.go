package guard

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Group is a set of paths sharing one authorization requirement.
type Group struct {
	// Name identifies the group in logs and audit events.
	Name string `yaml:"name"`
	// PathPrefix matches requests into this group.
	PathPrefix string `yaml:"path_prefix"`
	// Roles is the allow-list. A member whose role is outside it is
	// redirected to LandingPath, not to login.
	Roles []Role `yaml:"roles"`
	// LoginPath receives unauthenticated (and non-member) requests, with
	// the original destination in a "next" query parameter.
	LoginPath string `yaml:"login_path"`
	// LandingPath is the always-permitted area members land on when their
	// role is insufficient for this group.
	LandingPath string `yaml:"landing_path"`
}

// Policy is the ordered list of protected route groups. Earlier groups win,
// so narrower prefixes must be listed before the prefixes that contain them.
type Policy struct {
	Groups []Group `yaml:"groups"`
}

// Match returns the first group whose prefix matches the path.
func (p Policy) Match(path string) (Group, bool) {
	for _, g := range p.Groups {
		if strings.HasPrefix(path, g.PathPrefix) {
			return g, true
		}
	}
	return Group{}, false
}

// ParsePolicy reads a YAML policy document and validates every group.
func ParsePolicy(raw []byte) (Policy, error) {
	var p Policy
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Policy{}, fmt.Errorf("%w: %w", ErrInvalidPolicy, err)
	}

	for i, g := range p.Groups {
		if g.Name == "" || g.PathPrefix == "" {
			return Policy{}, fmt.Errorf("%w: group %d needs name and path_prefix", ErrInvalidPolicy, i)
		}
		if len(g.Roles) == 0 {
			return Policy{}, fmt.Errorf("%w: group %q has an empty allow-list", ErrInvalidPolicy, g.Name)
		}
		for _, r := range g.Roles {
			if _, err := ParseRole(string(r)); err != nil {
				return Policy{}, fmt.Errorf("%w: group %q: %w", ErrInvalidPolicy, g.Name, err)
			}
		}
		if g.LoginPath == "" {
			return Policy{}, fmt.Errorf("%w: group %q needs login_path", ErrInvalidPolicy, g.Name)
		}
		if g.LandingPath == "" {
			return Policy{}, fmt.Errorf("%w: group %q needs landing_path", ErrInvalidPolicy, g.Name)
		}
	}

	return p, nil
}

// DefaultPolicy is the built-in routing table: the admin-only settings
// subtree and the wider staff area. The settings prefix is listed first so
// it wins over the general admin prefix.
func DefaultPolicy() Policy {
	return Policy{Groups: []Group{
		{
			Name:        "admin-settings",
			PathPrefix:  "/admin/settings",
			Roles:       []Role{RoleOwner, RoleAdmin},
			LoginPath:   "/admin/login",
			LandingPath: "/admin",
		},
		{
			Name:        "admin-staff",
			PathPrefix:  "/admin",
			Roles:       []Role{RoleOwner, RoleAdmin, RoleSecretary},
			LoginPath:   "/admin/login",
			LandingPath: "/admin",
		},
	}}
}
