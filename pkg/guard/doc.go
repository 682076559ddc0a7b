// Package guard decides whether a request may reach a protected area and
// says why when it may not.
//
// The decision chain for tenant-scoped areas runs in a fixed order: the
// tenant must be serving, a session must be present, the user must hold a
// membership in the tenant, and the membership role must be in the route
// group's allow-list. The first failing condition becomes the denial reason;
// later conditions are never evaluated, so a missing session is reported the
// same way whether or not a membership would have existed.
//
// Authorize returns a Grant or a Denial, never an HTTP response. The Protect
// middleware is the one place denials turn into redirects, which keeps every
// protected route's redirect behavior in a single switch.
//
// The super-admin area uses a separate flat check: a platform profile with
// the super_admin role. Tenant memberships play no part in it.
package guard
