// Package auth adapts external OAuth identity providers for the login flow.
// The platform stores no passwords; a provider vouches for an email and a
// stable user identifier, and everything after that is membership data.
package auth
