// Package router assembles the HTTP surface: the middleware pipeline, the
// protected route groups, the login flow against the external identity
// provider, and the billing webhook mount.
package router
