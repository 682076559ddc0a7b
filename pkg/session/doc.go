// Package session manages browser sessions for the platform: anonymous
// sessions for marketing and shop visitors, authenticated sessions after
// login with the external identity provider.
//
// Tokens travel in encrypted cookies and resolve against a pluggable store
// (in-memory or Redis). The Refresh middleware keeps cookie and store expiry
// in sync on every request, which is what lets downstream guards trust the
// session state they find in the context.
package session
