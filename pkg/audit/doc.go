// Package audit records security-relevant events: guard denials, logins,
// and billing-driven tenant transitions.
//
// Events flow through a buffered Recorder into a Sink, so the request path
// pays one channel send regardless of how slow the backend is. OpenSearch is
// the production sink; slog serves development and acts as the fallback.
package audit
