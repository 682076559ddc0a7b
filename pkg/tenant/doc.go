// Package tenant resolves which salon a request addresses and loads its
// record for the rest of the request to use.
//
// Resolution is hostname-first: royal.glowdesk.app and royal.localhost both
// resolve the slug "royal", while the bare root domain serves the marketing
// site with no tenant context. An explicit header resolver covers internal
// request rewrites, and a composite resolver chains both.
//
// The middleware resolves once per request before any authorization runs,
// and every later layer reads the result from the context instead of
// re-inspecting request headers.
package tenant
