package guard

import "context"

type grantKey struct{}

// WithGrant attaches an authorization grant to the context.
func WithGrant(ctx context.Context, g *Grant) context.Context {
	return context.WithValue(ctx, grantKey{}, g)
}

// GrantFromContext retrieves the grant from the context.
func GrantFromContext(ctx context.Context) (*Grant, bool) {
	g, ok := ctx.Value(grantKey{}).(*Grant)
	return g, ok
}

// RoleFromContext returns the role the request was granted with.
func RoleFromContext(ctx context.Context) (Role, bool) {
	g, ok := GrantFromContext(ctx)
	if !ok || g == nil {
		return "", false
	}
	return g.Role, true
}
