package tenant

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type tenantKey struct{}
type slugKey struct{}

// WithTenant attaches a loaded tenant to the context.
func WithTenant(ctx context.Context, t *Tenant) context.Context {
	return context.WithValue(ctx, tenantKey{}, t)
}

// FromContext retrieves the tenant from the context.
func FromContext(ctx context.Context) (*Tenant, bool) {
	t, ok := ctx.Value(tenantKey{}).(*Tenant)
	return t, ok
}

// MustFromContext panics when no tenant is present. For handlers mounted
// strictly behind RequireTenant.
func MustFromContext(ctx context.Context) *Tenant {
	t, ok := FromContext(ctx)
	if !ok || t == nil {
		panic("tenant: no tenant in context")
	}
	return t
}

// IDFromContext returns the tenant id without exposing the full row.
func IDFromContext(ctx context.Context) (uuid.UUID, bool) {
	t, ok := FromContext(ctx)
	if !ok || t == nil {
		return uuid.UUID{}, false
	}
	return t.ID, true
}

// WithSlug records the resolved slug even when the tenant row failed to
// load, so logs and the audit trail can name the slug that was attempted.
func WithSlug(ctx context.Context, slug string) context.Context {
	return context.WithValue(ctx, slugKey{}, slug)
}

// SlugFromContext retrieves the resolved slug from the context.
func SlugFromContext(ctx context.Context) (string, bool) {
	slug, ok := ctx.Value(slugKey{}).(string)
	return slug, ok && slug != ""
}

// LoggerExtractor enriches log records with the resolved tenant slug.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if slug, ok := SlugFromContext(ctx); ok {
			return slog.String("tenant_slug", slug), true
		}
		return slog.Attr{}, false
	}
}
