package tenant

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Middleware resolves the request's tenant and attaches it to the context.
//
// Excluded path prefixes (the platform console, system webhooks) bypass
// resolution entirely; any inbound tenant header is stripped on those paths
// so a spoofed header cannot ride into an excluded handler. For all other
// paths the middleware resolves a slug, loads the tenant through the cache,
// and attaches it when it is serving.
//
// Lookup failures are downgraded to "no tenant": the request proceeds
// without tenant context and the guard layer decides what that means for the
// route. The failure is logged and the caller cannot distinguish a storage
// outage from an absent tenant; access fails closed either way.
func Middleware(resolve Resolver, provider Provider, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		cache:         NewMemoryCache(DefaultCacheSize),
		cacheTTL:      5 * time.Minute,
		lookupTimeout: 5 * time.Second,
		headerName:    DefaultTenantHeader,
		log:           slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, prefix := range cfg.skipPaths {
				if strings.HasPrefix(r.URL.Path, prefix) {
					// No tenant context on excluded paths, resolvable or not.
					r.Header.Del(cfg.headerName)
					next.ServeHTTP(w, r)
					return
				}
			}

			slug, err := resolve(r)
			if err != nil {
				cfg.log.WarnContext(r.Context(), "tenant resolution rejected", "error", err, "host", r.Host)
				next.ServeHTTP(w, r)
				return
			}
			if slug == "" {
				// Marketing visitor, not an error.
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithSlug(r.Context(), slug)

			t, ok := cfg.cache.Get(ctx, slug)
			if !ok {
				t, err = load(ctx, provider, slug, cfg.lookupTimeout)
				if err != nil {
					if !errors.Is(err, ErrTenantNotFound) {
						cfg.log.ErrorContext(ctx, "tenant lookup failed", "error", err, "tenant_slug", slug)
					}
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
				cfg.cache.Set(ctx, slug, t, cfg.cacheTTL)
			}

			if !t.IsServing() {
				cfg.log.InfoContext(ctx, "inactive tenant denied", "tenant_slug", slug, "status", t.Status)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithTenant(ctx, t)))
		})
	}
}

// load fetches the tenant with a bounded timeout so a stalled store denies
// access instead of stalling the request.
func load(ctx context.Context, provider Provider, slug string, timeout time.Duration) (*Tenant, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return provider.GetBySlug(ctx, slug)
}

// RequireTenant guards tenant-scoped subtrees: requests without a serving
// tenant in context are redirected to the marketing site root.
func RequireTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t, ok := FromContext(r.Context())
		if !ok || !t.IsServing() {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
