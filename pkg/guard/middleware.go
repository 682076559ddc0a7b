package guard

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/glowdesk/glowdesk/pkg/session"
	"github.com/glowdesk/glowdesk/pkg/tenant"
)

// DenialHook observes denials at the HTTP boundary, for audit trails.
// It must not block; slow sinks should buffer.
type DenialHook func(ctx context.Context, d Denial, path string)

// WithDenialHook registers an observer called for every denial the
// middleware turns into a redirect.
func WithDenialHook(hook DenialHook) Option {
	return func(g *Guard) {
		if hook != nil {
			g.denialHook = hook
		}
	}
}

// Protect authorizes every request against the group and redirects denials.
// The mapping is fixed:
//
//	no tenant          -> / (marketing root)
//	no session         -> group login path, destination preserved in ?next
//	no membership      -> group login path, same shape as no session
//	insufficient role  -> group landing path
//
// No-session and no-membership produce identical responses on purpose, so
// the redirect does not reveal whether an account exists in this salon.
func (g *Guard) Protect(group Group) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			t, _ := tenant.FromContext(ctx)
			grant, denial := g.Authorize(ctx, t, sessionUserID(ctx), group)
			if denial != nil {
				g.deny(w, r, group, *denial)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithGrant(ctx, grant)))
		})
	}
}

// ProtectPlatform guards the super-admin area. There is no tenant and no
// login flow here: every denial lands on the marketing root, which tells a
// probing client nothing about whether the area exists for someone else.
func (g *Guard) ProtectPlatform() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			grant, denial := g.AuthorizePlatform(ctx, sessionUserID(ctx))
			if denial != nil {
				if g.denialHook != nil {
					g.denialHook(ctx, *denial, r.URL.Path)
				}
				http.Redirect(w, r, "/", http.StatusFound)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithGrant(ctx, grant)))
		})
	}
}

func (g *Guard) deny(w http.ResponseWriter, r *http.Request, group Group, d Denial) {
	if g.denialHook != nil {
		g.denialHook(r.Context(), d, r.URL.Path)
	}

	var target string
	switch d.Reason {
	case DenyNoTenant:
		target = "/"
	case DenyNoSession, DenyNoMembership:
		target = group.LoginPath + "?next=" + url.QueryEscape(r.URL.RequestURI())
	case DenyInsufficientRole:
		target = group.LandingPath
	default:
		target = "/"
	}

	http.Redirect(w, r, target, http.StatusFound)
}

func sessionUserID(ctx context.Context) *uuid.UUID {
	if id, ok := session.UserIDFromContext(ctx); ok {
		return &id
	}
	return nil
}
