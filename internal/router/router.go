package router

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/glowdesk/glowdesk/internal/storage"
	"github.com/glowdesk/glowdesk/pkg/audit"
	"github.com/glowdesk/glowdesk/pkg/auth"
	"github.com/glowdesk/glowdesk/pkg/cookie"
	"github.com/glowdesk/glowdesk/pkg/guard"
	"github.com/glowdesk/glowdesk/pkg/session"
	"github.com/glowdesk/glowdesk/pkg/tenant"
)

// Paths excluded from tenant resolution. The webhook talks in billing
// customer ids, the super-admin area is tenant-free by definition, and the
// health endpoint must answer even when the store is down.
var tenantSkipPaths = []string{"/superadmin", "/api/webhooks", "/healthz"}

// ProfileDirectory is the slice of profile storage the login flow needs.
// Satisfied by *storage.ProfileStore.
type ProfileDirectory interface {
	UpsertFromLogin(ctx context.Context, provider string, pp auth.ProviderProfile) (*storage.Profile, error)
}

// Deps carries everything the router wires together.
type Deps struct {
	Log      *slog.Logger
	Sessions *session.Manager
	Tenants  tenant.Provider
	Cache    tenant.Cache
	Guard    *guard.Guard
	Policy   guard.Policy
	Provider auth.ProviderAdapter
	Profiles ProfileDirectory
	Cookies  *cookie.Manager
	Recorder *audit.Recorder

	// PaddleWebhook handles billing callbacks; mounted under /api/webhooks.
	PaddleWebhook http.Handler
	// RootDomain is the apex serving the marketing site; subdomains of it
	// are salon sites.
	RootDomain string
	// Health answers /healthz. Optional.
	Health http.Handler
}

// New assembles the full request pipeline:
//
//	recover -> request log -> session refresh -> tenant resolution -> routes
//
// Tenant resolution runs before any guard so every authorization decision
// sees the same tenant state, and it skips the excluded prefixes entirely.
func New(deps Deps) http.Handler {
	if deps.Log == nil {
		deps.Log = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(deps.Log))
	r.Use(deps.Sessions.Refresh)
	r.Use(tenant.Middleware(
		tenant.NewCompositeResolver(
			tenant.NewHostResolver(deps.RootDomain),
			tenant.NewHeaderResolver(tenant.DefaultTenantHeader),
		),
		deps.Tenants,
		tenant.WithCache(deps.Cache),
		tenant.WithSkipPaths(tenantSkipPaths...),
		tenant.WithLogger(deps.Log),
	))

	h := &handlers{deps: deps}

	r.Get("/", h.home)
	r.Get("/healthz", h.health)
	r.Get("/admin/login", h.login)
	r.Get("/auth/callback", h.callback)
	r.Post("/logout", h.logout)

	staff, settings := routeGroups(deps.Policy)

	r.Group(func(r chi.Router) {
		r.Use(deps.Guard.Protect(staff))
		r.Get("/admin", h.dashboard)
		r.Get("/admin/calendar", h.calendar)
		r.Get("/admin/clients", h.clients)
		r.Get("/admin/qr", h.bookingQR)
	})

	r.Group(func(r chi.Router) {
		r.Use(deps.Guard.Protect(settings))
		r.Get("/admin/settings", h.settings)
		r.Get("/admin/settings/*", h.settings)
	})

	r.Group(func(r chi.Router) {
		r.Use(deps.Guard.ProtectPlatform())
		r.Get("/superadmin", h.platformHome)
		r.Get("/superadmin/tenants", h.platformTenants)
	})

	if deps.PaddleWebhook != nil {
		r.Post("/api/webhooks/paddle", deps.PaddleWebhook.ServeHTTP)
	}

	return r
}

// routeGroups pulls the two admin groups out of the policy, falling back to
// the defaults for anything the document does not cover.
func routeGroups(p guard.Policy) (staff, settings guard.Group) {
	def := guard.DefaultPolicy()
	staff, ok := p.Match("/admin")
	if !ok {
		staff, _ = def.Match("/admin")
	}
	settings, ok = p.Match("/admin/settings")
	if !ok {
		settings, _ = def.Match("/admin/settings")
	}
	return staff, settings
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			log.InfoContext(r.Context(), "request",
				slog.String("method", r.Method),
				slog.String("host", r.Host),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
			)
		})
	}
}
