package guard_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowdesk/glowdesk/pkg/guard"
	"github.com/glowdesk/glowdesk/pkg/session"
	"github.com/glowdesk/glowdesk/pkg/tenant"
)

func authedRequest(target string, tn *tenant.Tenant, userID *uuid.UUID) *http.Request {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	ctx := r.Context()
	if tn != nil {
		ctx = tenant.WithTenant(ctx, tn)
	}
	if userID != nil {
		ctx = session.WithSession(ctx, session.New("tok", userID, time.Hour))
	}
	return r.WithContext(ctx)
}

func okHandler(t *testing.T, served *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*served = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestProtect(t *testing.T) {
	t.Parallel()

	t.Run("granted request reaches the handler with the grant in context", func(t *testing.T) {
		t.Parallel()

		tn := servingTenant()
		userID := uuid.New()
		g := guard.New(&stubMemberships{byUser: map[uuid.UUID]guard.Membership{
			userID: {TenantID: tn.ID, UserID: userID, Role: guard.RoleOwner},
		}}, &stubProfiles{})

		var role guard.Role
		h := g.Protect(staffGroup())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, _ = guard.RoleFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, authedRequest("/admin", tn, &userID))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, guard.RoleOwner, role)
	})

	t.Run("no tenant redirects to marketing root", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		g := guard.New(&stubMemberships{}, &stubProfiles{})

		var served bool
		h := g.Protect(staffGroup())(okHandler(t, &served))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, authedRequest("/admin", nil, &userID))

		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
		assert.False(t, served)
	})

	t.Run("no session redirects to login with destination preserved", func(t *testing.T) {
		t.Parallel()

		g := guard.New(&stubMemberships{}, &stubProfiles{})

		var served bool
		h := g.Protect(staffGroup())(okHandler(t, &served))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, authedRequest("/admin", servingTenant(), nil))

		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/admin/login?next=%2Fadmin", rec.Header().Get("Location"))
		assert.False(t, served)
	})

	t.Run("query string survives the next parameter", func(t *testing.T) {
		t.Parallel()

		g := guard.New(&stubMemberships{}, &stubProfiles{})
		h := g.Protect(staffGroup())(http.NotFoundHandler())

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, authedRequest("/admin/calendar?week=35", servingTenant(), nil))

		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/admin/login?next=%2Fadmin%2Fcalendar%3Fweek%3D35", rec.Header().Get("Location"))
	})

	t.Run("no membership is indistinguishable from no session", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		g := guard.New(&stubMemberships{byUser: map[uuid.UUID]guard.Membership{}}, &stubProfiles{})

		var served bool
		h := g.Protect(staffGroup())(okHandler(t, &served))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, authedRequest("/admin", servingTenant(), &userID))

		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/admin/login?next=%2Fadmin", rec.Header().Get("Location"))
		assert.False(t, served)
	})

	t.Run("insufficient role lands on the permitted area", func(t *testing.T) {
		t.Parallel()

		tn := servingTenant()
		userID := uuid.New()
		g := guard.New(&stubMemberships{byUser: map[uuid.UUID]guard.Membership{
			userID: {TenantID: tn.ID, UserID: userID, Role: guard.RoleSecretary},
		}}, &stubProfiles{})

		settings := guard.Group{
			Name:        "admin-settings",
			PathPrefix:  "/admin/settings",
			Roles:       []guard.Role{guard.RoleOwner, guard.RoleAdmin},
			LoginPath:   "/admin/login",
			LandingPath: "/admin",
		}

		var served bool
		h := g.Protect(settings)(okHandler(t, &served))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, authedRequest("/admin/settings", tn, &userID))

		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/admin", rec.Header().Get("Location"))
		assert.False(t, served)
	})

	t.Run("denial hook observes the reason and path", func(t *testing.T) {
		t.Parallel()

		var gotReason guard.DenialReason
		var gotPath string
		g := guard.New(&stubMemberships{}, &stubProfiles{},
			guard.WithDenialHook(func(ctx context.Context, d guard.Denial, path string) {
				gotReason = d.Reason
				gotPath = path
			}))

		h := g.Protect(staffGroup())(http.NotFoundHandler())
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, authedRequest("/admin/clients", servingTenant(), nil))

		assert.Equal(t, guard.DenyNoSession, gotReason)
		assert.Equal(t, "/admin/clients", gotPath)
	})
}

func TestProtectPlatform(t *testing.T) {
	t.Parallel()

	t.Run("super admin passes", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		g := guard.New(&stubMemberships{}, &stubProfiles{byUser: map[uuid.UUID]guard.Profile{
			userID: {UserID: userID, Role: guard.RoleSuperAdmin},
		}})

		var served bool
		h := g.ProtectPlatform()(okHandler(t, &served))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, authedRequest("/superadmin", nil, &userID))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, served)
	})

	t.Run("salon owner is sent to the marketing root, not to a login page", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		g := guard.New(&stubMemberships{}, &stubProfiles{byUser: map[uuid.UUID]guard.Profile{
			userID: {UserID: userID, Role: guard.RoleOwner},
		}})

		var served bool
		h := g.ProtectPlatform()(okHandler(t, &served))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, authedRequest("/superadmin/tenants", nil, &userID))

		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
		assert.False(t, served)
	})

	t.Run("anonymous visitor is sent to the marketing root", func(t *testing.T) {
		t.Parallel()

		g := guard.New(&stubMemberships{}, &stubProfiles{})

		var served bool
		h := g.ProtectPlatform()(okHandler(t, &served))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, authedRequest("/superadmin", nil, nil))

		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
		assert.False(t, served)
	})
}
