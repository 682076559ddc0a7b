package router

import (
	"net/http"
	"strings"

	"github.com/glowdesk/glowdesk/pkg/audit"
	"github.com/glowdesk/glowdesk/pkg/auth"
	"github.com/glowdesk/glowdesk/pkg/cookie"
	"github.com/glowdesk/glowdesk/pkg/logger"
	"github.com/glowdesk/glowdesk/pkg/tenant"
)

const (
	stateCookieName = "gd_oauth_state"
	stateCookieTTL  = 600
	defaultNextPath = "/admin"
)

// login starts the provider flow. The state token and the post-login
// destination travel in one signed cookie; the destination is validated here
// so the callback cannot be steered to another origin.
func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	next := sanitizeNext(r.URL.Query().Get("next"))

	state, err := auth.GenerateState()
	if err != nil {
		http.Error(w, "login unavailable", http.StatusInternalServerError)
		return
	}

	h.deps.Cookies.SetSigned(w, stateCookieName, state+"|"+next,
		cookie.WithMaxAge(stateCookieTTL), cookie.WithPath("/"))

	authURL, err := h.deps.Provider.AuthURL(state)
	if err != nil {
		http.Error(w, "login unavailable", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, authURL, http.StatusFound)
}

// callback finishes the provider flow: state check, code exchange, profile
// upsert, session authentication, then the preserved destination.
func (h *handlers) callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stored, err := h.deps.Cookies.GetSigned(r, stateCookieName)
	if err != nil {
		http.Redirect(w, r, "/admin/login", http.StatusFound)
		return
	}
	h.deps.Cookies.Delete(w, stateCookieName)

	state, next, _ := strings.Cut(stored, "|")
	if state == "" || r.URL.Query().Get("state") != state {
		http.Redirect(w, r, "/admin/login", http.StatusFound)
		return
	}
	next = sanitizeNext(next)

	profile, err := h.deps.Provider.ResolveProfile(ctx, r.URL.Query().Get("code"))
	if err != nil {
		h.deps.Log.WarnContext(ctx, "provider profile resolution failed", logger.Error(err))
		http.Redirect(w, r, "/admin/login", http.StatusFound)
		return
	}

	lp, err := h.deps.Profiles.UpsertFromLogin(ctx, h.deps.Provider.ProviderID(), profile)
	if err != nil {
		h.deps.Log.ErrorContext(ctx, "profile upsert failed", logger.Error(err))
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	if _, err := h.deps.Sessions.Authenticate(ctx, w, r, lp.UserID); err != nil {
		h.deps.Log.ErrorContext(ctx, "session authentication failed", logger.Error(err))
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	if h.deps.Recorder != nil {
		slug, _ := tenant.SlugFromContext(ctx)
		_ = h.deps.Recorder.Record(ctx, audit.Event{
			Kind:       audit.KindLogin,
			TenantSlug: slug,
			UserID:     lp.UserID.String(),
		})
	}

	http.Redirect(w, r, next, http.StatusFound)
}

func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Sessions.Destroy(r.Context(), w, r); err != nil {
		h.deps.Log.WarnContext(r.Context(), "session destroy failed", logger.Error(err))
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// sanitizeNext keeps redirects on this origin: a single leading slash,
// nothing that a browser would treat as scheme-relative.
func sanitizeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return defaultNextPath
	}
	if strings.ContainsAny(next, "\r\n") {
		return defaultNextPath
	}
	return next
}
