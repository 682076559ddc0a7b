package router

import (
	"fmt"
	"net/http"

	"github.com/glowdesk/glowdesk/pkg/guard"
	"github.com/glowdesk/glowdesk/pkg/qrcode"
	"github.com/glowdesk/glowdesk/pkg/tenant"
)

type handlers struct {
	deps Deps
}

// home serves either the salon's public booking page or the marketing site,
// depending on what the host resolved to.
func (h *handlers) home(w http.ResponseWriter, r *http.Request) {
	if t, ok := tenant.FromContext(r.Context()); ok {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, "<h1>%s</h1><p>Book your next appointment online.</p>", t.Name)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "<h1>GlowDesk</h1><p>Booking software for beauty salons.</p>")
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	if h.deps.Health != nil {
		h.deps.Health.ServeHTTP(w, r)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}

func (h *handlers) dashboard(w http.ResponseWriter, r *http.Request) {
	t := tenant.MustFromContext(r.Context())
	role, _ := guard.RoleFromContext(r.Context())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<h1>%s dashboard</h1><p>Signed in as %s.</p>", t.Name, role)
}

func (h *handlers) calendar(w http.ResponseWriter, r *http.Request) {
	t := tenant.MustFromContext(r.Context())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<h1>%s calendar</h1>", t.Name)
}

func (h *handlers) clients(w http.ResponseWriter, r *http.Request) {
	t := tenant.MustFromContext(r.Context())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<h1>%s clients</h1>", t.Name)
}

func (h *handlers) settings(w http.ResponseWriter, r *http.Request) {
	t := tenant.MustFromContext(r.Context())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<h1>%s settings</h1>", t.Name)
}

// bookingQR returns a printable QR code pointing at the salon's public site.
func (h *handlers) bookingQR(w http.ResponseWriter, r *http.Request) {
	t := tenant.MustFromContext(r.Context())
	url := fmt.Sprintf("https://%s.%s/", t.Slug, h.deps.RootDomain)

	png, err := qrcode.Generate(url, 0)
	if err != nil {
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", t.Slug+"-booking.png"))
	_, _ = w.Write(png)
}

func (h *handlers) platformHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "<h1>Platform operations</h1>")
}

func (h *handlers) platformTenants(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "<h1>Salons</h1>")
}
