package session

import "net/http"

// Refresh runs on every request: it ensures a session exists, slides its
// expiry, re-issues the cookie when needed, and attaches the session to the
// request context. A store failure degrades to an anonymous request rather
// than failing the page.
func (m *Manager) Refresh(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := m.Ensure(r.Context(), w, r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}
