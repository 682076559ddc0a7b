package session

import (
	"net/http"
	"time"

	"github.com/glowdesk/glowdesk/pkg/cookie"
)

// Transport moves session tokens between client and server.
type Transport interface {
	// GetToken extracts the session token from the request.
	GetToken(r *http.Request) (string, error)

	// SetToken queues the session token on the response.
	SetToken(w http.ResponseWriter, token string, ttl time.Duration) error

	// ClearToken removes the session token from the client.
	ClearToken(w http.ResponseWriter)
}

// CookieTransport carries the token in an encrypted cookie.
type CookieTransport struct {
	cookies    *cookie.Manager
	cookieName string
	secure     bool
}

// NewCookieTransport creates a cookie-based transport. The secure flag adds
// the Secure attribute for HTTPS deployments.
func NewCookieTransport(cookies *cookie.Manager, cookieName string, secure bool) *CookieTransport {
	return &CookieTransport{cookies: cookies, cookieName: cookieName, secure: secure}
}

func (t *CookieTransport) GetToken(r *http.Request) (string, error) {
	token, err := t.cookies.GetEncrypted(r, t.cookieName)
	if err != nil {
		return "", ErrSessionNotFound
	}
	return token, nil
}

func (t *CookieTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	opts := []cookie.Option{
		cookie.WithMaxAge(int(ttl.Seconds())),
		cookie.WithPath("/"),
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteLaxMode),
	}
	if t.secure {
		opts = append(opts, cookie.WithSecure(true))
	}
	return t.cookies.SetEncrypted(w, t.cookieName, token, opts...)
}

func (t *CookieTransport) ClearToken(w http.ResponseWriter) {
	t.cookies.Delete(w, t.cookieName)
}
