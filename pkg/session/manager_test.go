package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowdesk/glowdesk/pkg/cookie"
	"github.com/glowdesk/glowdesk/pkg/session"
)

func newTestManager(t *testing.T, cfg session.Config) *session.Manager {
	t.Helper()
	cookies, err := cookie.New([]string{"0123456789abcdef0123456789abcdef"})
	require.NoError(t, err)
	return session.NewManager(
		session.WithConfig(cfg),
		session.WithTransport(session.NewCookieTransport(cookies, cfg.CookieName, false)),
	)
}

func carryCookies(rec *httptest.ResponseRecorder, target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge >= 0 {
			req.AddCookie(c)
		}
	}
	return req
}

func TestEnsure(t *testing.T) {
	t.Parallel()

	t.Run("creates anonymous session", func(t *testing.T) {
		t.Parallel()

		m := newTestManager(t, session.DefaultConfig())
		rec := httptest.NewRecorder()

		s, err := m.Ensure(context.Background(), rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.False(t, s.IsAuthenticated())
		assert.NotEmpty(t, s.Token)
		require.NotEmpty(t, rec.Result().Cookies())
	})

	t.Run("returns existing session on second request", func(t *testing.T) {
		t.Parallel()

		m := newTestManager(t, session.DefaultConfig())
		rec := httptest.NewRecorder()
		first, err := m.Ensure(context.Background(), rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)

		second, err := m.Ensure(context.Background(), httptest.NewRecorder(), carryCookies(rec, "/"))
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("replaces garbage cookie", func(t *testing.T) {
		t.Parallel()

		m := newTestManager(t, session.DefaultConfig())
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: session.DefaultConfig().CookieName, Value: "not-a-session"})

		rec := httptest.NewRecorder()
		s, err := m.Ensure(context.Background(), rec, req)
		require.NoError(t, err)
		assert.False(t, s.IsAuthenticated())
	})
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	t.Run("binds identity and rotates token", func(t *testing.T) {
		t.Parallel()

		m := newTestManager(t, session.DefaultConfig())
		rec := httptest.NewRecorder()
		anon, err := m.Ensure(context.Background(), rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)

		userID := uuid.New()
		rec2 := httptest.NewRecorder()
		authed, err := m.Authenticate(context.Background(), rec2, carryCookies(rec, "/"), userID)
		require.NoError(t, err)

		assert.True(t, authed.IsAuthenticated())
		assert.Equal(t, userID, *authed.UserID)
		assert.NotEqual(t, anon.Token, authed.Token, "token must rotate on login")

		// Old token no longer resolves.
		_, err = m.Get(context.Background(), carryCookies(rec, "/"))
		assert.Error(t, err)
	})
}

func TestDestroy(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, session.DefaultConfig())
	rec := httptest.NewRecorder()
	_, err := m.Ensure(context.Background(), rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	rec2 := httptest.NewRecorder()
	require.NoError(t, m.Destroy(context.Background(), rec2, carryCookies(rec, "/")))

	_, err = m.Get(context.Background(), carryCookies(rec, "/"))
	assert.Error(t, err)
}

func TestExpiry(t *testing.T) {
	t.Parallel()

	cfg := session.DefaultConfig()
	cfg.AnonIdleTimeout = 50 * time.Millisecond
	cfg.AnonMaxLifetime = 50 * time.Millisecond
	m := newTestManager(t, cfg)

	rec := httptest.NewRecorder()
	_, err := m.Ensure(context.Background(), rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	time.Sleep(80 * time.Millisecond)

	_, err = m.Get(context.Background(), carryCookies(rec, "/"))
	assert.ErrorIs(t, err, session.ErrSessionExpired)
}

func TestRefreshMiddleware(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, session.DefaultConfig())

	var seen *session.Session
	handler := m.Refresh(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = session.FromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotNil(t, seen)
	assert.False(t, seen.IsAuthenticated())
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore(0)
	t.Cleanup(func() { _ = store.Close() })

	s := session.New("tok", nil, time.Minute)
	require.NoError(t, store.Create(context.Background(), s))

	got, err := store.Get(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)

	// Returned session is a copy; mutating it must not affect the store.
	got.Token = "changed"
	again, err := store.Get(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "tok", again.Token)

	require.NoError(t, store.Delete(context.Background(), "tok"))
	_, err = store.Get(context.Background(), "tok")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestMemoryStoreClose(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore(time.Minute)
	var _ session.Store = store

	require.NoError(t, store.Close())
	// Idempotent: a second Close must not panic.
	require.NoError(t, store.Close())
}
