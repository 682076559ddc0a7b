package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowdesk/glowdesk/pkg/cookie"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newManager(t *testing.T, opts ...cookie.Option) *cookie.Manager {
	t.Helper()
	m, err := cookie.New([]string{testSecret}, opts...)
	require.NoError(t, err)
	return m
}

func requestWithCookies(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty secrets", func(t *testing.T) {
		t.Parallel()
		_, err := cookie.New(nil)
		assert.ErrorIs(t, err, cookie.ErrNoSecret)

		_, err = cookie.New([]string{"", ""})
		assert.ErrorIs(t, err, cookie.ErrNoSecret)
	})

	t.Run("rejects short secret", func(t *testing.T) {
		t.Parallel()
		_, err := cookie.New([]string{"too-short"})
		assert.ErrorIs(t, err, cookie.ErrSecretTooShort)
	})
}

func TestSignedRoundTrip(t *testing.T) {
	t.Parallel()

	m := newManager(t)
	rec := httptest.NewRecorder()
	m.SetSigned(rec, "slug", "royal")

	got, err := m.GetSigned(requestWithCookies(rec), "slug")
	require.NoError(t, err)
	assert.Equal(t, "royal", got)
}

func TestSignedTamperDetection(t *testing.T) {
	t.Parallel()

	m := newManager(t)
	rec := httptest.NewRecorder()
	m.SetSigned(rec, "slug", "royal")

	tampered := rec.Result().Cookies()[0]
	payload, sig, _ := strings.Cut(tampered.Value, "|")
	_ = payload

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "slug", Value: "ZXZpbA==" + "|" + sig})

	_, err := m.GetSigned(req, "slug")
	assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
}

func TestEncryptedRoundTrip(t *testing.T) {
	t.Parallel()

	m := newManager(t)
	rec := httptest.NewRecorder()
	require.NoError(t, m.SetEncrypted(rec, "token", "session-token-value"))

	// Ciphertext must not leak the plaintext.
	assert.NotContains(t, rec.Result().Cookies()[0].Value, "session-token-value")

	got, err := m.GetEncrypted(requestWithCookies(rec), "token")
	require.NoError(t, err)
	assert.Equal(t, "session-token-value", got)
}

func TestKeyRotation(t *testing.T) {
	t.Parallel()

	oldSecret := "fedcba9876543210fedcba9876543210"
	oldMgr, err := cookie.New([]string{oldSecret})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, oldMgr.SetEncrypted(rec, "token", "survives-rotation"))

	// New manager signs with the new secret but still reads the old cookie.
	newMgr, err := cookie.New([]string{testSecret, oldSecret})
	require.NoError(t, err)

	got, err := newMgr.GetEncrypted(requestWithCookies(rec), "token")
	require.NoError(t, err)
	assert.Equal(t, "survives-rotation", got)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	m := newManager(t)
	rec := httptest.NewRecorder()
	m.Delete(rec, "token")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Empty(t, cookies[0].Value)
}

func TestMissingCookie(t *testing.T) {
	t.Parallel()

	m := newManager(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := m.Get(req, "absent")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
}

func TestSecureDefaults(t *testing.T) {
	t.Parallel()

	m := newManager(t)
	rec := httptest.NewRecorder()
	m.Set(rec, "any", "value")

	c := rec.Result().Cookies()[0]
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, "/", c.Path)
}
