package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Manager creates, refreshes, and destroys sessions, keeping the browser
// cookie and the backing store in sync.
type Manager struct {
	store     Store
	transport Transport
	cfg       Config
}

// Option configures the Manager.
type Option func(*Manager)

// WithStore sets the session store.
func WithStore(store Store) Option {
	return func(m *Manager) { m.store = store }
}

// WithTransport sets the token transport.
func WithTransport(t Transport) Option {
	return func(m *Manager) { m.transport = t }
}

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return func(m *Manager) { m.cfg = cfg }
}

// NewManager builds a Manager. A transport is required; without a store an
// in-memory one is created.
func NewManager(opts ...Option) *Manager {
	m := &Manager{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(m)
	}
	if m.store == nil {
		m.store = NewMemoryStore(m.cfg.CleanupInterval)
	}
	if m.transport == nil {
		panic("session: transport is required")
	}
	return m
}

// Get retrieves the request's session from the store, if present and valid.
func (m *Manager) Get(ctx context.Context, r *http.Request) (*Session, error) {
	token, err := m.transport.GetToken(r)
	if err != nil {
		return nil, err
	}
	return m.store.Get(ctx, token)
}

// Ensure returns the current session, refreshing the cookie so the client
// TTL tracks the server-side expiry. If no valid session exists a fresh
// anonymous one is created. This is the per-request refresh path: it runs on
// every request regardless of route.
func (m *Manager) Ensure(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Session, error) {
	s, err := m.Get(ctx, r)
	if err == nil {
		if m.slideExpiry(ctx, s) {
			idle, _ := m.cfg.Timeouts(s.IsAuthenticated())
			if err := m.transport.SetToken(w, s.Token, idle); err != nil {
				return nil, err
			}
		}
		return s, nil
	}

	// Stale or undecryptable cookie gets cleared before issuing a new one.
	m.transport.ClearToken(w)

	s, err = m.create(ctx, nil)
	if err != nil {
		return nil, err
	}
	idle, _ := m.cfg.Timeouts(false)
	if err := m.transport.SetToken(w, s.Token, idle); err != nil {
		_ = m.store.Delete(ctx, s.Token)
		return nil, err
	}
	return s, nil
}

// Authenticate binds the session to a user identity. The token is rotated on
// the privilege change to prevent session fixation.
func (m *Manager) Authenticate(ctx context.Context, w http.ResponseWriter, r *http.Request, userID uuid.UUID) (*Session, error) {
	s, err := m.Get(ctx, r)
	if err != nil {
		s, err = m.create(ctx, &userID)
		if err != nil {
			return nil, err
		}
	} else {
		token, err := generateToken()
		if err != nil {
			return nil, err
		}
		_ = m.store.Delete(ctx, s.Token)

		s.Token = token
		s.UserID = &userID
		idle, max := m.cfg.Timeouts(true)
		s.ExpiresAt = boundedExpiry(s.CreatedAt, idle, max)
		s.Touch()

		if err := m.store.Create(ctx, s); err != nil {
			return nil, err
		}
	}

	idle, _ := m.cfg.Timeouts(true)
	if err := m.transport.SetToken(w, s.Token, idle); err != nil {
		return nil, err
	}
	return s, nil
}

// Destroy deletes the session and clears the client cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if token, err := m.transport.GetToken(r); err == nil && token != "" {
		_ = m.store.Delete(ctx, token)
	}
	m.transport.ClearToken(w)
	return nil
}

func (m *Manager) create(ctx context.Context, userID *uuid.UUID) (*Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	idle, max := m.cfg.Timeouts(userID != nil)
	s := New(token, userID, idle)
	if exp := boundedExpiry(s.CreatedAt, idle, max); exp.Before(s.ExpiresAt) {
		s.ExpiresAt = exp
	}

	if err := m.store.Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// slideExpiry extends the session's idle window, persisting at most once per
// TouchThreshold. Reports whether the cookie should be re-issued.
func (m *Manager) slideExpiry(ctx context.Context, s *Session) bool {
	if time.Since(s.LastActivityAt) < m.cfg.TouchThreshold {
		return false
	}

	idle, max := m.cfg.Timeouts(s.IsAuthenticated())
	s.Touch()
	next := time.Now().Add(idle)
	if bound := boundedExpiry(s.CreatedAt, idle, max); next.After(bound) {
		next = bound
	}
	s.ExpiresAt = next

	// Best effort: a failed touch leaves the previous expiry in place.
	if err := m.store.Update(ctx, s); err != nil {
		return false
	}
	return true
}

// boundedExpiry caps the sliding idle expiry at the absolute lifetime from
// session creation.
func boundedExpiry(createdAt time.Time, idle, max time.Duration) time.Time {
	next := time.Now().Add(idle)
	if bound := createdAt.Add(max); next.After(bound) {
		return bound
	}
	return next
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", ErrTokenGeneration
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
