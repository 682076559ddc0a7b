package session

import "time"

// Config holds session lifetimes with environment variable mapping.
// Anonymous sessions are short-lived; authenticated sessions get longer
// idle and absolute limits.
type Config struct {
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"gd_session"`

	AnonIdleTimeout time.Duration `env:"SESSION_ANON_IDLE_TIMEOUT" envDefault:"30m"`
	AnonMaxLifetime time.Duration `env:"SESSION_ANON_MAX_LIFETIME" envDefault:"24h"`

	AuthIdleTimeout time.Duration `env:"SESSION_AUTH_IDLE_TIMEOUT" envDefault:"2h"`
	AuthMaxLifetime time.Duration `env:"SESSION_AUTH_MAX_LIFETIME" envDefault:"720h"`

	// TouchThreshold is the minimum interval between persisted activity
	// updates, bounding store writes on busy sessions.
	TouchThreshold time.Duration `env:"SESSION_TOUCH_THRESHOLD" envDefault:"5m"`

	// CleanupInterval for the in-memory store sweep (0 disables).
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`

	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`
}

// DefaultConfig returns the defaults used when no environment is loaded.
func DefaultConfig() Config {
	return Config{
		CookieName:      "gd_session",
		AnonIdleTimeout: 30 * time.Minute,
		AnonMaxLifetime: 24 * time.Hour,
		AuthIdleTimeout: 2 * time.Hour,
		AuthMaxLifetime: 30 * 24 * time.Hour,
		TouchThreshold:  5 * time.Minute,
		CleanupInterval: 5 * time.Minute,
	}
}

// Timeouts returns the idle and absolute lifetime for the session state.
func (c Config) Timeouts(authenticated bool) (idle, max time.Duration) {
	if authenticated {
		return c.AuthIdleTimeout, c.AuthMaxLifetime
	}
	return c.AnonIdleTimeout, c.AnonMaxLifetime
}
