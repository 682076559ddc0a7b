package tenant

import (
	"log/slog"
	"time"
)

type config struct {
	cache         Cache
	cacheTTL      time.Duration
	lookupTimeout time.Duration
	skipPaths     []string
	headerName    string
	log           *slog.Logger
}

// Option configures the tenant middleware.
type Option func(*config)

// WithCache replaces the default in-memory cache.
func WithCache(cache Cache) Option {
	return func(c *config) {
		if cache != nil {
			c.cache = cache
		}
	}
}

// WithCacheTTL sets how long loaded tenants stay cached. Shorter TTLs make
// billing suspensions take effect faster at the cost of more lookups.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *config) {
		if ttl > 0 {
			c.cacheTTL = ttl
		}
	}
}

// WithLookupTimeout bounds a single store lookup.
func WithLookupTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.lookupTimeout = d
		}
	}
}

// WithSkipPaths excludes path prefixes from tenant resolution. First match
// wins.
func WithSkipPaths(prefixes ...string) Option {
	return func(c *config) {
		c.skipPaths = append(c.skipPaths, prefixes...)
	}
}

// WithHeaderName sets the tenant header stripped on excluded paths.
func WithHeaderName(name string) Option {
	return func(c *config) {
		if name != "" {
			c.headerName = name
		}
	}
}

// WithLogger routes middleware diagnostics to the given logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}
