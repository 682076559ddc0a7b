package tenant

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"regexp"
	"strings"
)

const (
	// maxSlugLength keeps slugs DNS-compatible and bounds lookup keys.
	maxSlugLength = 63

	// localSuffix is the development addressing scheme: royal.localhost
	// resolves the slug "royal" without DNS configuration.
	localSuffix = ".localhost"

	// DefaultTenantHeader carries an explicit tenant slug across internal
	// request boundaries.
	DefaultTenantHeader = "X-Tenant-Slug"
)

// slugPattern keeps slugs DNS-safe: alphanumeric start, hyphens allowed, no dots.
var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// Resolver extracts a tenant slug from an HTTP request. An empty slug with a
// nil error means the request carries no tenant context, which is a normal
// outcome for the marketing site.
type Resolver func(r *http.Request) (string, error)

// NewHostResolver resolves the tenant slug from the request host. Resolution
// is pure: it inspects only the host string and the configured root domain.
//
//	royal.localhost:3000      -> "royal"   (local development)
//	glowdesk.app              -> ""        (marketing site)
//	www.glowdesk.app          -> ""        (marketing site)
//	royal.glowdesk.app        -> "royal"
//	something-else.com        -> ""
//
// Host shapes that fit none of the rules yield no tenant rather than an
// error, so an unrecognized host falls through to the marketing site.
func NewHostResolver(rootDomain string) Resolver {
	root := strings.ToLower(strings.TrimSpace(rootDomain))

	return func(r *http.Request) (string, error) {
		return resolveHost(r.Host, root), nil
	}
}

func resolveHost(host, root string) string {
	if host == "" {
		return ""
	}

	// Strip the port before matching. SplitHostPort also unwraps IPv6
	// brackets; hosts without a port pass through unchanged.
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(strings.TrimSpace(host))

	// Local development: <slug>.localhost.
	if host == "localhost" {
		return ""
	}
	if label, ok := strings.CutSuffix(host, localSuffix); ok {
		return validSlugOrEmpty(label)
	}

	if root == "" {
		return ""
	}

	// Bare root domain and its www variant serve the marketing site.
	if host == root || host == "www."+root {
		return ""
	}

	// Subdomain of the root domain: exactly one label in front.
	if label, ok := strings.CutSuffix(host, "."+root); ok {
		return validSlugOrEmpty(label)
	}

	return ""
}

// validSlugOrEmpty filters labels that are empty, nested, oversized, or not
// DNS-safe. A malformed label is treated as "no tenant", never as a slug.
func validSlugOrEmpty(label string) string {
	if label == "" || len(label) > maxSlugLength {
		return ""
	}
	if !slugPattern.MatchString(label) {
		return ""
	}
	return label
}

// NewHeaderResolver extracts the slug from an explicit tenant header.
// Unlike host resolution, a malformed header value is an error: it only
// appears when a client is probing or an internal rewrite is broken.
func NewHeaderResolver(headerName string) Resolver {
	if headerName == "" {
		headerName = DefaultTenantHeader
	}

	return func(r *http.Request) (string, error) {
		value := strings.ToLower(strings.TrimSpace(r.Header.Get(headerName)))
		if value == "" {
			return "", nil
		}
		if validSlugOrEmpty(value) == "" {
			return "", fmt.Errorf("%w: header value %q", ErrInvalidSlug, value)
		}
		return value, nil
	}
}

// NewCompositeResolver tries resolvers in order and returns the first
// non-empty slug. Errors are collected and surfaced only when no resolver
// produced a slug.
func NewCompositeResolver(resolvers ...Resolver) Resolver {
	return func(r *http.Request) (string, error) {
		var errs []error
		for _, resolve := range resolvers {
			slug, err := resolve(r)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if slug != "" {
				return slug, nil
			}
		}
		if len(errs) > 0 {
			return "", errors.Join(errs...)
		}
		return "", nil
	}
}
