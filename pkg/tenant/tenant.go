package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
)

// Status is the subscription-driven lifecycle state of a salon. Billing
// events move tenants between active and suspended; pending covers salons
// approved but not yet provisioned.
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusPending   Status = "pending"
)

// Tenant is one salon business on the platform, addressed by its unique
// subdomain slug. The slug is immutable once assigned.
type Tenant struct {
	ID        uuid.UUID `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Status    Status    `json:"status"`
	Active    bool      `json:"active"`
	PlanID    string    `json:"plan_id"`
	Locale    string    `json:"locale"`
	CreatedAt time.Time `json:"created_at"`
}

// IsServing reports whether requests for this salon should be served.
// Status tracks billing state while Active is the manual kill switch; both
// must pass, either one can independently deny access.
func (t *Tenant) IsServing() bool {
	return t != nil && t.Status == StatusActive && t.Active
}

// LanguageTag parses the tenant locale. Unparseable locales degrade to the
// undetermined tag rather than failing the request.
func (t *Tenant) LanguageTag() language.Tag {
	if t == nil || t.Locale == "" {
		return language.Und
	}
	tag, err := language.Parse(t.Locale)
	if err != nil {
		return language.Und
	}
	return tag
}

// Provider loads tenants from the backing store.
type Provider interface {
	// GetBySlug retrieves a tenant by its unique slug.
	// Returns ErrTenantNotFound when no tenant matches.
	GetBySlug(ctx context.Context, slug string) (*Tenant, error)
}
