package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/glowdesk/glowdesk/pkg/pg"
	"github.com/glowdesk/glowdesk/pkg/tenant"
)

// TenantStore reads and updates salon records.
type TenantStore struct {
	pool *pgxpool.Pool
}

// GetBySlug loads a tenant by its subdomain slug. It satisfies
// tenant.Provider; not-found maps to tenant.ErrTenantNotFound so the
// middleware treats unknown slugs uniformly.
func (s *TenantStore) GetBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	var t tenant.Tenant
	err := s.pool.QueryRow(ctx,
		`SELECT id, slug, name, status, active, plan_id, locale, created_at
		 FROM tenants WHERE slug = $1`, slug,
	).Scan(&t.ID, &t.Slug, &t.Name, &t.Status, &t.Active, &t.PlanID, &t.Locale, &t.CreatedAt)
	if err != nil {
		if pg.IsNotFound(err) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, fmt.Errorf("get tenant %q: %w", slug, err)
	}
	return &t, nil
}

// GetByBillingCustomerID loads the tenant a billing provider customer maps
// to. Webhook events carry the provider's customer id, not our slug.
func (s *TenantStore) GetByBillingCustomerID(ctx context.Context, customerID string) (*tenant.Tenant, error) {
	var t tenant.Tenant
	err := s.pool.QueryRow(ctx,
		`SELECT id, slug, name, status, active, plan_id, locale, created_at
		 FROM tenants WHERE billing_customer_id = $1`, customerID,
	).Scan(&t.ID, &t.Slug, &t.Name, &t.Status, &t.Active, &t.PlanID, &t.Locale, &t.CreatedAt)
	if err != nil {
		if pg.IsNotFound(err) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, fmt.Errorf("get tenant by billing customer %q: %w", customerID, err)
	}
	return &t, nil
}

// UpdateStatus transitions a tenant's lifecycle status.
func (s *TenantStore) UpdateStatus(ctx context.Context, tenantID uuid.UUID, status tenant.Status) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE tenants SET status = $2, updated_at = now() WHERE id = $1`,
		tenantID, status)
	if err != nil {
		return fmt.Errorf("update tenant %s status: %w", tenantID, err)
	}
	if tag.RowsAffected() == 0 {
		return tenant.ErrTenantNotFound
	}
	return nil
}

// SetActive flips the operational kill switch independently of billing
// status.
func (s *TenantStore) SetActive(ctx context.Context, tenantID uuid.UUID, active bool) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE tenants SET active = $2, updated_at = now() WHERE id = $1`,
		tenantID, active)
	if err != nil {
		return fmt.Errorf("set tenant %s active: %w", tenantID, err)
	}
	if tag.RowsAffected() == 0 {
		return tenant.ErrTenantNotFound
	}
	return nil
}

// OwnerEmail returns the email of the salon's owner, for billing notices.
func (s *TenantStore) OwnerEmail(ctx context.Context, tenantID uuid.UUID) (string, error) {
	var email string
	err := s.pool.QueryRow(ctx,
		`SELECT p.email
		 FROM memberships m
		 JOIN profiles p ON p.user_id = m.user_id
		 WHERE m.tenant_id = $1 AND m.role = 'owner'
		 LIMIT 1`, tenantID,
	).Scan(&email)
	if err != nil {
		if pg.IsNotFound(err) {
			return "", tenant.ErrTenantNotFound
		}
		return "", fmt.Errorf("owner email for tenant %s: %w", tenantID, err)
	}
	return email, nil
}

var _ tenant.Provider = (*TenantStore)(nil)
