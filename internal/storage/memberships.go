package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/glowdesk/glowdesk/pkg/guard"
	"github.com/glowdesk/glowdesk/pkg/pg"
)

// MembershipStore reads the (user, tenant, role) bindings.
type MembershipStore struct {
	pool *pgxpool.Pool
}

// FindMembership satisfies guard.MembershipSource. The unique constraint on
// (tenant_id, user_id) guarantees at most one row.
func (s *MembershipStore) FindMembership(ctx context.Context, tenantID, userID uuid.UUID) (*guard.Membership, error) {
	var m guard.Membership
	var role string
	err := s.pool.QueryRow(ctx,
		`SELECT tenant_id, user_id, role
		 FROM memberships WHERE tenant_id = $1 AND user_id = $2`,
		tenantID, userID,
	).Scan(&m.TenantID, &m.UserID, &role)
	if err != nil {
		if pg.IsNotFound(err) {
			return nil, guard.ErrMembershipNotFound
		}
		return nil, fmt.Errorf("find membership: %w", err)
	}

	parsed, err := guard.ParseRole(role)
	if err != nil {
		return nil, err
	}
	m.Role = parsed
	return &m, nil
}

// Create adds a membership. Duplicate (tenant, user) pairs are rejected by
// the unique constraint.
func (s *MembershipStore) Create(ctx context.Context, m guard.Membership) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO memberships (tenant_id, user_id, role) VALUES ($1, $2, $3)`,
		m.TenantID, m.UserID, m.Role.String())
	if err != nil {
		if pg.IsUniqueViolation(err) {
			return ErrMembershipExists
		}
		return fmt.Errorf("create membership: %w", err)
	}
	return nil
}

var _ guard.MembershipSource = (*MembershipStore)(nil)
