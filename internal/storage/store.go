package storage

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store bundles the Postgres-backed stores over one connection pool.
type Store struct {
	pool *pgxpool.Pool

	Tenants     *TenantStore
	Memberships *MembershipStore
	Profiles    *ProfileStore
}

// New creates the store set over an established pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{
		pool:        pool,
		Tenants:     &TenantStore{pool: pool},
		Memberships: &MembershipStore{pool: pool},
		Profiles:    &ProfileStore{pool: pool},
	}
}
