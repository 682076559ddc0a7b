package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/glowdesk/glowdesk/pkg/auth"
	"github.com/glowdesk/glowdesk/pkg/guard"
	"github.com/glowdesk/glowdesk/pkg/pg"
)

// Profile is a user's platform record. The identity provider owns the
// credentials; this row binds the provider identity to our user id and
// carries the platform-level role.
type Profile struct {
	UserID         uuid.UUID
	Email          string
	Name           string
	Role           guard.Role
	Provider       string
	ProviderUserID string
	CreatedAt      time.Time
}

// ProfileStore reads and upserts platform profiles.
type ProfileStore struct {
	pool *pgxpool.Pool
}

// FindProfile satisfies guard.ProfileSource with the minimal projection the
// guard needs.
func (s *ProfileStore) FindProfile(ctx context.Context, userID uuid.UUID) (*guard.Profile, error) {
	var role string
	err := s.pool.QueryRow(ctx,
		`SELECT role FROM profiles WHERE user_id = $1`, userID,
	).Scan(&role)
	if err != nil {
		if pg.IsNotFound(err) {
			return nil, guard.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}

	parsed, err := guard.ParseRole(role)
	if err != nil {
		return nil, err
	}
	return &guard.Profile{UserID: userID, Role: parsed}, nil
}

// Get loads the full profile row.
func (s *ProfileStore) Get(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	var p Profile
	var role string
	err := s.pool.QueryRow(ctx,
		`SELECT user_id, email, name, role, provider, provider_user_id, created_at
		 FROM profiles WHERE user_id = $1`, userID,
	).Scan(&p.UserID, &p.Email, &p.Name, &role, &p.Provider, &p.ProviderUserID, &p.CreatedAt)
	if err != nil {
		if pg.IsNotFound(err) {
			return nil, guard.ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	parsed, err := guard.ParseRole(role)
	if err != nil {
		return nil, err
	}
	p.Role = parsed
	return &p, nil
}

// UpsertFromLogin resolves a provider identity to a profile, creating one on
// first login. New profiles start as customers; roles are only ever raised
// through memberships or operator action, never by logging in.
func (s *ProfileStore) UpsertFromLogin(ctx context.Context, provider string, pp auth.ProviderProfile) (*Profile, error) {
	var p Profile
	var role string
	err := s.pool.QueryRow(ctx,
		`INSERT INTO profiles (user_id, email, name, role, provider, provider_user_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (provider, provider_user_id)
		 DO UPDATE SET email = EXCLUDED.email, name = EXCLUDED.name
		 RETURNING user_id, email, name, role, provider, provider_user_id, created_at`,
		uuid.New(), pp.Email, pp.Name, guard.RoleCustomer.String(), provider, pp.ProviderUserID,
	).Scan(&p.UserID, &p.Email, &p.Name, &role, &p.Provider, &p.ProviderUserID, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert profile from login: %w", err)
	}

	parsed, err := guard.ParseRole(role)
	if err != nil {
		return nil, err
	}
	p.Role = parsed
	return &p, nil
}

var _ guard.ProfileSource = (*ProfileStore)(nil)
