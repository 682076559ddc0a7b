package guard

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/glowdesk/glowdesk/pkg/logger"
	"github.com/glowdesk/glowdesk/pkg/tenant"
)

const defaultLookupTimeout = 5 * time.Second

// Grant is a successful authorization: the tenant served, the identity, and
// the role the decision was made with.
type Grant struct {
	Tenant *tenant.Tenant
	UserID uuid.UUID
	Role   Role
}

// Guard evaluates requests against route groups. It returns structured
// results and leaves the HTTP consequences to the caller.
type Guard struct {
	memberships MembershipSource
	profiles    ProfileSource

	lookupTimeout time.Duration
	log           *slog.Logger
	denialHook    DenialHook
}

// Option customizes a Guard.
type Option func(*Guard)

// WithLookupTimeout bounds membership and profile lookups. A lookup that
// exceeds the bound is treated as a missing record, so a stalled store denies
// access instead of holding the request open.
func WithLookupTimeout(d time.Duration) Option {
	return func(g *Guard) {
		if d > 0 {
			g.lookupTimeout = d
		}
	}
}

// WithLogger sets the logger for lookup failures.
func WithLogger(log *slog.Logger) Option {
	return func(g *Guard) {
		if log != nil {
			g.log = log
		}
	}
}

// New creates a Guard over the given sources.
func New(memberships MembershipSource, profiles ProfileSource, opts ...Option) *Guard {
	g := &Guard{
		memberships:   memberships,
		profiles:      profiles,
		lookupTimeout: defaultLookupTimeout,
		log:           slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Authorize runs the tenant-scoped decision chain for one request. Exactly
// one of the results is non-nil. Checks run in a fixed order so the denial
// reason always names the first failing condition:
//
//	tenant serving -> session present -> membership exists -> role allowed
//
// Lookup errors deny access rather than failing open.
func (g *Guard) Authorize(ctx context.Context, t *tenant.Tenant, userID *uuid.UUID, group Group) (*Grant, *Denial) {
	if t == nil || !t.IsServing() {
		return nil, &Denial{Reason: DenyNoTenant}
	}
	if userID == nil {
		return nil, &Denial{Reason: DenyNoSession}
	}

	lctx, cancel := context.WithTimeout(ctx, g.lookupTimeout)
	defer cancel()

	m, err := g.memberships.FindMembership(lctx, t.ID, *userID)
	if err != nil {
		if !errors.Is(err, ErrMembershipNotFound) {
			g.log.ErrorContext(ctx, "membership lookup failed",
				logger.TenantSlug(t.Slug),
				logger.UserID(userID.String()),
				logger.Error(err))
		}
		return nil, &Denial{Reason: DenyNoMembership}
	}

	role, err := ParseRole(string(m.Role))
	if err != nil {
		g.log.ErrorContext(ctx, "membership carries unknown role",
			logger.TenantSlug(t.Slug),
			slog.String("role", string(m.Role)))
		return nil, &Denial{Reason: DenyNoMembership}
	}

	if !role.In(group.Roles) {
		return nil, &Denial{Reason: DenyInsufficientRole, Role: role}
	}

	return &Grant{Tenant: t, UserID: *userID, Role: role}, nil
}

// AuthorizePlatform runs the flat platform check: the user must hold a
// profile whose role is super_admin. Tenant context is deliberately ignored.
func (g *Guard) AuthorizePlatform(ctx context.Context, userID *uuid.UUID) (*Grant, *Denial) {
	if userID == nil {
		return nil, &Denial{Reason: DenyNoSession}
	}

	lctx, cancel := context.WithTimeout(ctx, g.lookupTimeout)
	defer cancel()

	p, err := g.profiles.FindProfile(lctx, *userID)
	if err != nil {
		if !errors.Is(err, ErrProfileNotFound) {
			g.log.ErrorContext(ctx, "profile lookup failed",
				logger.UserID(userID.String()),
				logger.Error(err))
		}
		return nil, &Denial{Reason: DenyInsufficientRole}
	}

	if p.Role != RoleSuperAdmin {
		return nil, &Denial{Reason: DenyInsufficientRole, Role: p.Role}
	}

	return &Grant{UserID: *userID, Role: RoleSuperAdmin}, nil
}
