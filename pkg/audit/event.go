package audit

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind classifies what the trail records.
type Kind string

const (
	// KindAccessDenied records a guard denial at the HTTP boundary.
	KindAccessDenied Kind = "access_denied"
	// KindAccessGranted records entry into a protected area.
	KindAccessGranted Kind = "access_granted"
	// KindTenantStatusChanged records a billing-driven tenant transition.
	KindTenantStatusChanged Kind = "tenant_status_changed"
	// KindLogin records a completed provider login.
	KindLogin Kind = "login"
)

// Event is one audit trail entry.
type Event struct {
	ID         uuid.UUID      `json:"id"`
	Kind       Kind           `json:"kind"`
	TenantSlug string         `json:"tenant_slug,omitempty"`
	UserID     string         `json:"user_id,omitempty"`
	Path       string         `json:"path,omitempty"`
	Reason     string         `json:"reason,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Validate checks that the event names what happened.
func (e *Event) Validate() error {
	if e.Kind == "" {
		return fmt.Errorf("%w: kind is required", ErrEventValidation)
	}
	return nil
}
