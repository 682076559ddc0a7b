package webhooks

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	paddle "github.com/PaddleHQ/paddle-go-sdk/v4"
	"github.com/google/uuid"

	"github.com/glowdesk/glowdesk/pkg/audit"
	"github.com/glowdesk/glowdesk/pkg/email"
	"github.com/glowdesk/glowdesk/pkg/logger"
	"github.com/glowdesk/glowdesk/pkg/tenant"
)

// PaddleConfig holds webhook verification configuration.
type PaddleConfig struct {
	WebhookSecret string `env:"PADDLE_WEBHOOK_SECRET,required"`
}

// Verifier checks a webhook request's signature. Satisfied by
// *paddle.WebhookVerifier.
type Verifier interface {
	Verify(req *http.Request) (bool, error)
}

// TenantDirectory is the slice of tenant storage the webhook needs.
type TenantDirectory interface {
	GetByBillingCustomerID(ctx context.Context, customerID string) (*tenant.Tenant, error)
	UpdateStatus(ctx context.Context, tenantID uuid.UUID, status tenant.Status) error
	OwnerEmail(ctx context.Context, tenantID uuid.UUID) (string, error)
}

// PaddleHandler receives Paddle subscription events and drives tenant
// lifecycle transitions. The route it mounts on bypasses tenant resolution;
// billing talks about customers, not subdomains.
type PaddleHandler struct {
	verifier Verifier
	tenants  TenantDirectory
	cache    tenant.Cache
	mailer   email.EmailSender
	recorder *audit.Recorder
	log      *slog.Logger
}

// PaddleOption customizes the handler.
type PaddleOption func(*PaddleHandler)

// WithMailer enables billing notices to salon owners.
func WithMailer(m email.EmailSender) PaddleOption {
	return func(h *PaddleHandler) { h.mailer = m }
}

// WithRecorder enables audit events for status transitions.
func WithRecorder(r *audit.Recorder) PaddleOption {
	return func(h *PaddleHandler) { h.recorder = r }
}

// WithCache lets the handler invalidate cached tenant rows, so a suspension
// takes effect before the cache TTL would expire it.
func WithCache(c tenant.Cache) PaddleOption {
	return func(h *PaddleHandler) { h.cache = c }
}

// WithLogger sets the handler's logger.
func WithLogger(log *slog.Logger) PaddleOption {
	return func(h *PaddleHandler) {
		if log != nil {
			h.log = log
		}
	}
}

// NewPaddleHandler creates the webhook handler with the given verifier.
func NewPaddleHandler(verifier Verifier, tenants TenantDirectory, opts ...PaddleOption) *PaddleHandler {
	if verifier == nil || tenants == nil {
		panic("webhooks: verifier and tenant directory are required")
	}
	h := &PaddleHandler{
		verifier: verifier,
		tenants:  tenants,
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// NewPaddleVerifier builds the SDK verifier from config.
func NewPaddleVerifier(cfg PaddleConfig) *paddle.WebhookVerifier {
	return paddle.NewWebhookVerifier(cfg.WebhookSecret)
}

// paddleEvent is the envelope shape Paddle posts. Only the fields the
// lifecycle mapping reads are declared.
type paddleEvent struct {
	EventID   string `json:"event_id"`
	EventType string `json:"event_type"`
	Data      struct {
		ID         string         `json:"id"`
		Status     string         `json:"status"`
		CustomerID string         `json:"customer_id"`
		CustomData map[string]any `json:"custom_data"`
	} `json:"data"`
}

// ServeHTTP verifies the signature, maps the event to a tenant transition,
// and acknowledges. Unknown event types are acknowledged without action so
// Paddle does not retry them forever.
func (h *PaddleHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ok, err := h.verifier.Verify(r)
	if err != nil || !ok {
		h.log.WarnContext(ctx, "webhook signature rejected", logger.Error(err))
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	var ev paddleEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		http.Error(w, "malformed payload", http.StatusBadRequest)
		return
	}

	status, relevant := mapEventToStatus(ev.EventType, ev.Data.Status)
	if !relevant {
		w.WriteHeader(http.StatusOK)
		return
	}

	if err := h.applyTransition(ctx, ev, status); err != nil {
		if errors.Is(err, tenant.ErrTenantNotFound) {
			// Not our customer; acknowledge so Paddle stops retrying.
			h.log.WarnContext(ctx, "webhook for unknown billing customer",
				slog.String("customer_id", ev.Data.CustomerID),
				slog.String("event_type", ev.EventType))
			w.WriteHeader(http.StatusOK)
			return
		}
		h.log.ErrorContext(ctx, "webhook transition failed",
			slog.String("event_id", ev.EventID),
			logger.Error(err))
		// 5xx so Paddle retries once storage recovers.
		http.Error(w, "transition failed", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// mapEventToStatus translates Paddle subscription events into tenant
// lifecycle statuses.
func mapEventToStatus(eventType, subscriptionStatus string) (tenant.Status, bool) {
	switch eventType {
	case "subscription.canceled", "subscription.paused", "subscription.past_due":
		return tenant.StatusSuspended, true
	case "subscription.activated", "subscription.resumed":
		return tenant.StatusActive, true
	case "subscription.updated":
		switch subscriptionStatus {
		case "active", "trialing":
			return tenant.StatusActive, true
		case "past_due", "paused", "canceled":
			return tenant.StatusSuspended, true
		}
	}
	return "", false
}

func (h *PaddleHandler) applyTransition(ctx context.Context, ev paddleEvent, status tenant.Status) error {
	t, err := h.tenants.GetByBillingCustomerID(ctx, ev.Data.CustomerID)
	if err != nil {
		return err
	}

	if t.Status == status {
		return nil
	}

	if err := h.tenants.UpdateStatus(ctx, t.ID, status); err != nil {
		return err
	}

	if h.cache != nil {
		h.cache.Delete(ctx, t.Slug)
	}

	if h.recorder != nil {
		_ = h.recorder.Record(ctx, audit.Event{
			Kind:       audit.KindTenantStatusChanged,
			TenantSlug: t.Slug,
			Reason:     ev.EventType,
			Metadata:   map[string]any{"from": string(t.Status), "to": string(status)},
		})
	}

	h.notifyOwner(ctx, t, status)

	h.log.InfoContext(ctx, "tenant status changed",
		logger.TenantSlug(t.Slug),
		slog.String("from", string(t.Status)),
		slog.String("to", string(status)),
		slog.String("event_type", ev.EventType))
	return nil
}

func (h *PaddleHandler) notifyOwner(ctx context.Context, t *tenant.Tenant, status tenant.Status) {
	if h.mailer == nil {
		return
	}

	ownerEmail, err := h.tenants.OwnerEmail(ctx, t.ID)
	if err != nil {
		h.log.WarnContext(ctx, "owner email lookup failed",
			logger.TenantSlug(t.Slug), logger.Error(err))
		return
	}

	var params email.SendEmailParams
	switch status {
	case tenant.StatusSuspended:
		params = email.SuspensionNotice(ownerEmail, t.Name)
	case tenant.StatusActive:
		params = email.ReactivationNotice(ownerEmail, t.Name)
	default:
		return
	}

	if err := h.mailer.SendEmail(ctx, params); err != nil {
		h.log.WarnContext(ctx, "billing notice delivery failed",
			logger.TenantSlug(t.Slug), logger.Error(err))
	}
}
