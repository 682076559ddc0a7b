package webhooks_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowdesk/glowdesk/internal/webhooks"
	"github.com/glowdesk/glowdesk/pkg/email"
	"github.com/glowdesk/glowdesk/pkg/tenant"
)

type stubVerifier struct {
	ok  bool
	err error
}

func (v stubVerifier) Verify(req *http.Request) (bool, error) { return v.ok, v.err }

type stubDirectory struct {
	mu       sync.Mutex
	tenants  map[string]*tenant.Tenant
	statuses map[uuid.UUID]tenant.Status
	owner    string
}

func (d *stubDirectory) GetByBillingCustomerID(ctx context.Context, customerID string) (*tenant.Tenant, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, ok := d.tenants[customerID]
	if !ok {
		return nil, tenant.ErrTenantNotFound
	}
	cp := *t
	return &cp, nil
}

func (d *stubDirectory) UpdateStatus(ctx context.Context, tenantID uuid.UUID, status tenant.Status) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.statuses[tenantID] = status
	return nil
}

func (d *stubDirectory) OwnerEmail(ctx context.Context, tenantID uuid.UUID) (string, error) {
	return d.owner, nil
}

type captureMailer struct {
	mu   sync.Mutex
	sent []email.SendEmailParams
}

func (m *captureMailer) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, params)
	return nil
}

func webhookRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/webhooks/paddle", strings.NewReader(body))
	r.Header.Set("Paddle-Signature", "ts=1;h1=sig")
	return r
}

func newDirectory(t *tenant.Tenant, customerID string) *stubDirectory {
	return &stubDirectory{
		tenants:  map[string]*tenant.Tenant{customerID: t},
		statuses: map[uuid.UUID]tenant.Status{},
		owner:    "owner@royalbeauty.example",
	}
}

func activeTenant() *tenant.Tenant {
	return &tenant.Tenant{
		ID:     uuid.New(),
		Slug:   "royal",
		Name:   "Royal Beauty",
		Status: tenant.StatusActive,
		Active: true,
	}
}

func TestPaddleHandler(t *testing.T) {
	t.Parallel()

	t.Run("invalid signature is rejected before parsing", func(t *testing.T) {
		t.Parallel()

		dir := newDirectory(activeTenant(), "ctm_1")
		h := webhooks.NewPaddleHandler(stubVerifier{ok: false}, dir)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, webhookRequest(`{"event_type":"subscription.canceled","data":{"customer_id":"ctm_1"}}`))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, dir.statuses)
	})

	t.Run("canceled subscription suspends the tenant and mails the owner", func(t *testing.T) {
		t.Parallel()

		tn := activeTenant()
		dir := newDirectory(tn, "ctm_1")
		mailer := &captureMailer{}
		cache := tenant.NewMemoryCache(10)
		cache.Set(context.Background(), tn.Slug, tn, time.Minute)

		h := webhooks.NewPaddleHandler(stubVerifier{ok: true}, dir,
			webhooks.WithMailer(mailer), webhooks.WithCache(cache))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, webhookRequest(`{"event_id":"evt_1","event_type":"subscription.canceled","data":{"id":"sub_1","customer_id":"ctm_1"}}`))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, tenant.StatusSuspended, dir.statuses[tn.ID])

		_, hit := cache.Get(context.Background(), tn.Slug)
		assert.False(t, hit, "cached tenant must be invalidated")

		require.Len(t, mailer.sent, 1)
		assert.Equal(t, "owner@royalbeauty.example", mailer.sent[0].SendTo)
		assert.Equal(t, "tenant-suspended", mailer.sent[0].Tag)
	})

	t.Run("resumed subscription reactivates a suspended tenant", func(t *testing.T) {
		t.Parallel()

		tn := activeTenant()
		tn.Status = tenant.StatusSuspended
		dir := newDirectory(tn, "ctm_1")
		mailer := &captureMailer{}
		h := webhooks.NewPaddleHandler(stubVerifier{ok: true}, dir, webhooks.WithMailer(mailer))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, webhookRequest(`{"event_type":"subscription.resumed","data":{"customer_id":"ctm_1"}}`))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, tenant.StatusActive, dir.statuses[tn.ID])
		require.Len(t, mailer.sent, 1)
		assert.Equal(t, "tenant-reactivated", mailer.sent[0].Tag)
	})

	t.Run("updated event follows the subscription status", func(t *testing.T) {
		t.Parallel()

		tn := activeTenant()
		dir := newDirectory(tn, "ctm_1")
		h := webhooks.NewPaddleHandler(stubVerifier{ok: true}, dir)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, webhookRequest(`{"event_type":"subscription.updated","data":{"customer_id":"ctm_1","status":"past_due"}}`))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, tenant.StatusSuspended, dir.statuses[tn.ID])
	})

	t.Run("no-op transition writes nothing", func(t *testing.T) {
		t.Parallel()

		tn := activeTenant()
		dir := newDirectory(tn, "ctm_1")
		mailer := &captureMailer{}
		h := webhooks.NewPaddleHandler(stubVerifier{ok: true}, dir, webhooks.WithMailer(mailer))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, webhookRequest(`{"event_type":"subscription.activated","data":{"customer_id":"ctm_1"}}`))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, dir.statuses)
		assert.Empty(t, mailer.sent)
	})

	t.Run("irrelevant event types are acknowledged without lookup", func(t *testing.T) {
		t.Parallel()

		dir := newDirectory(activeTenant(), "ctm_1")
		h := webhooks.NewPaddleHandler(stubVerifier{ok: true}, dir)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, webhookRequest(`{"event_type":"transaction.created","data":{"customer_id":"ctm_1"}}`))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, dir.statuses)
	})

	t.Run("unknown billing customer is acknowledged", func(t *testing.T) {
		t.Parallel()

		dir := newDirectory(activeTenant(), "ctm_1")
		h := webhooks.NewPaddleHandler(stubVerifier{ok: true}, dir)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, webhookRequest(`{"event_type":"subscription.canceled","data":{"customer_id":"ctm_unknown"}}`))

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("malformed payload is a bad request", func(t *testing.T) {
		t.Parallel()

		dir := newDirectory(activeTenant(), "ctm_1")
		h := webhooks.NewPaddleHandler(stubVerifier{ok: true}, dir)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, webhookRequest(`{"event_type":`))

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
