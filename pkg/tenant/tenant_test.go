package tenant_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/glowdesk/glowdesk/pkg/tenant"
)

func TestIsServing(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		status tenant.Status
		active bool
		want   bool
	}{
		{"active and switched on", tenant.StatusActive, true, true},
		{"active but kill switch off", tenant.StatusActive, false, false},
		{"suspended", tenant.StatusSuspended, true, false},
		{"pending", tenant.StatusPending, true, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tn := activeTenant("royal")
			tn.Status = tc.status
			tn.Active = tc.active
			assert.Equal(t, tc.want, tn.IsServing())
		})
	}

	t.Run("nil tenant never serves", func(t *testing.T) {
		t.Parallel()
		var tn *tenant.Tenant
		assert.False(t, tn.IsServing())
	})
}

func TestLanguageTag(t *testing.T) {
	t.Parallel()

	tn := activeTenant("royal")
	tn.Locale = "pt-BR"
	assert.Equal(t, language.MustParse("pt-BR"), tn.LanguageTag())

	tn.Locale = "not a locale"
	assert.Equal(t, language.Und, tn.LanguageTag())

	tn.Locale = ""
	assert.Equal(t, language.Und, tn.LanguageTag())
}

func TestContextHelpers(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		tn := activeTenant("royal")
		ctx := tenant.WithTenant(context.Background(), tn)

		got, ok := tenant.FromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, tn.ID, got.ID)

		id, ok := tenant.IDFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, tn.ID, id)
	})

	t.Run("empty context", func(t *testing.T) {
		t.Parallel()

		_, ok := tenant.FromContext(context.Background())
		assert.False(t, ok)

		assert.Panics(t, func() {
			tenant.MustFromContext(context.Background())
		})
	})

	t.Run("slug without tenant", func(t *testing.T) {
		t.Parallel()

		ctx := tenant.WithSlug(context.Background(), "unknown")
		slug, ok := tenant.SlugFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, "unknown", slug)

		_, ok = tenant.FromContext(ctx)
		assert.False(t, ok)
	})
}

func TestMemoryCache(t *testing.T) {
	t.Parallel()

	t.Run("ttl expiry", func(t *testing.T) {
		t.Parallel()

		cache := tenant.NewMemoryCache(10)
		t.Cleanup(func() { _ = cache.Close() })

		tn := activeTenant("royal")
		cache.Set(context.Background(), "royal", tn, 30*time.Millisecond)

		got, ok := cache.Get(context.Background(), "royal")
		require.True(t, ok)
		assert.Equal(t, tn.ID, got.ID)

		time.Sleep(50 * time.Millisecond)
		_, ok = cache.Get(context.Background(), "royal")
		assert.False(t, ok)
	})

	t.Run("lru eviction at capacity", func(t *testing.T) {
		t.Parallel()

		cache := tenant.NewMemoryCache(2)
		t.Cleanup(func() { _ = cache.Close() })

		cache.Set(context.Background(), "a", activeTenant("a"), time.Minute)
		cache.Set(context.Background(), "b", activeTenant("b"), time.Minute)

		// Touch "a" so "b" is the eviction candidate.
		_, _ = cache.Get(context.Background(), "a")

		cache.Set(context.Background(), "c", activeTenant("c"), time.Minute)

		_, ok := cache.Get(context.Background(), "a")
		assert.True(t, ok)
		_, ok = cache.Get(context.Background(), "b")
		assert.False(t, ok)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		cache := tenant.NewMemoryCache(10)
		t.Cleanup(func() { _ = cache.Close() })

		cache.Set(context.Background(), "royal", activeTenant("royal"), time.Minute)
		cache.Delete(context.Background(), "royal")

		_, ok := cache.Get(context.Background(), "royal")
		assert.False(t, ok)
	})
}
