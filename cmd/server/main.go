package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/glowdesk/glowdesk/internal/router"
	"github.com/glowdesk/glowdesk/internal/storage"
	"github.com/glowdesk/glowdesk/internal/webhooks"
	"github.com/glowdesk/glowdesk/pkg/audit"
	"github.com/glowdesk/glowdesk/pkg/auth"
	"github.com/glowdesk/glowdesk/pkg/config"
	"github.com/glowdesk/glowdesk/pkg/cookie"
	"github.com/glowdesk/glowdesk/pkg/email"
	"github.com/glowdesk/glowdesk/pkg/guard"
	"github.com/glowdesk/glowdesk/pkg/httpserver"
	"github.com/glowdesk/glowdesk/pkg/logger"
	"github.com/glowdesk/glowdesk/pkg/opensearch"
	"github.com/glowdesk/glowdesk/pkg/pg"
	"github.com/glowdesk/glowdesk/pkg/redis"
	"github.com/glowdesk/glowdesk/pkg/session"
	"github.com/glowdesk/glowdesk/pkg/tenant"
)

// appConfig holds platform-level settings; each subsystem loads its own
// config struct. The Use* toggles pick production backends over the
// in-process fallbacks.
type appConfig struct {
	RootDomain    string   `env:"APP_ROOT_DOMAIN" envDefault:"glowdesk.app"`
	CookieSecrets []string `env:"COOKIE_SECRETS,required" envSeparator:","`

	UseRedis      bool `env:"USE_REDIS" envDefault:"false"`
	UseOpenSearch bool `env:"USE_OPENSEARCH" envDefault:"false"`
	UsePostmark   bool `env:"USE_POSTMARK" envDefault:"false"`

	AuditIndex string `env:"AUDIT_INDEX" envDefault:"glowdesk-audit"`
}

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("fatal", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var app appConfig
	if err := config.Load(&app); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	var logCfg logger.Config
	config.MustLoad(&logCfg)
	log := logger.NewFromConfig(logCfg,
		logger.WithContextExtractors(tenant.LoggerExtractor()))
	slog.SetDefault(log)

	// Postgres: stores behind tenant resolution and the guard.
	var pgCfg pg.Config
	if err := config.Load(&pgCfg); err != nil {
		return fmt.Errorf("pg config: %w", err)
	}
	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return fmt.Errorf("pg connect: %w", err)
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	store := storage.New(pool)

	healthChecks := []func(context.Context) error{pg.Healthcheck(pool)}

	// Session store and tenant cache: Redis in production, memory otherwise.
	var sessionStore session.Store
	var tenantCache tenant.Cache
	var sessionCfg session.Config
	config.MustLoad(&sessionCfg)

	if app.UseRedis {
		var redisCfg redis.Config
		config.MustLoad(&redisCfg)
		redisClient, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return fmt.Errorf("redis connect: %w", err)
		}
		defer func() { _ = redisClient.Close() }()

		sessionStore = session.NewRedisStore(redisClient)
		tenantCache = tenant.NewRedisCache(redisClient)
		healthChecks = append(healthChecks, redis.Healthcheck(redisClient))
	} else {
		memStore := session.NewMemoryStore(sessionCfg.CleanupInterval)
		defer func() { _ = memStore.Close() }()
		sessionStore = memStore
		tenantCache = tenant.NewMemoryCache(tenant.DefaultCacheSize)
	}
	defer func() { _ = tenantCache.Close() }()

	cookies, err := cookie.New(app.CookieSecrets)
	if err != nil {
		return fmt.Errorf("cookie manager: %w", err)
	}

	sessions := session.NewManager(
		session.WithStore(sessionStore),
		session.WithTransport(session.NewCookieTransport(cookies, sessionCfg.CookieName, sessionCfg.SecureCookies)),
		session.WithConfig(sessionCfg),
	)

	// Audit trail: OpenSearch sink in production, slog fallback otherwise.
	var sink audit.Sink
	if app.UseOpenSearch {
		var osCfg opensearch.Config
		config.MustLoad(&osCfg)
		osClient, err := opensearch.New(ctx, osCfg)
		if err != nil {
			return fmt.Errorf("opensearch: %w", err)
		}
		sink = audit.NewOpenSearchSink(osClient, app.AuditIndex)
		healthChecks = append(healthChecks, opensearch.Healthcheck(osClient))
	} else {
		sink = audit.NewSlogSink(log)
	}
	recorder := audit.NewRecorder(sink, audit.WithRecorderLogger(log))
	defer recorder.Close()

	// Billing notices to salon owners.
	var mailer email.EmailSender
	var emailCfg email.Config
	config.MustLoad(&emailCfg)
	if app.UsePostmark {
		mailer, err = email.NewPostmarkSender(emailCfg)
		if err != nil {
			return fmt.Errorf("postmark: %w", err)
		}
	} else {
		mailer = email.NewDevSender(log)
	}

	g := guard.New(store.Memberships, store.Profiles,
		guard.WithLogger(log),
		guard.WithDenialHook(func(ctx context.Context, d guard.Denial, path string) {
			slug, _ := tenant.SlugFromContext(ctx)
			_ = recorder.Record(ctx, audit.Event{
				Kind:       audit.KindAccessDenied,
				TenantSlug: slug,
				Path:       path,
				Reason:     string(d.Reason),
			})
		}),
	)

	var googleCfg auth.GoogleConfig
	config.MustLoad(&googleCfg)
	provider := auth.NewGoogleAdapter(googleCfg)

	var paddleCfg webhooks.PaddleConfig
	config.MustLoad(&paddleCfg)
	webhook := webhooks.NewPaddleHandler(
		webhooks.NewPaddleVerifier(paddleCfg),
		store.Tenants,
		webhooks.WithMailer(mailer),
		webhooks.WithRecorder(recorder),
		webhooks.WithCache(tenantCache),
		webhooks.WithLogger(log),
	)

	handler := router.New(router.Deps{
		Log:           log,
		Sessions:      sessions,
		Tenants:       store.Tenants,
		Cache:         tenantCache,
		Guard:         g,
		Policy:        guard.DefaultPolicy(),
		Provider:      provider,
		Profiles:      store.Profiles,
		Cookies:       cookies,
		Recorder:      recorder,
		PaddleWebhook: webhook,
		RootDomain:    app.RootDomain,
		Health:        httpserver.HealthCheckHandler(log, healthChecks...),
	})

	var httpCfg httpserver.Config
	config.MustLoad(&httpCfg)
	return httpserver.New(httpCfg, log).Run(ctx, handler)
}
