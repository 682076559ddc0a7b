package audit

import (
	"context"
	"log/slog"
)

// Sink persists audit events. Implementations must tolerate concurrent
// callers.
type Sink interface {
	Store(ctx context.Context, event Event) error
}

// SlogSink writes events to a structured logger. It is the development
// default and the fallback when no search backend is configured.
type SlogSink struct {
	log *slog.Logger
}

// NewSlogSink creates a sink over the given logger.
func NewSlogSink(log *slog.Logger) *SlogSink {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &SlogSink{log: log}
}

func (s *SlogSink) Store(ctx context.Context, event Event) error {
	s.log.InfoContext(ctx, "audit event",
		slog.String("kind", string(event.Kind)),
		slog.String("tenant_slug", event.TenantSlug),
		slog.String("user_id", event.UserID),
		slog.String("path", event.Path),
		slog.String("reason", event.Reason),
	)
	return nil
}
