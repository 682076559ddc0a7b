// Package logger builds slog loggers with environment-driven configuration
// and automatic context attribute injection.
//
// Context extractors let packages enrich log records with request-scoped
// values (tenant slug, user id) without threading loggers through every call:
//
//	log := logger.New(
//		logger.WithContextExtractors(tenant.LoggerExtractor()),
//	)
package logger
