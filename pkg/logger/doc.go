// Package logger builds *slog.Logger instances with per-environment defaults
// and request-scoped attributes.
//
// New takes functional options; NewFromConfig reads the same settings from
// a Config populated by the config package. Records pass through
// a handler that runs every registered ContextExtractor against
// the context passed to InfoContext/ErrorContext etc., so values such as the
// request id appear on every record without being passed explicitly.
//
// attr.go contains constructors for the attribute keys used across the
// service (error, user_id, client_ip, provider, component...).
//
//	log := logger.NewFromConfig(cfg, logger.WithContextExtractors(requestid.LoggerExtractor()))
//	log.WarnContext(ctx, "provider failed", logger.Provider("coingecko"), logger.Error(err))
package logger
