// Package httpserver runs an http.Handler with graceful shutdown and
// provides JSON liveness and readiness handlers.
//
//	srv := httpserver.NewFromConfig(cfg,
//		httpserver.WithLogger(log),
//		httpserver.WithStopHook(func(*slog.Logger) { _ = db.Client().Disconnect(ctx) }),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// Run returns when ctx is cancelled or on SIGINT/SIGTERM, after in-flight
// requests drained or the shutdown timeout expired.
package httpserver
