package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/phrazzld/tasktrack-api/internal/redact"
)

const (
	readHeaderTimeout = 10 * time.Second
	limiterPruneEvery = 5 * time.Minute
	limiterIdleTTL    = 15 * time.Minute
)

// startHTTPServer serves router until ctx is cancelled or the listener
// fails, then drains in-flight requests within the configured timeout.
func (app *application) startHTTPServer(ctx context.Context, router http.Handler) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serverCtx, cancelServer := context.WithCancel(ctx)
	defer cancelServer()

	go app.pruneAuthLimiter(serverCtx)

	serveErr := make(chan error, 1)
	go func() {
		app.logger.Info("Starting server", "port", app.config.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error("Server failed", redact.ErrorAttr(err))
			serveErr <- err
		}
	}()

	var listenErr error
	select {
	case <-serverCtx.Done():
		app.logger.Info("Shutting down server...")
	case listenErr = <-serveErr:
	}

	timeout := time.Duration(app.config.Server.ShutdownTimeoutSeconds) * time.Second
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("Server shutdown failed", redact.ErrorAttr(err))
		app.cleanup()
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	app.cleanup()

	if listenErr != nil {
		return fmt.Errorf("server failed: %w", listenErr)
	}
	app.logger.Info("Server shutdown completed")
	return nil
}

// pruneAuthLimiter evicts idle per-IP limiters until ctx is done.
func (app *application) pruneAuthLimiter(ctx context.Context) {
	ticker := time.NewTicker(limiterPruneEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := app.authLimiter.Prune(limiterIdleTTL); n > 0 {
				app.logger.Debug("pruned idle rate limiters", "count", n)
			}
		}
	}
}
