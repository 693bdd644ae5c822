package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
)

const shutdownTimeout = 10 * time.Second

// startHTTPServer serves the router and blocks until SIGINT/SIGTERM or a
// listener failure, then shuts down gracefully and releases application
// resources.
func (app *application) startHTTPServer(ctx context.Context, router chi.Router) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		app.logger.Info("Starting HTTP server", "addr", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			app.logger.Error("Graceful shutdown failed, forcing close", "error", err)
			if closeErr := server.Close(); closeErr != nil {
				return fmt.Errorf("forced server close: %w", closeErr)
			}
		}
	}

	app.cleanup()
	app.logger.Info("Server stopped")
	return nil
}
