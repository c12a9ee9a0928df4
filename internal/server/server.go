package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vinestrading/catalog-service/config"
	"github.com/vinestrading/catalog-service/internal/logger"
)

// New wraps handler in an http.Server configured from cfg.
func New(cfg config.ServerConfig, handler http.Handler) *http.Server {
	addr := cfg.HTTPPort
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       2 * cfg.WriteTimeout,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully within
// shutdownTimeout.
func Run(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, log logger.ZapLogger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	log.Info("Server stopped")
	return nil
}
