package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/specialistvlad/factgraph/internal/ctxlog"
)

// healthHandler answers liveness probes.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// Handler returns the mux serving /health and /metrics.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// StartServer starts the health and metrics server in the background. It
// does nothing when the configured port is 0. The address is bound before
// returning, so a port that is already in use is reported here.
func (a *App) StartServer(ctx context.Context) error {
	logger := ctxlog.FromContext(a.Context(ctx))
	if a.config.MetricsPort <= 0 {
		logger.Debug("Health check server not started: disabled")
		return nil
	}

	addr := fmt.Sprintf(":%d", a.config.MetricsPort)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	a.httpServer = &http.Server{
		Handler:           a.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("Health check server starting", "address", fmt.Sprintf("http://localhost%s/health", addr))
		// Serve returns ErrServerClosed on graceful shutdown.
		if err := a.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Health check server failed unexpectedly", "error", err)
		}
	}()
	return nil
}

// Shutdown stops the server started by StartServer, if any.
func (a *App) Shutdown(ctx context.Context) error {
	logger := ctxlog.FromContext(a.Context(ctx))
	if a.httpServer == nil {
		logger.Debug("Health check server was not running.")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	logger.Info("Shutting down health check server...")
	if err := a.httpServer.Shutdown(ctx); err != nil {
		logger.Error("Health check server shutdown failed", "error", err)
		return err
	}
	a.httpServer = nil
	return nil
}
