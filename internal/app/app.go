// Package app wires and runs the mock PMS server.
package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alex-user-go/hotelpms/internal/config"
	"github.com/alex-user-go/hotelpms/internal/middleware"
	"github.com/alex-user-go/hotelpms/internal/mockpms"
	"github.com/alex-user-go/hotelpms/internal/obs"
	"github.com/alex-user-go/hotelpms/internal/ratelimit"
)

// Run initializes and runs the mock PMS server until interrupted.
func Run() error {
	config.LoadEnvFile()
	cfg := config.LoadMock()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	metrics := obs.NewMetrics(logger)

	store := mockpms.NewStore(mockpms.DefaultRooms(), cfg.HoldTTL)
	defer store.Close()

	// Booking rate is per client IP per minute
	limiter := ratelimit.New(cfg.BookRate, time.Minute)
	defer limiter.Close()

	h := mockpms.NewHandler(store, limiter, metrics, cfg.APIKey, logger)

	mux := http.NewServeMux()
	h.Register(mux)
	mux.HandleFunc("GET /healthz", obs.HealthHandler(logger))
	mux.HandleFunc("GET /metrics", metrics.MetricsHandler())

	wrappedHandler := middleware.Logging(logger)(mux)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      wrappedHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting mock PMS server", "addr", srv.Addr, "hold_ttl", cfg.HoldTTL.String())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
		return err
	}

	logger.Info("server stopped")
	return nil
}
