package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Bahjat/seo-insight-tool/internal/analyzer"
	"github.com/Bahjat/seo-insight-tool/internal/pageinsight"
	"github.com/Bahjat/seo-insight-tool/internal/platform/config"
	"github.com/Bahjat/seo-insight-tool/internal/platform/logger"
	"github.com/Bahjat/seo-insight-tool/internal/platform/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	transport := pageinsight.NewTransport(cfg.BlockPrivateDial)
	engine := pageinsight.NewEngine(
		pageinsight.NewHTTPClient(transport),
		pageinsight.NewDiscoverer(transport, cfg.DiscoveryTimeout),
	)
	svc := analyzer.NewService(engine, log)

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	mux := http.NewServeMux()
	analyzer.NewTransport(svc, log, cfg.AnalyzeTimeout).RegisterRoutes(mux, limiter.Middleware)
	mux.Handle("GET /metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           middleware.Chain(mux, middleware.RequestID, middleware.Logging(log)),
		ReadHeaderTimeout: 10 * time.Second,
		// Long enough for a full analysis plus encoding.
		WriteTimeout: cfg.AnalyzeTimeout + 5*time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			"addr", srv.Addr,
			"block_private_dial", cfg.BlockPrivateDial,
			"rate_limit_rps", cfg.RateLimitRPS,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", "timeout", cfg.ShutdownTimeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	transport.CloseIdleConnections()
	return nil
}
