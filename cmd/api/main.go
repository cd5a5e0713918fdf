package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/FACorreiaa/cardwise-api/pkg/config"
	"github.com/FACorreiaa/cardwise-api/pkg/cron"
	"github.com/FACorreiaa/cardwise-api/pkg/server"
)

const seedOfferCount = 25

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("fatal", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	deps, err := InitDependencies(ctx, cfg, logger)
	cancel()
	if err != nil {
		return err
	}
	defer deps.Close()

	if cfg.Catalog.SeedWhenEmpty {
		seedCtx, seedCancel := context.WithTimeout(context.Background(), time.Minute)
		if err := deps.CatalogService.SeedIfEmpty(seedCtx, seedOfferCount); err != nil {
			logger.Warn("catalog seed failed", slog.Any("error", err))
		}
		seedCancel()
	}

	var scheduler *cron.Scheduler
	if cfg.Catalog.RefreshEnabled {
		scheduler = cron.NewScheduler(deps.CatalogService, cfg.Catalog.RefreshCron, logger)
		if err := scheduler.Start(); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
	}

	if cfg.Observability.MetricsEnabled {
		go serveMetrics(cfg.Observability.MetricsPort, logger)
	}

	srv := server.New(cfg, deps.Routes(), logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	if scheduler != nil {
		<-scheduler.Stop().Done()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}

func serveMetrics(port int, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%d", port)
	logger.Info("metrics server listening", slog.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics server stopped", slog.Any("error", err))
	}
}
