package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/atmosight/climate-insight-service/internal/adapter/http"
	"github.com/atmosight/climate-insight-service/internal/adapter/nominatim"
	"github.com/atmosight/climate-insight-service/internal/adapter/power"
	"github.com/atmosight/climate-insight-service/internal/analysis"
	"github.com/atmosight/climate-insight-service/internal/config"
	"github.com/atmosight/climate-insight-service/internal/domain"
	"github.com/atmosight/climate-insight-service/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	geocoder := nominatim.NewCachedGeocoder(
		nominatim.NewClient(cfg.NominatimBaseURL, cfg.NominatimTimeout, logger),
		cfg.NominatimCacheSize,
		metrics,
	)
	fetcher := power.NewCachedFetcher(
		power.NewClient(cfg.PowerBaseURL, cfg.PowerTimeout, logger),
		cfg.PowerCacheSize,
		metrics,
	)

	svc := analysis.New(fetcher, geocoder, logger, metrics, analysis.Options{
		StartYear:         cfg.PowerStartYear,
		MinValidPoints:    cfg.MinValidPoints,
		MinSampleYears:    cfg.MinSampleYears,
		DefaultWindowDays: cfg.DefaultWindowDays,
		MissingSentinel:   domain.MissingSentinel,
	})

	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	logger.Info("insight service started",
		"addr", cfg.HTTPAddr,
		"start_year", cfg.PowerStartYear,
		"min_sample_years", cfg.MinSampleYears,
	)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
