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

	"go.uber.org/zap"

	"github.com/patrickwarner/sampadai-landing/internal/api"
	"github.com/patrickwarner/sampadai-landing/internal/config"
	"github.com/patrickwarner/sampadai-landing/internal/geoip"
	"github.com/patrickwarner/sampadai-landing/internal/observability"
	"github.com/patrickwarner/sampadai-landing/internal/signup"
	"github.com/patrickwarner/sampadai-landing/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := observability.InitLoggerWithService(cfg.ServiceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}

	defer func() {
		if err := logger.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to sync logger: %v\n", err)
		}
	}()

	if err := run(logger, cfg); err != nil {
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}
}

func run(logger *zap.Logger, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TracingEnabled {
		shutdown, err := observability.InitTracing(ctx, logger, cfg.ServiceName, cfg.Environment, cfg.TempoEndpoint, cfg.TracingSampleRate)
		if err != nil {
			logger.Warn("tracing disabled", zap.Error(err))
		} else {
			defer shutdown()
		}
	}

	metricsRegistry := observability.NewPrometheusRegistry()

	lookup, closeLookup, err := newLookup(cfg.Geo, logger)
	if err != nil {
		return err
	}
	defer closeLookup()
	resolver := geoip.NewResolver(lookup, cfg.Geo.Timeout, logger, metricsRegistry)

	recorder, err := newRecorder(ctx, cfg.Sheets, logger)
	if err != nil {
		return err
	}

	pages, err := web.NewRenderer()
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	srvDeps := api.NewServer(logger, metricsRegistry, recorder, pages)
	handler := api.NewRouter(srvDeps, api.RouterConfig{
		Resolver:    resolver,
		SkipBots:    cfg.Geo.SkipBots,
		ServiceName: cfg.ServiceName,
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.Info("Landing page running",
		zap.String("addr", addr),
		zap.String("geo_provider", cfg.Geo.Provider),
		zap.Bool("sheets", cfg.Sheets.Enabled()),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listen: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}

// newLookup builds the geolocation source selected by GEO_PROVIDER. The
// returned close function is always safe to call.
func newLookup(cfg config.GeoConfig, logger *zap.Logger) (geoip.Lookup, func(), error) {
	switch cfg.Provider {
	case config.GeoProviderOffline:
		db, err := geoip.OpenOffline(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open geoip db: %w", err)
		}
		return db, func() {
			if err := db.Close(); err != nil {
				logger.Warn("close geoip db", zap.Error(err))
			}
		}, nil
	case config.GeoProviderNone:
		return nil, func() {}, nil
	default:
		return geoip.NewRemote(cfg.ProviderURL, cfg.UserAgent, cfg.Timeout, logger), func() {}, nil
	}
}

func newRecorder(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (signup.Recorder, error) {
	if !cfg.Enabled() {
		logger.Warn("SHEETS_SPREADSHEET_ID not set, signups will only be logged")
		return signup.LogRecorder{Logger: logger}, nil
	}
	sheets, err := signup.NewSheets(ctx, signup.SheetsConfig{
		SpreadsheetID: cfg.SpreadsheetID,
		WaitlistRange: cfg.WaitlistRange,
		RSVPRange:     cfg.RSVPRange,
		Timeout:       cfg.Timeout,
	}, logger, signup.SheetsCredentials(cfg.CredentialsJSON, cfg.CredentialsFile)...)
	if err != nil {
		return nil, fmt.Errorf("init sheets recorder: %w", err)
	}
	return sheets, nil
}
