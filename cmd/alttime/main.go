// Command alttime serves the alternative time conversion API.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lexorius/alternative-time/internal/api"
	"github.com/Lexorius/alternative-time/internal/calendar"
	"github.com/Lexorius/alternative-time/internal/config"
	"github.com/Lexorius/alternative-time/internal/eop"
	"github.com/Lexorius/alternative-time/internal/health"
	"github.com/Lexorius/alternative-time/internal/i18n"
	"github.com/Lexorius/alternative-time/internal/lunar"
	"github.com/Lexorius/alternative-time/internal/metrics"
	"github.com/Lexorius/alternative-time/internal/refdata"
	"github.com/Lexorius/alternative-time/internal/rotation"
	"github.com/Lexorius/alternative-time/internal/stellar"
	"github.com/Lexorius/alternative-time/internal/stream"
	"github.com/Lexorius/alternative-time/internal/timescale"
)

func main() {
	configPath := flag.String("config", os.Getenv("ALTTIME_CONFIG"), "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("loading configuration", "error", err)
		os.Exit(1)
	}
	applyEnvOverrides(&cfg)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel(),
	}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

// applyEnvOverrides lets deployment environments override the file without
// templating it.
func applyEnvOverrides(cfg *config.Config) {
	if v := os.Getenv("ALTTIME_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("ALTTIME_TOKEN"); v != "" {
		cfg.Auth.Token = v
	}
	if v := os.Getenv("ALTTIME_EOP_URL"); v != "" {
		cfg.EOP.URL = v
	}
	if v := os.Getenv("ALTTIME_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	table, err := timescale.LoadTable(refdata.LeapSeconds)
	if err != nil {
		return err
	}
	catalog, err := stellar.LoadCatalog(refdata.Stars)
	if err != nil {
		return err
	}
	labels, err := i18n.Load(refdata.Labels)
	if err != nil {
		return err
	}
	logger.Info("reference data loaded",
		"leap_second_entries", table.Len(),
		"latest_tai_minus_utc", table.Latest().TAIMinusUTC,
		"stars", len(catalog.IDs()),
	)

	fetcher := eop.NewFetcher(cfg.EOP.URL, cfg.EOP.FetchTimeout, logger)
	cache := eop.NewCache(fetcher, cfg.EOP.TTL, cfg.EOP.FetchTimeout, logger)

	registry := calendar.Builtin(calendar.Deps{
		Timescale: timescale.NewConverter(table),
		Rotation:  rotation.NewConverter(cache),
		Lunar:     lunar.NewModel(),
		Stellar:   stellar.NewEstimator(catalog),
	})

	streamer := stream.NewStreamer(registry, cfg.Stream.TickInterval, cfg.Stream.MaxPerIP, logger)
	checker := health.NewChecker()
	server := api.NewServer(registry, labels, cache, streamer, checker, cfg.Auth.Token, logger)

	httpServer := &http.Server{
		Addr:        cfg.Server.Addr,
		Handler:     server.Handler(),
		ReadTimeout: cfg.Server.ReadTimeout,
		IdleTimeout: cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.EOP.URL != "" {
		go refreshLoop(ctx, cache, logger)
	} else {
		logger.Warn("no EOP source configured; UT1 and ERA use the static fallback")
	}
	go sampleAgeLoop(ctx, cache)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Server.Addr, "auth", cfg.Auth.Token != "")
		errCh <- httpServer.ListenAndServe()
	}()
	checker.SetReady(true)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	checker.SetReady(false)
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// refreshLoop keeps the DUT1 sample warm at half the TTL so requests never
// pay the fetch latency.
func refreshLoop(ctx context.Context, cache *eop.Cache, logger *slog.Logger) {
	cache.Refresh(ctx)

	ticker := time.NewTicker(cache.TTL() / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cache.Refresh(ctx)
		}
	}
}

// sampleAgeLoop publishes the sample age gauge.
func sampleAgeLoop(ctx context.Context, cache *eop.Cache) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if age := cache.AgeSeconds(); age >= 0 {
				metrics.SetEOPSampleAge(age)
			}
		}
	}
}
