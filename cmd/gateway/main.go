// Package main is the entry point for the data aggregation gateway.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dataforge/gateway/internal/config"
	"github.com/dataforge/gateway/internal/core"
	"github.com/dataforge/gateway/internal/monitoring"
	"github.com/dataforge/gateway/internal/persistence"
	"github.com/dataforge/gateway/internal/sources"
	"github.com/dataforge/gateway/internal/telemetry"
	"github.com/dataforge/gateway/internal/tools"
	"github.com/dataforge/gateway/internal/transport/rest"
	"github.com/dataforge/gateway/internal/transport/stdio"
)

func main() {
	_ = godotenv.Load()

	mode := flag.String("mode", "rest", "transport to run: rest, stdio, or both")
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	var loader *config.Loader
	if *configPath != "" {
		loader = config.NewLoader(*configPath)
	} else {
		loader = config.NewLoader()
	}

	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := monitoring.New(cfg.Monitoring.Logger)
	monitoring.Global(cfg.Monitoring.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracer, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:      cfg.Monitoring.Tracing.Enabled,
		OTLPEndpoint: cfg.Monitoring.Tracing.OTLPEndpoint,
		ServiceName:  cfg.Monitoring.Tracing.ServiceName,
		SampleRate:   cfg.Monitoring.Tracing.SampleRate,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("init tracing")
	}
	defer tracer.Shutdown(context.Background())

	cache, err := buildCache(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("init cache")
	}

	registry := core.NewRegistry()
	sources.RegisterAll(registry, cfg)

	c := core.New(registry, cache, cfg.AllDescriptors(), cfg.Thresholds, logger, tracer)
	defer c.Close()

	toolRegistry := tools.NewRegistry(c, cfg)

	fanOut, err := buildPersistence(ctx, cfg, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("persistence sidecar unavailable, evidence bundles will be dropped")
		fanOut = persistence.NewFanOut(logger, persistence.Noop{})
	}
	defer fanOut.Close()
	toolRegistry.SetPersister(fanOut)

	logger.Info().Strs("tools", toolRegistry.Names()).Str("mode", *mode).Msg("gateway starting")

	switch *mode {
	case "stdio":
		runStdio(ctx, toolRegistry, logger)
	case "both":
		go runStdio(ctx, toolRegistry, logger)
		runREST(ctx, cfg, toolRegistry, logger)
	default:
		runREST(ctx, cfg, toolRegistry, logger)
	}

	logger.Info().Msg("gateway stopped")
}

func buildCache(cfg *config.Config, logger *monitoring.Logger) (core.Cache, error) {
	if cfg.Cache.Backend == "redis" {
		return core.NewRedisCache(core.RedisOptions{
			Addr: cfg.Cache.RedisAddr,
			DB:   cfg.Cache.RedisDB,
		}, logger)
	}
	return core.NewMemoryCache(), nil
}

func buildPersistence(ctx context.Context, cfg *config.Config, logger *monitoring.Logger) (*persistence.FanOut, error) {
	var backends []persistence.Persister
	for _, backend := range cfg.Persistence.Backends {
		switch backend {
		case "sqlite":
			p, err := persistence.NewSQLite(cfg.Persistence.SQLitePath, logger)
			if err != nil {
				return nil, fmt.Errorf("sqlite: %w", err)
			}
			backends = append(backends, p)
		case "postgres":
			p, err := persistence.NewPostgres(ctx, cfg.Persistence.PostgresDSN, logger)
			if err != nil {
				return nil, fmt.Errorf("postgres: %w", err)
			}
			backends = append(backends, p)
		case "s3":
			p, err := persistence.NewS3(ctx, cfg.Persistence.S3Bucket, cfg.Persistence.S3Region, logger)
			if err != nil {
				return nil, fmt.Errorf("s3: %w", err)
			}
			backends = append(backends, p)
		}
	}
	if len(backends) == 0 {
		backends = append(backends, persistence.Noop{})
	}
	return persistence.NewFanOut(logger, backends...), nil
}

func runStdio(ctx context.Context, registry *tools.Registry, logger *monitoring.Logger) {
	server := stdio.NewServer(registry, logger)
	if err := server.Serve(ctx, os.Stdin, os.Stdout); err != nil {
		logger.Error().Err(err).Msg("stdio transport stopped")
	}
}

func runREST(ctx context.Context, cfg *config.Config, registry *tools.Registry, logger *monitoring.Logger) {
	requestLogger := monitoring.NewRequestLogger(logger)
	alerts := monitoring.NewAlertManager(logger, cfg.Monitoring.Alert)
	promRegistry := prometheus.NewRegistry()
	metrics := monitoring.NewMetricsCollector(promRegistry)

	server := rest.NewServer(rest.Config{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		MetricsPath:  cfg.Monitoring.Metrics.Path,
	}, registry, requestLogger, alerts, metrics, promRegistry, logger)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("rest server shutdown error")
		}
	}()

	if err := server.ListenAndServe(); err != nil {
		logger.Error().Err(err).Msg("rest transport stopped")
	}
}
