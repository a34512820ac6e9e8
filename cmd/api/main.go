// Package main provides the entrypoint for the CityAir API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/cityair/cityair/internal/airquality/openmeteo"
	"github.com/cityair/cityair/internal/api"
	"github.com/cityair/cityair/internal/api/middleware"
	"github.com/cityair/cityair/internal/database"
	"github.com/cityair/cityair/internal/geocode"
	"github.com/cityair/cityair/internal/lookup"
	"github.com/cityair/cityair/internal/provider/resilience"
	"github.com/cityair/cityair/internal/subscription"
	"github.com/cityair/cityair/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "cityair-api"

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting CityAir API")

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	ctx := context.Background()

	// Initialize OpenTelemetry
	telemetryCfg := telemetry.ConfigFromEnv(serviceName, Version)
	tp, err := telemetry.Init(ctx, telemetryCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryCfg.Enabled {
		log.Info().
			Str("otlp_endpoint", telemetryCfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Connect to database
	dbConfig := database.ConfigFromEnv()
	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	log.Info().
		Str("host", dbConfig.Host).
		Int("port", dbConfig.Port).
		Str("database", dbConfig.Database).
		Msg("database connected")

	// Provider clients. The air quality client goes through the circuit
	// breaker registry so /v1/ops/status can report its state.
	providers := resilience.NewRegistry()

	airQualityHTTP := resilience.NewClient(resilience.DefaultClientConfig(openmeteo.ProviderName))
	providers.Register(openmeteo.ProviderName, airQualityHTTP)

	airQualityClient := openmeteo.NewClient(openmeteo.ClientConfig{
		HTTPClient: airQualityHTTP,
		Logger:     log,
	})
	geocodeClient := geocode.NewClient(geocode.ClientConfig{})

	lookupService := lookup.NewService(lookup.ServiceConfig{
		Resolver: geocodeClient,
		Fetcher:  airQualityClient,
		Logger:   log,
	})

	subscriptionService := subscription.NewService(subscription.NewPostgresRepository(pool))
	log.Info().Msg("subscription service initialized")

	router := api.NewRouter(api.RouterConfig{
		Version:             Version,
		BuildTime:           BuildTime,
		Logger:              log,
		ServiceName:         serviceName,
		Metrics:             metrics,
		LookupService:       lookupService,
		SubscriptionService: subscriptionService,
		Providers:           providers,
		Ready:               pool.Ping,
	})

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
