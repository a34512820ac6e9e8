// Package main provides the entrypoint for the CityAir alerter worker.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/cityair/cityair/internal/airquality/openmeteo"
	"github.com/cityair/cityair/internal/alert"
	"github.com/cityair/cityair/internal/database"
	"github.com/cityair/cityair/internal/geocode"
	"github.com/cityair/cityair/internal/notify"
	"github.com/cityair/cityair/internal/provider/resilience"
	"github.com/cityair/cityair/internal/subscription"
	"github.com/cityair/cityair/internal/telemetry"
	"github.com/cityair/cityair/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "cityair-alerter"

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting CityAir alerter")

	// The worker also exposes a health endpoint for Cloud Run.
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	telemetryCfg := telemetry.ConfigFromEnv(serviceName, Version)
	tp, err := telemetry.Init(ctx, telemetryCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	dbConfig := database.ConfigFromEnv()
	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	log.Info().
		Str("host", dbConfig.Host).
		Str("database", dbConfig.Database).
		Msg("database connected")

	subscriptionService := subscription.NewService(subscription.NewPostgresRepository(pool))

	airQualityHTTP := resilience.NewClient(resilience.DefaultClientConfig(openmeteo.ProviderName))
	airQualityClient := openmeteo.NewClient(openmeteo.ClientConfig{
		HTTPClient: airQualityHTTP,
		Logger:     log,
	})
	geocodeClient := geocode.NewClient(geocode.ClientConfig{})

	alertCfg := worker.AlertConfigFromEnv()

	pipeline := alert.NewPipeline(alert.PipelineConfig{
		Resolver:     geocodeClient,
		Fetcher:      airQualityClient,
		Subscribers:  subscriptionService,
		Notifier:     newNotifier(log),
		Logger:       log,
		CityInterval: alertCfg.CityInterval,
	})

	alertJob := worker.NewAlertJob(worker.AlertJobConfig{
		Config:   alertCfg,
		Cities:   subscriptionService,
		Pipeline: pipeline,
		Logger:   log,
	})

	// Health check server for the container runtime.
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","version":%q}`, Version)
	})

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("health server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("health server error")
		}
	}()

	// Prefer Pub/Sub scheduling when configured; otherwise run on the
	// internal ticker.
	go func() {
		subscriptionName := os.Getenv("PUBSUB_SUBSCRIPTION")
		if subscriptionName == "" {
			log.Info().
				Dur("interval", alertCfg.RunInterval).
				Msg("no pubsub subscription configured, running on internal schedule")
			alertJob.RunLoop(ctx)
			return
		}

		handler, err := worker.NewPubSubHandler(ctx, worker.PubSubConfig{
			ProjectID:        os.Getenv("PUBSUB_PROJECT_ID"),
			SubscriptionName: subscriptionName,
			AlertJob:         alertJob,
			Logger:           log,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create pubsub handler")
		}
		defer handler.Close()

		if err := handler.Start(ctx); err != nil && ctx.Err() == nil {
			log.Fatal().Err(err).Msg("pubsub handler stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down alerter")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("alerter stopped")
}

// newNotifier builds the outbound notifier. Without an SMTP host configured,
// alerts are logged instead of mailed, which keeps local runs harmless.
func newNotifier(log zerolog.Logger) alert.Notifier {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		log.Warn().Msg("SMTP_HOST not set, alerts will only be logged")
		return notify.NewLogNotifier(log)
	}

	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port <= 0 {
		port = 587
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "alerts@cityair.dev"
	}

	log.Info().Str("host", host).Int("port", port).Msg("smtp notifier configured")

	return notify.NewSMTPNotifier(notify.SMTPConfig{
		Host:     host,
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     from,
	})
}
