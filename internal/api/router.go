// Package api provides the HTTP API for CityAir.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/cityair/cityair/internal/api/handler"
	"github.com/cityair/cityair/internal/api/middleware"
	"github.com/cityair/cityair/internal/provider/resilience"
	"github.com/cityair/cityair/internal/subscription"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version             string
	BuildTime           string
	Logger              zerolog.Logger
	ServiceName         string
	Metrics             *middleware.Metrics
	LookupService       handler.LookupService
	SubscriptionService *subscription.Service
	Providers           *resilience.Registry
	Ready               handler.ReadyFunc
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "cityair-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing(serviceName))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware())
	}
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.ContentTypeJSON)

	opsHandler := handler.NewOpsHandler(handler.OpsHandlerConfig{
		Version:   cfg.Version,
		BuildTime: cfg.BuildTime,
		Providers: cfg.Providers,
		Ready:     cfg.Ready,
	})
	airQualityHandler := handler.NewAirQualityHandler(cfg.LookupService)
	subscriptionHandler := handler.NewSubscriptionHandler(cfg.SubscriptionService)

	// Lookups fan out to upstream providers, so they carry a tighter limit
	// than the subscription endpoints.
	lookupRateLimit := middleware.RateLimitByIP(middleware.LookupRateLimit)       // 30 req/min
	subscribeRateLimit := middleware.RateLimitByIP(middleware.SubscribeRateLimit) // 10 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.SystemStatus)
		})

		// Interactive air quality lookup
		r.With(lookupRateLimit).Get("/air-quality", airQualityHandler.GetAirQuality)

		// Alert subscriptions
		r.Route("/subscriptions", func(r chi.Router) {
			r.Use(middleware.RequireJSON)
			r.With(subscribeRateLimit).Post("/", subscriptionHandler.CreateSubscription)
			r.With(standardRateLimit).Delete("/", subscriptionHandler.DeleteSubscription)
		})
	})

	return r
}
