// Package handler provides HTTP handlers for the CityAir API.
package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/cityair/cityair/internal/api/models"
	"github.com/cityair/cityair/internal/api/response"
	"github.com/cityair/cityair/internal/provider/resilience"
)

// ReadyFunc checks a backing dependency, returning an error when it is not
// ready to serve.
type ReadyFunc func(ctx context.Context) error

// OpsHandlerConfig holds configuration for the OpsHandler.
type OpsHandlerConfig struct {
	Version   string
	BuildTime string

	// Providers reports circuit breaker state for upstream providers.
	Providers *resilience.Registry

	// Ready checks the database connection for the readiness probe.
	Ready ReadyFunc
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	providers *resilience.Registry
	ready     ReadyFunc
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(cfg OpsHandlerConfig) *OpsHandler {
	return &OpsHandler{
		version:   cfg.Version,
		buildTime: cfg.BuildTime,
		providers: cfg.Providers,
		ready:     cfg.Ready,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil {
		if err := h.ready(r.Context()); err != nil {
			health := models.Health{
				Status: models.HealthStatusFail,
				Time:   models.Timestamp(time.Now()),
				Details: map[string]interface{}{
					"error": err.Error(),
				},
			}
			response.JSON(w, r, http.StatusServiceUnavailable, health)
			return
		}
	}

	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}
	response.JSON(w, r, http.StatusOK, health)
}

// SystemStatus handles GET /v1/ops/status - provider and subsystem status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	status := models.SystemStatus{
		Status:     models.HealthStatusOK,
		Time:       models.Timestamp(time.Now()),
		Subsystems: []models.SubsystemStatus{h.databaseStatus(r.Context())},
	}

	if status.Subsystems[0].Status == models.HealthStatusFail {
		status.Status = models.HealthStatusFail
	}

	if h.providers != nil {
		all := h.providers.AllHealth()
		sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

		for _, p := range all {
			ps := providerStatus(p)
			if ps.Status != models.HealthStatusOK && status.Status == models.HealthStatusOK {
				status.Status = models.HealthStatusDegraded
			}
			status.Providers = append(status.Providers, ps)
		}
	}

	response.JSON(w, r, http.StatusOK, status)
}

func (h *OpsHandler) databaseStatus(ctx context.Context) models.SubsystemStatus {
	st := models.SubsystemStatus{Name: "database", Status: models.HealthStatusOK}
	if h.ready == nil {
		return st
	}
	if err := h.ready(ctx); err != nil {
		detail := err.Error()
		st.Status = models.HealthStatusFail
		st.Detail = &detail
	}
	return st
}

func providerStatus(p resilience.ProviderHealth) models.ProviderStatus {
	status := models.HealthStatusOK
	switch p.State {
	case gobreaker.StateOpen.String():
		status = models.HealthStatusFail
	case gobreaker.StateHalfOpen.String():
		status = models.HealthStatusDegraded
	}

	return models.ProviderStatus{
		Provider: p.Name,
		Status:   status,
		State:    p.State,
		Requests: p.Requests,
		Failures: p.Failures,
	}
}
