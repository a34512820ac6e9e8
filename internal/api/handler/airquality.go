package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/cityair/cityair/internal/api/models"
	"github.com/cityair/cityair/internal/api/response"
	"github.com/cityair/cityair/internal/geocode"
	"github.com/cityair/cityair/internal/lookup"
)

// LookupService resolves a city name to current air quality across its
// candidate locations.
type LookupService interface {
	Search(ctx context.Context, city string) ([]lookup.LocationAirQuality, error)
}

// AirQualityHandler handles interactive air quality lookups.
type AirQualityHandler struct {
	lookups LookupService
}

// NewAirQualityHandler creates a new AirQualityHandler.
func NewAirQualityHandler(lookups LookupService) *AirQualityHandler {
	return &AirQualityHandler{lookups: lookups}
}

// GetAirQuality handles GET /v1/air-quality?city=<name>.
func (h *AirQualityHandler) GetAirQuality(w http.ResponseWriter, r *http.Request) {
	city := strings.TrimSpace(r.URL.Query().Get("city"))
	if city == "" {
		response.BadRequest(w, r, "missing required query parameter", []models.FieldError{
			{Field: "city", Message: "city is required", Code: "required"},
		})
		return
	}

	locations, err := h.lookups.Search(r.Context(), city)
	if err != nil {
		if errors.Is(err, geocode.ErrUnavailable) {
			response.ServiceUnavailable(w, r, "geocoding service is unavailable")
			return
		}
		response.InternalError(w, r, "air quality lookup failed")
		return
	}

	if len(locations) == 0 {
		response.NotFound(w, r, "no air quality data found for city "+city)
		return
	}

	response.JSON(w, r, http.StatusOK, models.AirQualityResponse{
		City:      city,
		Locations: locations,
		Time:      models.Timestamp(time.Now()),
	})
}
