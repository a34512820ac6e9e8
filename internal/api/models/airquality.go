package models

import "github.com/cityair/cityair/internal/lookup"

// AirQualityResponse is the response for an interactive air quality lookup.
// Locations is empty when the city could not be resolved.
type AirQualityResponse struct {
	City      string                      `json:"city"`
	Locations []lookup.LocationAirQuality `json:"locations"`
	Time      Timestamp                   `json:"time"`
}
