// Package lookup serves interactive air quality queries: one city name in,
// current measurements for up to five matching locations out.
package lookup

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/cityair/cityair/internal/airquality"
	"github.com/cityair/cityair/internal/geocode"
)

// MaxLocations caps how many geocode candidates are queried per lookup.
const MaxLocations = 5

// Resolver resolves a city name to candidate locations.
type Resolver interface {
	Search(ctx context.Context, name string, count int) ([]geocode.Candidate, error)
}

// Fetcher retrieves current air quality values for coordinates.
type Fetcher interface {
	Current(ctx context.Context, lat, lon float64, variables []airquality.Variable) (airquality.Reading, error)
}

// LocationAirQuality is the measurement set for one resolved location.
type LocationAirQuality struct {
	Location     string                   `json:"location"`
	City         string                   `json:"city"`
	Country      string                   `json:"country"`
	Measurements []airquality.Measurement `json:"measurements"`
}

// ServiceConfig holds dependencies for the lookup service.
type ServiceConfig struct {
	Resolver Resolver
	Fetcher  Fetcher
	Logger   zerolog.Logger
}

// Service aggregates current air quality across a city's candidate locations.
type Service struct {
	resolver Resolver
	fetcher  Fetcher
	logger   zerolog.Logger
}

// NewService creates a new lookup service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		resolver: cfg.Resolver,
		fetcher:  cfg.Fetcher,
		logger:   cfg.Logger,
	}
}

var lookupVariables = []airquality.Variable{
	airquality.VariablePM25,
	airquality.VariablePM10,
	airquality.VariableUSAQI,
}

// Search resolves the city and fetches current measurements for each
// candidate location. Locations whose fetch fails or that have no usable
// data are dropped from the result; this is a best-effort aggregation, and
// only a geocoding failure aborts the whole lookup. An unresolvable city
// yields an empty (non-nil) result.
func (s *Service) Search(ctx context.Context, city string) ([]LocationAirQuality, error) {
	candidates, err := s.resolver.Search(ctx, city, MaxLocations)
	if err != nil {
		return nil, err
	}

	results := make([]LocationAirQuality, 0, len(candidates))

	for _, loc := range candidates {
		reading, err := s.fetcher.Current(ctx, loc.Lat, loc.Lon, lookupVariables)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("location", loc.Name).
				Msg("skipping location, fetch failed")
			continue
		}

		measurements := airquality.Normalize(reading)
		if len(measurements) == 0 {
			s.logger.Debug().
				Str("location", loc.Name).
				Msg("skipping location, no usable data")
			continue
		}

		results = append(results, LocationAirQuality{
			Location:     loc.Name,
			City:         city,
			Country:      loc.Country,
			Measurements: measurements,
		})
	}

	return results, nil
}
