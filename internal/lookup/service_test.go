package lookup_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cityair/cityair/internal/airquality"
	"github.com/cityair/cityair/internal/geocode"
	"github.com/cityair/cityair/internal/lookup"
)

func f(v float64) *float64 { return &v }

type mockResolver struct {
	candidates []geocode.Candidate
	err        error
	gotCount   int
}

func (m *mockResolver) Search(_ context.Context, _ string, count int) ([]geocode.Candidate, error) {
	m.gotCount = count
	return m.candidates, m.err
}

type mockFetcher struct {
	readings map[float64]airquality.Reading
	errs     map[float64]error
}

func (m *mockFetcher) Current(_ context.Context, lat, _ float64, _ []airquality.Variable) (airquality.Reading, error) {
	if err := m.errs[lat]; err != nil {
		return airquality.Reading{}, err
	}
	return m.readings[lat], nil
}

func newService(resolver *mockResolver, fetcher *mockFetcher) *lookup.Service {
	return lookup.NewService(lookup.ServiceConfig{
		Resolver: resolver,
		Fetcher:  fetcher,
		Logger:   zerolog.New(io.Discard),
	})
}

func TestService_Search(t *testing.T) {
	resolver := &mockResolver{candidates: []geocode.Candidate{
		{Lat: 51.5, Lon: -0.1, Name: "London", Country: "United Kingdom"},
		{Lat: 42.9, Lon: -81.2, Name: "London", Country: "Canada"},
	}}
	fetcher := &mockFetcher{readings: map[float64]airquality.Reading{
		51.5: {PM25: f(40.23), PM10: f(18.0), USAQI: f(95.4)},
		42.9: {USAQI: f(40)},
	}}

	results, err := newService(resolver, fetcher).Search(context.Background(), "London")
	require.NoError(t, err)
	assert.Equal(t, lookup.MaxLocations, resolver.gotCount)

	require.Len(t, results, 2)
	assert.Equal(t, "United Kingdom", results[0].Country)
	assert.Equal(t, "London", results[0].City)
	require.Len(t, results[0].Measurements, 3)
	assert.Equal(t, airquality.Measurement{Parameter: "pm25", Value: 40.2, Unit: "µg/m³"}, results[0].Measurements[0])

	require.Len(t, results[1].Measurements, 1)
	assert.Equal(t, "us_aqi", results[1].Measurements[0].Parameter)
}

func TestService_Search_FailedLocationDropped(t *testing.T) {
	resolver := &mockResolver{candidates: []geocode.Candidate{
		{Lat: 1, Name: "A", Country: "X"},
		{Lat: 2, Name: "B", Country: "Y"},
	}}
	fetcher := &mockFetcher{
		readings: map[float64]airquality.Reading{2: {USAQI: f(30)}},
		errs:     map[float64]error{1: errors.New("provider down")},
	}

	results, err := newService(resolver, fetcher).Search(context.Background(), "Somewhere")
	require.NoError(t, err, "per-location failures never abort the lookup")
	require.Len(t, results, 1)
	assert.Equal(t, "B", results[0].Location)
}

func TestService_Search_EmptyReadingDropped(t *testing.T) {
	resolver := &mockResolver{candidates: []geocode.Candidate{{Lat: 1, Name: "A", Country: "X"}}}
	fetcher := &mockFetcher{readings: map[float64]airquality.Reading{1: {}}}

	results, err := newService(resolver, fetcher).Search(context.Background(), "Somewhere")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestService_Search_Unresolvable(t *testing.T) {
	results, err := newService(&mockResolver{}, &mockFetcher{}).Search(context.Background(), "Atlantis")
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestService_Search_GeocodeErrorPropagates(t *testing.T) {
	resolver := &mockResolver{err: geocode.ErrUnavailable}

	_, err := newService(resolver, &mockFetcher{}).Search(context.Background(), "London")
	require.Error(t, err)
	assert.ErrorIs(t, err, geocode.ErrUnavailable)
}
