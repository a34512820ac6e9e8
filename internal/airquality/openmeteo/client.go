// Package openmeteo provides a client for the Open-Meteo air quality API.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cityair/cityair/internal/airquality"
	"github.com/cityair/cityair/internal/provider/resilience"
)

const (
	// DefaultBaseURL is the Open-Meteo air quality API base URL.
	DefaultBaseURL = "https://air-quality-api.open-meteo.com/v1"

	// ProviderName identifies this provider.
	ProviderName = "open-meteo-air-quality"

	// DefaultCacheTTL is how long cached responses stay valid.
	DefaultCacheTTL = 3600 * time.Second
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the Open-Meteo client.
type ClientConfig struct {
	// BaseURL is the API base URL (defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the HTTP client to use. If nil, a resilient client is
	// created with the provider retry policy (5 retries, 200ms doubling
	// backoff).
	HTTPClient HTTPDoer

	// CacheTTL is how long responses are cached, keyed by the full request
	// signature (default: DefaultCacheTTL). Entries are immutable once
	// written and expire without invalidation.
	CacheTTL time.Duration

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an Open-Meteo air quality API client with a time-bounded
// response cache.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
	cacheTTL   time.Duration
	logger     zerolog.Logger

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	reading   airquality.Reading
	expiresAt time.Time
}

// NewClient creates a new Open-Meteo air quality client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}

	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = DefaultCacheTTL
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		cacheTTL:   cacheTTL,
		logger:     cfg.Logger,
		cache:      make(map[string]cacheEntry),
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// The provider returns current values as a list ordered to match the
// requested variable list, not keyed by name.
type currentResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Current   struct {
		Time     int64      `json:"time"`
		Interval int        `json:"interval"`
		Values   []*float64 `json:"values"`
	} `json:"current"`
}

// Current fetches current values for the given variables at a location.
// Responses are cached for the configured TTL, keyed by endpoint,
// coordinates, and the requested variable list. Variables the provider
// omits come back as absent fields, never as an error.
func (c *Client) Current(ctx context.Context, lat, lon float64, variables []airquality.Variable) (airquality.Reading, error) {
	names := make([]string, len(variables))
	for i, v := range variables {
		names[i] = string(v)
	}

	reqURL := fmt.Sprintf("%s/air-quality?latitude=%.6f&longitude=%.6f&current=%s",
		c.baseURL, lat, lon, strings.Join(names, ","))

	if reading, ok := c.cached(reqURL); ok {
		c.logger.Debug().Str("url", reqURL).Msg("air quality cache hit")
		return reading, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return airquality.Reading{}, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return airquality.Reading{}, fmt.Errorf("%w: %v", airquality.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return airquality.Reading{}, fmt.Errorf("%w: status %d", airquality.ErrProviderUnavailable, resp.StatusCode)
	}

	var cr currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return airquality.Reading{}, fmt.Errorf("%w: %v", airquality.ErrBadResponse, err)
	}

	reading := zipReading(variables, cr.Current.Values)

	c.store(reqURL, reading)

	return reading, nil
}

// zipReading pairs the requested variable list with the positionally ordered
// value list at the provider boundary, so nothing downstream depends on the
// response ordering. Missing or null slots become absent fields.
func zipReading(variables []airquality.Variable, values []*float64) airquality.Reading {
	byName := make(map[airquality.Variable]*float64, len(variables))
	for i, v := range variables {
		if i < len(values) {
			byName[v] = values[i]
		}
	}

	return airquality.Reading{
		PM25:  byName[airquality.VariablePM25],
		PM10:  byName[airquality.VariablePM10],
		USAQI: byName[airquality.VariableUSAQI],
	}
}

func (c *Client) cached(key string) (airquality.Reading, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.cache[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return airquality.Reading{}, false
	}
	return entry.reading, true
}

func (c *Client) store(key string, reading airquality.Reading) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[key] = cacheEntry{
		reading:   reading,
		expiresAt: time.Now().Add(c.cacheTTL),
	}
}
