package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the Open-Meteo geocoding API base URL.
	DefaultBaseURL = "https://geocoding-api.open-meteo.com/v1"

	// ProviderName identifies this provider.
	ProviderName = "open-meteo-geocoding"
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the geocoding client.
type ClientConfig struct {
	// BaseURL is the API base URL (defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the HTTP client to use. If nil, a plain client with
	// Timeout is used. Geocoding failures are rare and cheap to skip, so
	// no retrying client is installed by default.
	HTTPClient HTTPDoer

	// Timeout for requests when no HTTPClient is provided (default: 10s).
	Timeout time.Duration
}

// Client is an Open-Meteo geocoding API client.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
}

// NewClient creates a new geocoding client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

type searchResponse struct {
	Results []struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Name      string  `json:"name"`
		Country   string  `json:"country"`
	} `json:"results"`
}

// Search resolves a city name to up to count candidate locations, best match
// first. An empty slice with a nil error means the name is unresolvable;
// callers must treat that as a terminal outcome, not a failure.
func (c *Client) Search(ctx context.Context, name string, count int) ([]Candidate, error) {
	if count <= 0 {
		count = 1
	}

	params := url.Values{}
	params.Set("name", name)
	params.Set("count", strconv.Itoa(count))
	params.Set("language", "en")
	params.Set("format", "json")

	reqURL := c.baseURL + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	candidates := make([]Candidate, 0, len(sr.Results))
	for _, r := range sr.Results {
		country := r.Country
		if country == "" {
			country = "Unknown"
		}
		candidates = append(candidates, Candidate{
			Lat:     r.Latitude,
			Lon:     r.Longitude,
			Name:    r.Name,
			Country: country,
		})
	}

	return candidates, nil
}
