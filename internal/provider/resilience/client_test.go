package resilience_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cityair/cityair/internal/provider/resilience"
)

// lenientTrip keeps the circuit closed for the duration of a retry test.
func lenientTrip(counts gobreaker.Counts) bool {
	return counts.Requests >= 100 && float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
}

func fastConfig(name string) resilience.ClientConfig {
	cb := resilience.DefaultCircuitBreakerConfig(name)
	cb.ReadyToTrip = lenientTrip
	return resilience.ClientConfig{
		Name:           name,
		Timeout:        5 * time.Second,
		MaxRetries:     5,
		BackoffBase:    5 * time.Millisecond,
		MaxInterval:    20 * time.Millisecond,
		CircuitBreaker: &cb,
	}
}

func TestClient_SuccessfulRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	client := resilience.NewClient(resilience.DefaultClientConfig("test"))

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, http.NoBody)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestClient_RetryOn5xx(t *testing.T) {
	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := resilience.NewClient(fastConfig("test-retry"))

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, http.NoBody)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), attempts.Load(), "should have retried until success")
}

func TestClient_NoRetryOn4xx(t *testing.T) {
	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := resilience.NewClient(fastConfig("test-4xx"))

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, http.NoBody)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, int32(1), attempts.Load(), "client errors must not be retried")
}

func TestClient_RetryBudgetExhausted(t *testing.T) {
	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := resilience.NewClient(fastConfig("test-exhausted"))

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, http.NoBody)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	// Initial attempt + 5 retries.
	assert.Equal(t, int32(6), attempts.Load())
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestClient_CircuitBreakerTrips(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cb := resilience.DefaultCircuitBreakerConfig("test-trip")
	cb.ReadyToTrip = func(counts gobreaker.Counts) bool {
		return counts.TotalFailures >= 2
	}

	client := resilience.NewClient(resilience.ClientConfig{
		Name:           "test-trip",
		Timeout:        time.Second,
		MaxRetries:     1,
		BackoffBase:    time.Millisecond,
		CircuitBreaker: &cb,
	})

	// Drive enough failures to trip the circuit.
	for i := 0; i < 3; i++ {
		req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, http.NoBody)
		require.NoError(t, err)
		resp, _ := client.Do(req) //nolint:bodyclose // may be nil once the circuit opens
		if resp != nil {
			resp.Body.Close()
		}
	}

	assert.Equal(t, gobreaker.StateOpen, client.CircuitBreakerState())

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, http.NoBody)
	require.NoError(t, err)

	_, err = client.Do(req) //nolint:bodyclose // error path
	require.Error(t, err)
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
}

func TestClient_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cb := resilience.DefaultCircuitBreakerConfig("test-cancel")
	cb.ReadyToTrip = lenientTrip

	client := resilience.NewClient(resilience.ClientConfig{
		Name:           "test-cancel",
		Timeout:        time.Second,
		MaxRetries:     5,
		BackoffBase:    time.Second,
		CircuitBreaker: &cb,
	})

	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, http.NoBody)
	require.NoError(t, err)

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	resp, _ := client.Do(req) //nolint:bodyclose // may carry last 5xx response
	if resp != nil {
		resp.Body.Close()
	}
	assert.Less(t, time.Since(start), 3*time.Second, "cancellation should cut retries short")
}
