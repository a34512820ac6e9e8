package openmeteo_test

import (
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/cityair/cityair/internal/provider/resilience"
)

// newFastResilientClient builds a resilient client with millisecond backoff
// so retry paths run without real delays.
func newFastResilientClient(t *testing.T) *resilience.Client {
	t.Helper()

	cb := resilience.DefaultCircuitBreakerConfig("test-openmeteo")
	cb.ReadyToTrip = func(counts gobreaker.Counts) bool {
		return counts.Requests >= 100
	}

	return resilience.NewClient(resilience.ClientConfig{
		Name:           "test-openmeteo",
		Timeout:        5 * time.Second,
		MaxRetries:     5,
		BackoffBase:    time.Millisecond,
		MaxInterval:    5 * time.Millisecond,
		CircuitBreaker: &cb,
	})
}
