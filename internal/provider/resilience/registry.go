package resilience

import (
	"sync"

	"github.com/sony/gobreaker/v2"
)

// ProviderHealth reports the circuit state of a registered upstream provider.
type ProviderHealth struct {
	// Name is the provider identifier.
	Name string `json:"name"`

	// State is the current circuit breaker state as a string.
	State string `json:"state"`

	// Requests is the number of requests seen in the current counting window.
	Requests uint32 `json:"requests"`

	// Failures is the number of failed requests in the current counting window.
	Failures uint32 `json:"failures"`
}

// Healthy reports whether the provider circuit is closed.
func (h ProviderHealth) Healthy() bool {
	return h.State == gobreaker.StateClosed.String()
}

// Registry tracks resilient clients by provider name so operational endpoints
// can report upstream health.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{clients: make(map[string]*Client)}
}

// Register adds a provider client to the registry, replacing any previous
// client with the same name.
func (r *Registry) Register(name string, client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[name] = client
}

// Health returns the health of a single provider, or false if unknown.
func (r *Registry) Health(name string) (ProviderHealth, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.clients[name]
	if !ok {
		return ProviderHealth{}, false
	}
	return healthOf(name, c), true
}

// AllHealth returns the health of every registered provider.
func (r *Registry) AllHealth() []ProviderHealth {
	r.mu.RLock()
	defer r.mu.RUnlock()

	health := make([]ProviderHealth, 0, len(r.clients))
	for name, c := range r.clients {
		health = append(health, healthOf(name, c))
	}
	return health
}

func healthOf(name string, c *Client) ProviderHealth {
	counts := c.CircuitBreakerCounts()
	return ProviderHealth{
		Name:     name,
		State:    c.CircuitBreakerState().String(),
		Requests: counts.Requests,
		Failures: counts.TotalFailures,
	}
}
