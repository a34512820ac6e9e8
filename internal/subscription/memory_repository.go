package subscription

import (
	"context"
	"sort"
	"sync"
	"time"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu   sync.RWMutex
	subs map[string]Subscription // keyed by email + "\x00" + city
}

// NewInMemoryRepository creates a new in-memory subscription repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		subs: make(map[string]Subscription),
	}
}

func key(email, city string) string {
	return email + "\x00" + city
}

// Upsert stores a subscription unless the (email, city) pair already exists.
func (r *InMemoryRepository) Upsert(_ context.Context, email, city string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := key(email, city)
	if _, ok := r.subs[k]; ok {
		return false, nil
	}

	r.subs[k] = Subscription{
		Email:     email,
		City:      city,
		CreatedAt: time.Now(),
	}
	return true, nil
}

// DistinctCities returns every city with at least one subscriber, sorted.
func (r *InMemoryRepository) DistinctCities(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	var cities []string
	for _, s := range r.subs {
		if _, ok := seen[s.City]; !ok {
			seen[s.City] = struct{}{}
			cities = append(cities, s.City)
		}
	}

	sort.Strings(cities)
	return cities, nil
}

// EmailsForCity returns the subscriber email addresses for a city, oldest
// subscription first.
func (r *InMemoryRepository) EmailsForCity(_ context.Context, city string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matching []Subscription
	for _, s := range r.subs {
		if s.City == city {
			matching = append(matching, s)
		}
	}

	sort.Slice(matching, func(i, j int) bool {
		return matching[i].CreatedAt.Before(matching[j].CreatedAt)
	})

	emails := make([]string, 0, len(matching))
	for _, s := range matching {
		emails = append(emails, s.Email)
	}
	return emails, nil
}

// Delete removes a subscription.
func (r *InMemoryRepository) Delete(_ context.Context, email, city string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := key(email, city)
	if _, ok := r.subs[k]; !ok {
		return ErrNotFound
	}

	delete(r.subs, k)
	return nil
}
