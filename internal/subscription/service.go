package subscription

import "context"

// Service validates and stores subscriptions.
type Service struct {
	repo Repository
}

// NewService creates a new subscription service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Subscribe registers an email address for a city's alerts. Subscribing
// twice with the same pair is a no-op; the bool reports whether a new
// subscription was created.
func (s *Service) Subscribe(ctx context.Context, email, city string) (bool, error) {
	email, city, err := validate(email, city)
	if err != nil {
		return false, err
	}

	return s.repo.Upsert(ctx, email, city)
}

// Unsubscribe removes a subscription.
func (s *Service) Unsubscribe(ctx context.Context, email, city string) error {
	email, city, err := validate(email, city)
	if err != nil {
		return err
	}

	return s.repo.Delete(ctx, email, city)
}

// DistinctCities returns every city with at least one subscriber.
func (s *Service) DistinctCities(ctx context.Context) ([]string, error) {
	return s.repo.DistinctCities(ctx)
}

// EmailsForCity returns the subscriber email addresses for a city.
func (s *Service) EmailsForCity(ctx context.Context, city string) ([]string, error) {
	return s.repo.EmailsForCity(ctx, city)
}
