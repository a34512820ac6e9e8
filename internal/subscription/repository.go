package subscription

import "context"

// Repository defines storage operations for subscriptions.
type Repository interface {
	// Upsert stores a subscription if the (email, city) pair does not
	// already exist. Returns true if a new subscription was created.
	Upsert(ctx context.Context, email, city string) (bool, error)

	// DistinctCities returns every city with at least one subscriber.
	DistinctCities(ctx context.Context) ([]string, error)

	// EmailsForCity returns the subscriber email addresses for a city.
	EmailsForCity(ctx context.Context, city string) ([]string, error)

	// Delete removes a subscription. Returns ErrNotFound if absent.
	Delete(ctx context.Context, email, city string) error
}
