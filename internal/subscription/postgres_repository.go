package subscription

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL subscription repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Upsert stores a subscription unless the (email, city) pair already exists.
func (r *PostgresRepository) Upsert(ctx context.Context, email, city string) (bool, error) {
	query := `
		INSERT INTO subscriptions (email, city, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT (email, city) DO NOTHING
	`

	tag, err := r.pool.Exec(ctx, query, email, city)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

// DistinctCities returns every city with at least one subscriber.
func (r *PostgresRepository) DistinctCities(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT city FROM subscriptions ORDER BY city`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cities []string
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			return nil, err
		}
		cities = append(cities, city)
	}

	return cities, rows.Err()
}

// EmailsForCity returns the subscriber email addresses for a city.
func (r *PostgresRepository) EmailsForCity(ctx context.Context, city string) ([]string, error) {
	query := `SELECT email FROM subscriptions WHERE city = $1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, city)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}

	return emails, rows.Err()
}

// Delete removes a subscription.
func (r *PostgresRepository) Delete(ctx context.Context, email, city string) error {
	query := `DELETE FROM subscriptions WHERE email = $1 AND city = $2`

	tag, err := r.pool.Exec(ctx, query, email, city)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
