// Package subscription manages email subscriptions to city air quality alerts.
package subscription

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

// Subscription errors.
var (
	// ErrInvalidEmail indicates the email address failed validation.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrInvalidCity indicates the city name is empty or too long.
	ErrInvalidCity = errors.New("invalid city name")

	// ErrNotFound indicates no matching subscription exists.
	ErrNotFound = errors.New("subscription not found")
)

// maxCityLength matches the storage column size.
const maxCityLength = 100

// Subscription links an email address to a city. The (email, city) pair is
// unique; subscribing twice is a no-op.
type Subscription struct {
	Email     string
	City      string
	CreatedAt time.Time
}

// validate checks the email and city fields, returning the normalized values.
func validate(email, city string) (string, string, error) {
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return "", "", ErrInvalidEmail
	}

	city = strings.TrimSpace(city)
	if city == "" || len(city) > maxCityLength {
		return "", "", ErrInvalidCity
	}

	return email, city, nil
}
