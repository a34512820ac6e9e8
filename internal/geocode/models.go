// Package geocode resolves free-text place names to geographic coordinates.
package geocode

import "errors"

// Resolver errors.
var (
	// ErrBadResponse indicates the geocoding service returned a response
	// that could not be decoded.
	ErrBadResponse = errors.New("malformed geocoding response")

	// ErrUnavailable indicates the geocoding service could not be reached
	// or answered with a failure status.
	ErrUnavailable = errors.New("geocoding service unavailable")
)

// Candidate is one possible location for a city query.
type Candidate struct {
	Lat     float64
	Lon     float64
	Name    string
	Country string
}
