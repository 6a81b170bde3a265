package geocode

import "errors"

// ErrNoMatch is returned when the provider resolves zero results. Views
// translate it to a fallback value instead of failing.
var ErrNoMatch = errors.New("geocode: no match")

// Geocoder defines the two translation operations against the external
// geocoding provider. Both are single-attempt; failures come back as
// ErrNoMatch or a provider error, never a panic into the view layer.
type Geocoder interface {
	// Forward resolves a free-text address to the first matching coordinate.
	Forward(address string) (lat float64, lng float64, err error)
	// Reverse resolves a coordinate to its human-readable address.
	Reverse(lat, lng float64) (string, error)
}
