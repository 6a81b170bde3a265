package geocode

import "fmt"

// GeocoderMock embeds canned translations for tests and non-prod runs.
type GeocoderMock struct {
	// Addresses maps "lat,lng" to a canned formatted address.
	Addresses map[string]string
	// Coordinates maps a free-text address to a canned coordinate.
	Coordinates map[string][2]float64
	// Fail forces every call to return a provider error.
	Fail bool

	ForwardCalls int
	ReverseCalls int
}

// NewGeocoderMock creates a new instance of GeocoderMock
func NewGeocoderMock() *GeocoderMock {
	return &GeocoderMock{
		Addresses:   make(map[string]string),
		Coordinates: make(map[string][2]float64),
	}
}

func (m *GeocoderMock) Forward(address string) (float64, float64, error) {
	m.ForwardCalls++
	if m.Fail {
		return 0, 0, fmt.Errorf("geocode provider unavailable")
	}
	coord, ok := m.Coordinates[address]
	if !ok {
		return 0, 0, ErrNoMatch
	}
	return coord[0], coord[1], nil
}

func (m *GeocoderMock) Reverse(lat, lng float64) (string, error) {
	m.ReverseCalls++
	if m.Fail {
		return "", fmt.Errorf("geocode provider unavailable")
	}
	address, ok := m.Addresses[coordKey(lat, lng)]
	if !ok {
		return "", ErrNoMatch
	}
	return address, nil
}

// SetAddress registers a canned reverse-geocoding answer.
func (m *GeocoderMock) SetAddress(lat, lng float64, address string) {
	m.Addresses[coordKey(lat, lng)] = address
}

func coordKey(lat, lng float64) string {
	return fmt.Sprintf("%.6f,%.6f", lat, lng)
}
