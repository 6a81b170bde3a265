package models

// Geocoding provider payloads. Explicit schemas so absent fields fail at
// the API boundary instead of propagating silently.

type GeocodeLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type GeocodeGeometry struct {
	Location GeocodeLocation `json:"location"`
}

type GeocodeResult struct {
	FormattedAddress string          `json:"formatted_address"`
	Geometry         GeocodeGeometry `json:"geometry"`
}

type GeocodeResponse struct {
	Status  string          `json:"status"`
	Results []GeocodeResult `json:"results"`
}
