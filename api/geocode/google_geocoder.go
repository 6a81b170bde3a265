package geocode

import (
	"fmt"
	"net/url"

	"truckmap/api"
	"truckmap/config"
	"truckmap/models"
)

// GoogleGeocoder embeds the common HTTPClient and talks to the Google
// Geocoding API with the service's fixed language/region bias.
type GoogleGeocoder struct {
	*api.HTTPClient
	apiKey string
}

// NewGoogleGeocoder creates a new instance of GoogleGeocoder
func NewGoogleGeocoder(httpClient *api.HTTPClient, apiKey string) *GoogleGeocoder {
	return &GoogleGeocoder{
		HTTPClient: httpClient,
		apiKey:     apiKey,
	}
}

// Forward resolves an address to the coordinate of the first result.
func (g *GoogleGeocoder) Forward(address string) (float64, float64, error) {
	query := g.baseQuery()
	query.Set("address", address)

	response, err := g.geocode(query)
	if err != nil {
		return 0, 0, err
	}

	loc := response.Results[0].Geometry.Location
	return loc.Lat, loc.Lng, nil
}

// Reverse resolves a coordinate to the first result's formatted address.
func (g *GoogleGeocoder) Reverse(lat, lng float64) (string, error) {
	query := g.baseQuery()
	query.Set("latlng", fmt.Sprintf("%f,%f", lat, lng))

	response, err := g.geocode(query)
	if err != nil {
		return "", err
	}

	return response.Results[0].FormattedAddress, nil
}

func (g *GoogleGeocoder) geocode(query url.Values) (*models.GeocodeResponse, error) {
	var response models.GeocodeResponse
	if err := g.RequestWithQuery("GET", "/geocode/json", query, nil, nil, &response); err != nil {
		return nil, fmt.Errorf("geocode request failed: %v", err)
	}

	if response.Status == "ZERO_RESULTS" || len(response.Results) == 0 {
		return nil, ErrNoMatch
	}
	if response.Status != "OK" {
		return nil, fmt.Errorf("geocode provider returned status %s", response.Status)
	}
	return &response, nil
}

func (g *GoogleGeocoder) baseQuery() url.Values {
	query := url.Values{}
	query.Set("key", g.apiKey)
	query.Set("language", config.GEOCODE_LANGUAGE)
	query.Set("region", config.GEOCODE_REGION)
	return query
}
