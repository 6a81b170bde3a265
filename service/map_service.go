package services

import (
	"log"
	"strings"

	"truckmap/api/vendorapi"
	"truckmap/dao/redis"
	"truckmap/models"
	"truckmap/util"
)

// MapService backs the vendor map view: day's vendors from the backend,
// nearby lookups from the geo cache, name suggestions for the search bar.
type MapService struct {
	vendorDao *redis.RedisVendorDAO
	vendorAPI vendorapi.VendorAPI
}

// NewMapService constructs a new MapService with its dependencies.
func NewMapService(
	vendorDao *redis.RedisVendorDAO,
	vendorAPI vendorapi.VendorAPI) *MapService {

	return &MapService{
		vendorDao: vendorDao,
		vendorAPI: vendorAPI,
	}
}

// FetchVendors returns the vendors active on the given date and refreshes
// the geo cache with them. Cache failures are logged, not surfaced.
func (ms *MapService) FetchVendors(date string) ([]models.Vendor, error) {
	vendors, err := ms.vendorAPI.GetVendors(date)
	if err != nil {
		return nil, err
	}

	for _, v := range vendors {
		if err := ms.vendorDao.UpsertVendor(v); err != nil {
			log.Printf("[MapService] Failed to cache vendor %s: %v", v.ID, err)
		}
	}
	return vendors, nil
}

// NearbyVendors answers from the geo cache without touching the backend.
func (ms *MapService) NearbyVendors(lat, lon, radius float64) ([]models.Vendor, error) {
	return ms.vendorDao.GetNearbyVendors(lat, lon, radius)
}

// UserVendors returns the vendors owned by the given account.
func (ms *MapService) UserVendors(email string) ([]models.Vendor, error) {
	return ms.vendorAPI.GetUserVendors(email)
}

// SearchVendors filters vendors whose name contains the term,
// case-insensitive. An empty term yields no suggestions.
func (ms *MapService) SearchVendors(term string, vendors []models.Vendor) []models.Vendor {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	var matches []models.Vendor
	for _, v := range vendors {
		if strings.Contains(strings.ToLower(v.Name), term) {
			matches = append(matches, v)
		}
	}
	return matches
}

// RenderMap writes an HTML map of the given date's vendors.
func (ms *MapService) RenderMap(date, outputPath string) error {
	vendors, err := ms.FetchVendors(date)
	if err != nil {
		return err
	}
	return util.PlotVendorsMap(vendors, outputPath)
}
