package redis

import (
	"encoding/json"
	"fmt"
	"strings"

	"truckmap/db"
	"truckmap/models"
)

const VENDORS_GEO_KEY_V1 = "vendors_geo_v1"
const VENDORS_GEO_PLACE_MEMBER_FORMAT_V1 = "vendors_geo_place_v1:%s"

// RedisVendorDAO caches vendor records fetched from the remote Vendor API
// in a Redis geo index so the map view can answer nearby queries locally.
type RedisVendorDAO struct {
	client db.RedisClient
}

// NewRedisVendorDAO initializes a RedisVendorDAO with the Redis client.
func NewRedisVendorDAO(client db.RedisClient) *RedisVendorDAO {
	return &RedisVendorDAO{client: client}
}

// UpsertVendor stores the vendor as a geolocation with the vendor's JSON data.
func (dao *RedisVendorDAO) UpsertVendor(v models.Vendor) error {
	ctx := dao.client.GetContext()
	vendorKey := fmt.Sprintf(VENDORS_GEO_PLACE_MEMBER_FORMAT_V1, v.ID)
	return dao.client.AddLocationWithJSON(ctx, VENDORS_GEO_KEY_V1, vendorKey, v.Latitude, v.Longitude, v)
}

// GetNearbyVendors retrieves cached vendors within a given radius (in km).
func (dao *RedisVendorDAO) GetNearbyVendors(lat, lon, radius float64) ([]models.Vendor, error) {
	vendorsJSON, err := dao.client.GetLocationsWithinRadius(VENDORS_GEO_KEY_V1, lat, lon, radius)
	if err != nil {
		return nil, fmt.Errorf("[RedisVendorDAO] failed to get vendors: %v", err)
	}

	vendors := make([]models.Vendor, len(vendorsJSON))
	for i, vendorJSON := range vendorsJSON {
		if err := json.Unmarshal([]byte(vendorJSON), &vendors[i]); err != nil {
			return nil, fmt.Errorf("failed to unmarshal vendor JSON: %v", err)
		}
	}
	return vendors, nil
}

// ListCachedVendorIDs returns all vendor IDs present in the geo index.
func (dao *RedisVendorDAO) ListCachedVendorIDs() ([]string, error) {
	pattern := fmt.Sprintf(VENDORS_GEO_PLACE_MEMBER_FORMAT_V1, "*")
	keys, err := dao.client.Keys(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendor geo keys: %w", err)
	}
	ids := make([]string, 0, len(keys))
	prefix := fmt.Sprintf(VENDORS_GEO_PLACE_MEMBER_FORMAT_V1, "")
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, prefix))
	}
	return ids, nil
}

// DeleteCachedVendor drops a vendor's cached JSON record.
func (dao *RedisVendorDAO) DeleteCachedVendor(vendorID string) error {
	key := fmt.Sprintf(VENDORS_GEO_PLACE_MEMBER_FORMAT_V1, vendorID)
	if err := dao.client.Del(key); err != nil {
		return fmt.Errorf("failed to delete cached vendor %s: %w", key, err)
	}
	return nil
}
