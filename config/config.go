package config

import (
	"os"
	"path/filepath"
)

// Redis Config
const REDIS_DB_ADDRESS = "redis:6379"
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0

// Cross-window channel slots (shared key-value namespace)
const PENDING_EDIT_SLOT = "editingSchedule"
const RESOLVED_LOCATION_SLOT = "updatedLocation"
const SLOT_EVENTS_TOPIC_FORMAT = "slot_events_v1:%s"

// Vendor API
const VENDOR_API_ENDPOINT_BASE = "http://backend:5000/api"

// Google Geocoding API - region/language bias fixed to the home locale
const GEOCODE_ENDPOINT_BASE = "https://maps.googleapis.com/maps/api"
const GEOCODE_LANGUAGE = "zh-TW"
const GEOCODE_REGION = "tw"

// Default picker coordinate (Taoyuan) and map view center (Taipei)
const DEFAULT_CENTER_LAT = 24.896
const DEFAULT_CENTER_LNG = 121.327
const MAP_VIEW_CENTER_LAT = 25.0330
const MAP_VIEW_CENTER_LNG = 121.5654

// Schedule defaults
const TEMP_ID_PREFIX = "temp-"
const NEW_SCHEDULE_ADDRESS = "Select new address..."
const ADDRESS_NOT_FOUND = "Address not found"

// Vendors Refresher config
const VENDORS_REFRESHER_SCHEDULE_MINUTES = 30

// Session tokens
const SESSION_TOKEN_ISSUER = "truckmap"
const SESSION_TOKEN_TTL_HOURS = 24

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const VENDORS_RESOURCE = "vendors.json"
const SCHEDULES_RESOURCE = "schedules.json"
const USER_RESOURCE = "user.json"

// GeocodeAPIKey returns the Google Maps key, empty outside prod.
func GeocodeAPIKey() string {
	return os.Getenv("GOOGLE_MAPS_API_KEY")
}

// SessionSecret returns the HMAC key for session tokens.
func SessionSecret() []byte {
	if s := os.Getenv("SESSION_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("truckmap-dev-secret")
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	// Check if PROJECT_ROOT is set
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	// Default to the current working directory
	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resource_file string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resource_file)
}
