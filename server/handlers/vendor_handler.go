package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/gorilla/mux"

	"truckmap/config"
	services "truckmap/service"
)

const (
	DATE_QUERY_ARG   = "date"
	LAT_QUERY_ARG    = "lat"
	LON_QUERY_ARG    = "lon"
	RADIUS_QUERY_ARG = "radius"
)

type VendorHandler struct {
	mapService *services.MapService
}

func NewVendorHandler(mapService *services.MapService) *VendorHandler {
	return &VendorHandler{mapService: mapService}
}

// GetVendors handles GET /v1/vendors?date=YYYY-MM-DD
func (h *VendorHandler) GetVendors(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get(DATE_QUERY_ARG)

	vendors, err := h.mapService.FetchVendors(date)
	if err != nil {
		log.Println("Error fetching vendors:", err)
		http.Error(w, "Failed to fetch vendors", http.StatusBadGateway)
		return
	}

	writeJSON(w, vendors)
}

// GetVendorsNearby handles GET /v1/vendors/nearby
// expects ?lat={latitude(float)}&lon={longitude(float)}&radius={radius_km(float)}
func (h *VendorHandler) GetVendorsNearby(w http.ResponseWriter, r *http.Request) {
	// 1) Parse query args
	lat, lon, radius, ok := h.parseArgs(r.URL.Query(), w)
	if !ok {
		return // error already written
	}

	// 2) Answer from the geo cache
	vendors, err := h.mapService.NearbyVendors(lat, lon, radius)
	if err != nil {
		log.Println("Error loading nearby vendors:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, vendors)
}

// GetVendorMap handles GET /v1/map?date=YYYY-MM-DD and serves a rendered
// HTML map of the day's vendors.
func (h *VendorHandler) GetVendorMap(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get(DATE_QUERY_ARG)

	outputPath := config.GetResourcePath("vendor_map.html")
	if err := h.mapService.RenderMap(date, outputPath); err != nil {
		log.Println("Error rendering vendor map:", err)
		http.Error(w, "Failed to render map", http.StatusBadGateway)
		return
	}

	html, err := os.ReadFile(outputPath)
	if err != nil {
		log.Println("Error reading rendered map:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(html)
}

func (h *VendorHandler) parseArgs(vals url.Values, w http.ResponseWriter) (
	lat, lon, radius float64, ok bool,
) {
	var err error

	lat, err = parseArgFloat64(vals, LAT_QUERY_ARG)
	if err != nil {
		http.Error(w, "Invalid argument "+LAT_QUERY_ARG, http.StatusBadRequest)
		return
	}
	lon, err = parseArgFloat64(vals, LON_QUERY_ARG)
	if err != nil {
		http.Error(w, "Invalid argument "+LON_QUERY_ARG, http.StatusBadRequest)
		return
	}
	radius, err = parseArgFloat64(vals, RADIUS_QUERY_ARG)
	if err != nil {
		http.Error(w, "Invalid argument "+RADIUS_QUERY_ARG, http.StatusBadRequest)
		return
	}
	ok = true
	return
}

func parseArgFloat64(vals url.Values, name string) (float64, error) {
	s := vals.Get(name)
	return strconv.ParseFloat(s, 64)
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Println("Error encoding response:", err)
	}
}

// Ping handles GET /ping
func (h *VendorHandler) Ping(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "pong"})
}

// GetUserVendors handles GET /v1/users/{email}/vendors
func (h *VendorHandler) GetUserVendors(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]
	if email == "" {
		http.Error(w, "Missing email", http.StatusBadRequest)
		return
	}

	vendors, err := h.mapService.UserVendors(email)
	if err != nil {
		log.Println("Error fetching user vendors:", err)
		http.Error(w, "Failed to fetch vendors", http.StatusBadGateway)
		return
	}

	writeJSON(w, vendors)
}
