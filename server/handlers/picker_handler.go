package handlers

import (
	"encoding/json"
	"net/http"
	"sync"

	"truckmap/api/geocode"
	"truckmap/channel"
	services "truckmap/service"
)

// PickerHandler exposes the location picker over HTTP. Opening it starts
// a fresh picker seeded from the pending-edit slot, like opening the
// picker window does.
type PickerHandler struct {
	locationChannel *channel.LocationChannel
	geocoder        geocode.Geocoder

	mu     sync.Mutex
	picker *services.PickerService
}

func NewPickerHandler(
	locationChannel *channel.LocationChannel,
	geocoder geocode.Geocoder) *PickerHandler {

	return &PickerHandler{
		locationChannel: locationChannel,
		geocoder:        geocoder,
	}
}

type pickerState struct {
	CenterLatitude  float64 `json:"center_latitude"`
	CenterLongitude float64 `json:"center_longitude"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	Address         string  `json:"address"`
	SelectedAddress string  `json:"selected_address"`
	HasMarker       bool    `json:"has_marker"`
	Closed          bool    `json:"closed"`
}

func stateOf(picker *services.PickerService) pickerState {
	centerLat, centerLng := picker.Center()
	lat, lng := picker.Position()
	return pickerState{
		CenterLatitude:  centerLat,
		CenterLongitude: centerLng,
		Latitude:        lat,
		Longitude:       lng,
		Address:         picker.Address(),
		SelectedAddress: picker.SelectedAddress(),
		HasMarker:       picker.HasMarker(),
		Closed:          picker.IsClosed(),
	}
}

func (h *PickerHandler) session(w http.ResponseWriter) (*services.PickerService, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.picker == nil || h.picker.IsClosed() {
		http.Error(w, "No picker session is open", http.StatusConflict)
		return nil, false
	}
	return h.picker, true
}

// Open handles POST /v1/picker
func (h *PickerHandler) Open(w http.ResponseWriter, r *http.Request) {
	picker := services.NewPickerService(h.locationChannel, h.geocoder)

	h.mu.Lock()
	h.picker = picker
	h.mu.Unlock()

	writeJSON(w, stateOf(picker))
}

// GetState handles GET /v1/picker
func (h *PickerHandler) GetState(w http.ResponseWriter, r *http.Request) {
	picker, ok := h.session(w)
	if !ok {
		return
	}
	writeJSON(w, stateOf(picker))
}

type clickRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Click handles POST /v1/picker/click
func (h *PickerHandler) Click(w http.ResponseWriter, r *http.Request) {
	picker, ok := h.session(w)
	if !ok {
		return
	}

	var req clickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	picker.MapClick(req.Latitude, req.Longitude)
	writeJSON(w, stateOf(picker))
}

type searchRequest struct {
	Address string `json:"address"`
}

// Search handles POST /v1/picker/search
func (h *PickerHandler) Search(w http.ResponseWriter, r *http.Request) {
	picker, ok := h.session(w)
	if !ok {
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := picker.AddressSearch(req.Address); err != nil {
		http.Error(w, "Address lookup failed", http.StatusNotFound)
		return
	}
	writeJSON(w, stateOf(picker))
}

// Save handles POST /v1/picker/save: the picked location goes out on the
// channel and the session closes.
func (h *PickerHandler) Save(w http.ResponseWriter, r *http.Request) {
	picker, ok := h.session(w)
	if !ok {
		return
	}
	if err := picker.Save(); err != nil {
		http.Error(w, "Failed to publish location", http.StatusInternalServerError)
		return
	}
	writeJSON(w, stateOf(picker))
}

// Cancel handles POST /v1/picker/cancel
func (h *PickerHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	picker, ok := h.session(w)
	if !ok {
		return
	}
	picker.Cancel()
	w.WriteHeader(http.StatusNoContent)
}
