package services

import (
	"log"

	"truckmap/api/geocode"
	"truckmap/channel"
	"truckmap/config"
	"truckmap/models"
)

// PickerService lets the user pick a geographic point and obtain its
// address, independent of how it was invoked. It runs in its own process;
// the only tie back to the editor is the LocationChannel. Nothing here
// persists to the backend.
type PickerService struct {
	channel  *channel.LocationChannel
	geocoder geocode.Geocoder

	latitude  float64
	longitude float64
	centerLat float64
	centerLng float64
	address   string
	selected  string
	hasMarker bool
	closed    bool
}

// NewPickerService seeds the picker from the pending-edit slot when one is
// present, otherwise from the default coordinate. The seed coordinate is
// reverse-geocoded so the address field starts filled in.
func NewPickerService(locationChannel *channel.LocationChannel, geocoder geocode.Geocoder) *PickerService {
	picker := &PickerService{
		channel:   locationChannel,
		geocoder:  geocoder,
		latitude:  config.DEFAULT_CENTER_LAT,
		longitude: config.DEFAULT_CENTER_LNG,
	}

	if pending, ok := locationChannel.ReadPendingEdit(); ok && (pending.Latitude != 0 || pending.Longitude != 0) {
		picker.latitude = pending.Latitude
		picker.longitude = pending.Longitude
	}
	picker.centerLat = picker.latitude
	picker.centerLng = picker.longitude
	picker.address = picker.resolveAddress(picker.latitude, picker.longitude)
	return picker
}

// MapClick drops the marker at the clicked point and reverse-geocodes it.
// A failed lookup shows the fallback string; the click never fails.
func (ps *PickerService) MapClick(lat, lng float64) {
	ps.latitude = lat
	ps.longitude = lng
	ps.hasMarker = true
	address := ps.resolveAddress(lat, lng)
	ps.address = address
	ps.selected = address
}

// AddressSearch forward-geocodes the typed address. On success the map
// recenters and the marker moves to the first result; on failure the
// error is surfaced and the picker state is left untouched.
func (ps *PickerService) AddressSearch(address string) error {
	lat, lng, err := ps.geocoder.Forward(address)
	if err != nil {
		log.Printf("[PickerService] Failed to geocode %q: %v", address, err)
		return err
	}

	ps.latitude = lat
	ps.longitude = lng
	ps.centerLat = lat
	ps.centerLng = lng
	ps.hasMarker = true
	ps.address = address
	ps.selected = address
	return nil
}

// Save publishes the resolved location to the channel and closes the
// picker.
func (ps *PickerService) Save() error {
	err := ps.channel.PublishResolvedLocation(models.ResolvedLocation{
		Latitude:  ps.latitude,
		Longitude: ps.longitude,
		Address:   ps.address,
	})
	if err != nil {
		return err
	}
	ps.closed = true
	return nil
}

// Cancel closes the picker without publishing. No cleanup signal is sent
// back to the editor.
func (ps *PickerService) Cancel() {
	ps.closed = true
}

func (ps *PickerService) resolveAddress(lat, lng float64) string {
	address, err := ps.geocoder.Reverse(lat, lng)
	if err != nil {
		log.Printf("[PickerService] Failed to resolve address for (%f, %f): %v", lat, lng, err)
		return config.ADDRESS_NOT_FOUND
	}
	return address
}

// Center returns the current map center.
func (ps *PickerService) Center() (float64, float64) {
	return ps.centerLat, ps.centerLng
}

// Position returns the current marker coordinate.
func (ps *PickerService) Position() (float64, float64) {
	return ps.latitude, ps.longitude
}

// Address returns the address field contents.
func (ps *PickerService) Address() string {
	return ps.address
}

// SelectedAddress returns the last confirmed selection, empty until the
// user clicks the map or searches.
func (ps *PickerService) SelectedAddress() string {
	return ps.selected
}

// HasMarker reports whether a point has been selected.
func (ps *PickerService) HasMarker() bool {
	return ps.hasMarker
}

// IsClosed reports whether the picker context has been closed.
func (ps *PickerService) IsClosed() bool {
	return ps.closed
}
