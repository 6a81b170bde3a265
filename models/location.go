package models

// ResolvedLocation is the channel payload written by the Location Picker
// on save: the picked coordinate plus its human-readable address.
type ResolvedLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}
