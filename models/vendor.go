package models

import "fmt"

// Vendor represents a listed mobile business with its current location
// and schedule history. Owned by exactly one user account (by email).
type Vendor struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Link      string  `json:"link"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
	StartDate string  `json:"start_date,omitempty"`
	EndDate   string  `json:"end_date,omitempty"`
	UserName  string  `json:"user_name,omitempty"`
	UserEmail string  `json:"user_email,omitempty"`

	Schedules []Schedule `json:"schedules,omitempty"`
}

func (v *Vendor) ToString() string {
	return fmt.Sprintf("Vendor(id=%s, name=%s, lat=%f, lon=%f, schedules=%d)",
		v.ID, v.Name, v.Latitude, v.Longitude, len(v.Schedules))
}
