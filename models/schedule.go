package models

import (
	"fmt"
	"strings"

	"truckmap/config"
)

// Schedule is one time-bounded location entry belonging to a Vendor.
// The ID is either a durable identifier issued by the backend or a
// locally generated "temp-" id for entries not yet persisted.
type Schedule struct {
	ID        string  `json:"id"`
	StartDate string  `json:"start_date"`
	StartTime string  `json:"start_time"`
	EndDate   string  `json:"end_date"`
	EndTime   string  `json:"end_time"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

// IsTemporary reports whether the schedule has not been persisted yet.
// Temporary ids must never be sent to the backend for deletion.
func (s *Schedule) IsTemporary() bool {
	return strings.HasPrefix(s.ID, config.TEMP_ID_PREFIX)
}

func (s *Schedule) ToString() string {
	return fmt.Sprintf("Schedule(id=%s, from=%s %s, to=%s %s, lat=%f, lon=%f)",
		s.ID, s.StartDate, s.StartTime, s.EndDate, s.EndTime, s.Latitude, s.Longitude)
}
