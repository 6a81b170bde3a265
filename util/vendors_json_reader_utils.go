package util

import (
	"encoding/json"
	"fmt"
	"io/ioutil"

	"truckmap/models"
)

// ReadVendorsFromJSON loads a slice of Vendors from JSON on disk.
func ReadVendorsFromJSON(filePath string) ([]models.Vendor, error) {
	data, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var vendors []models.Vendor
	if err := json.Unmarshal(data, &vendors); err != nil {
		return nil, fmt.Errorf("failed to unmarshal vendors: %w", err)
	}
	return vendors, nil
}

// ReadSchedulesFromJSON loads a slice of Schedules from JSON on disk.
func ReadSchedulesFromJSON(filePath string) ([]models.Schedule, error) {
	data, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var schedules []models.Schedule
	if err := json.Unmarshal(data, &schedules); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schedules: %w", err)
	}
	return schedules, nil
}

// ReadUserFromJSON loads a single User profile from JSON on disk.
func ReadUserFromJSON(filePath string) (*models.User, error) {
	data, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var u models.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &u, nil
}
