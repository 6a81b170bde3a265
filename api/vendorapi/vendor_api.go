package vendorapi

import "truckmap/models"

// VendorAPI defines the interface for the remote vendor backend. All
// persistence and business rules live behind it; this service only calls.
type VendorAPI interface {
	GetVendors(date string) ([]models.Vendor, error)
	GetVendorSchedules(vendorID string) ([]models.Schedule, error)
	GetUserVendors(email string) ([]models.Vendor, error)
	AddVendor(v models.Vendor) (*models.Vendor, error)
	UpdateVendor(v models.Vendor, email string) error
	DeleteVendor(vendorID, email string) error
	DeleteSchedule(scheduleID string) error
	ExchangeLineCode(code, state string) (*models.User, error)
}
