package vendorapi

import (
	"fmt"
	"net/url"

	"truckmap/api"
	"truckmap/models"
)

// VendorApiClient embeds the common HTTPClient
type VendorApiClient struct {
	*api.HTTPClient // Embed HTTPClient to reuse its methods and properties
}

// NewVendorApiClient creates a new instance of VendorApiClient
func NewVendorApiClient(httpClient *api.HTTPClient) *VendorApiClient {
	return &VendorApiClient{
		HTTPClient: httpClient,
	}
}

// GetVendors retrieves the vendors active on the given date (YYYY-MM-DD).
func (c *VendorApiClient) GetVendors(date string) ([]models.Vendor, error) {
	query := url.Values{}
	if date != "" {
		query.Set("date", date)
	}
	var response []models.Vendor
	err := c.RequestWithQuery("GET", "/vendors", query, nil, nil, &response)
	if err != nil {
		return nil, err
	}
	return response, nil
}

// GetVendorSchedules retrieves the schedule list for a vendor.
func (c *VendorApiClient) GetVendorSchedules(vendorID string) ([]models.Schedule, error) {
	var response []models.Schedule
	err := c.Request("GET", "/vendors/"+vendorID+"/schedules", nil, nil, &response)
	if err != nil {
		return nil, err
	}
	return response, nil
}

// GetUserVendors retrieves the vendors owned by the given account.
func (c *VendorApiClient) GetUserVendors(email string) ([]models.Vendor, error) {
	var response []models.Vendor
	err := c.Request("GET", "/users/"+url.PathEscape(email)+"/vendors", nil, nil, &response)
	if err != nil {
		return nil, err
	}
	return response, nil
}

// AddVendor creates a vendor and returns the backend's persisted record.
func (c *VendorApiClient) AddVendor(v models.Vendor) (*models.Vendor, error) {
	var response models.Vendor
	err := c.Request("POST", "/vendors", nil, v, &response)
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// UpdateVendor hands the full vendor record, schedules included, to the
// backend for persistence.
func (c *VendorApiClient) UpdateVendor(v models.Vendor, email string) error {
	payload := struct {
		models.Vendor
		Email string `json:"email"`
	}{Vendor: v, Email: email}
	return c.Request("PUT", "/vendors/"+v.ID, nil, payload, nil)
}

// DeleteVendor removes a vendor owned by the given account.
func (c *VendorApiClient) DeleteVendor(vendorID, email string) error {
	body := map[string]string{"email": email}
	return c.Request("DELETE", "/vendors/"+vendorID, nil, body, nil)
}

// DeleteSchedule removes a persisted schedule entry. Callers must branch
// on temporary ids before reaching this.
func (c *VendorApiClient) DeleteSchedule(scheduleID string) error {
	return c.Request("DELETE", "/schedules/"+scheduleID, nil, nil, nil)
}

// ExchangeLineCode trades the identity provider's authorization code and
// state token for the logged-in user's profile.
func (c *VendorApiClient) ExchangeLineCode(code, state string) (*models.User, error) {
	body := map[string]string{"code": code, "state": state}
	var response struct {
		Success bool        `json:"success"`
		Message string      `json:"message"`
		User    models.User `json:"user"`
	}
	if err := c.Request("POST", "/line-callback", nil, body, &response); err != nil {
		return nil, err
	}
	if !response.Success {
		return nil, fmt.Errorf("login exchange rejected: %s", response.Message)
	}
	return &response.User, nil
}
