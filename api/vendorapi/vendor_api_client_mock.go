package vendorapi

import (
	"fmt"
	"sync"

	"truckmap/config"
	"truckmap/models"
	"truckmap/util"
)

// VendorApiClientMock serves fixture data from resources/ and tracks
// mutations in memory so tests can assert on issued calls.
type VendorApiClientMock struct {
	mu        sync.Mutex
	vendors   []models.Vendor
	schedules []models.Schedule
	user      *models.User

	DeletedScheduleIDs []string
	DeletedVendorIDs   []string
	UpdatedVendors     []models.Vendor
	// FailDeleteSchedule forces DeleteSchedule to report a backend error.
	FailDeleteSchedule bool
}

// NewVendorApiClientMock creates a new instance of VendorApiClientMock
func NewVendorApiClientMock() *VendorApiClientMock {
	return &VendorApiClientMock{}
}

func (c *VendorApiClientMock) loadFixtures() error {
	if c.vendors != nil {
		return nil
	}
	vendors, err := util.ReadVendorsFromJSON(config.GetResourcePath(config.VENDORS_RESOURCE))
	if err != nil {
		return err
	}
	schedules, err := util.ReadSchedulesFromJSON(config.GetResourcePath(config.SCHEDULES_RESOURCE))
	if err != nil {
		return err
	}
	user, err := util.ReadUserFromJSON(config.GetResourcePath(config.USER_RESOURCE))
	if err != nil {
		return err
	}
	c.vendors = vendors
	c.schedules = schedules
	c.user = user
	return nil
}

// SeedSchedules replaces the fixture schedules, for tests that want a
// known list without touching resources/.
func (c *VendorApiClientMock) SeedSchedules(schedules []models.Schedule) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.schedules == nil {
		c.vendors = []models.Vendor{}
		c.user = &models.User{}
	}
	c.schedules = schedules
}

func (c *VendorApiClientMock) GetVendors(date string) ([]models.Vendor, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.loadFixtures(); err != nil {
		return nil, err
	}
	return append([]models.Vendor{}, c.vendors...), nil
}

func (c *VendorApiClientMock) GetVendorSchedules(vendorID string) ([]models.Schedule, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.loadFixtures(); err != nil {
		return nil, err
	}
	return append([]models.Schedule{}, c.schedules...), nil
}

func (c *VendorApiClientMock) GetUserVendors(email string) ([]models.Vendor, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.loadFixtures(); err != nil {
		return nil, err
	}
	var owned []models.Vendor
	for _, v := range c.vendors {
		if v.UserEmail == email {
			owned = append(owned, v)
		}
	}
	return owned, nil
}

func (c *VendorApiClientMock) AddVendor(v models.Vendor) (*models.Vendor, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.loadFixtures(); err != nil {
		return nil, err
	}
	v.ID = fmt.Sprintf("vendor-%03d", len(c.vendors)+1)
	c.vendors = append(c.vendors, v)
	return &v, nil
}

func (c *VendorApiClientMock) UpdateVendor(v models.Vendor, email string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.UpdatedVendors = append(c.UpdatedVendors, v)
	return nil
}

func (c *VendorApiClientMock) DeleteVendor(vendorID, email string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.DeletedVendorIDs = append(c.DeletedVendorIDs, vendorID)
	return nil
}

func (c *VendorApiClientMock) DeleteSchedule(scheduleID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.DeletedScheduleIDs = append(c.DeletedScheduleIDs, scheduleID)
	if c.FailDeleteSchedule {
		return fmt.Errorf("backend rejected schedule deletion")
	}
	return nil
}

func (c *VendorApiClientMock) ExchangeLineCode(code, state string) (*models.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.loadFixtures(); err != nil {
		return nil, err
	}
	if code == "" {
		return nil, fmt.Errorf("login exchange rejected: missing code")
	}
	u := *c.user
	return &u, nil
}
