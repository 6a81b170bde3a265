package services

import (
	"log"
	"time"

	"truckmap/api/vendorapi"
	"truckmap/dao/redis"
)

// VendorsRefresherService periodically refreshes the vendor geo cache
// from the remote Vendor API so map queries stay warm.
type VendorsRefresherService struct {
	vendorDao *redis.RedisVendorDAO
	vendorAPI vendorapi.VendorAPI
}

// NewVendorsRefresherService constructs a new Refresher with dependencies.
func NewVendorsRefresherService(
	vendorDao *redis.RedisVendorDAO,
	vendorAPI vendorapi.VendorAPI,
) *VendorsRefresherService {
	return &VendorsRefresherService{
		vendorDao: vendorDao,
		vendorAPI: vendorAPI,
	}
}

// StartPeriodicJob launches the background loop at the given interval.
func (vr *VendorsRefresherService) StartPeriodicJob(interval time.Duration) {
	go vr.startPeriodicJob(interval)
}

func (vr *VendorsRefresherService) startPeriodicJob(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		log.Println("[VendorsRefresherService] Running periodic vendors refresher job.")
		if err := vr.RefreshVendorsData(); err != nil {
			log.Printf("[VendorsRefresherService] RefreshVendorsData returned error: %v", err)
		} else {
			log.Println("[VendorsRefresherService] RefreshVendorsData completed successfully.")
		}
	}
}

// RefreshVendorsData fetches today's vendors and upserts them into the
// geo cache.
func (vr *VendorsRefresherService) RefreshVendorsData() error {
	today := time.Now().Format("2006-01-02")
	log.Printf("[VendorsRefresherService] Fetching vendors for %s", today)

	vendors, err := vr.vendorAPI.GetVendors(today)
	if err != nil {
		log.Printf("[VendorsRefresherService] Failed to fetch vendors: %v", err)
		return err
	}

	log.Printf("[VendorsRefresherService] Upserting %d vendors", len(vendors))
	for _, v := range vendors {
		if err := vr.vendorDao.UpsertVendor(v); err != nil {
			log.Printf("[VendorsRefresherService] Upsert failed for %s: %v", v.ID, err)
		}
	}
	return nil
}
