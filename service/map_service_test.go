package services

import (
	"context"
	"testing"

	"truckmap/api/vendorapi"
	redisdao "truckmap/dao/redis"
	"truckmap/db"
	"truckmap/models"
)

func TestMapService_SearchVendors(t *testing.T) {
	ms := NewMapService(nil, nil)

	vendors := []models.Vendor{
		{ID: "1", Name: "阿宏鹽酥雞"},
		{ID: "2", Name: "Taco Truck Taipei"},
		{ID: "3", Name: "Night Noodles"},
	}

	tests := []struct {
		name string
		term string
		want int
	}{
		{"case-insensitive match", "taco", 1},
		{"substring match", "T", 2},
		{"no match", "pizza", 0},
		{"empty term yields no suggestions", "", 0},
		{"whitespace only", "   ", 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := ms.SearchVendors(test.term, vendors)
			if len(got) != test.want {
				t.Errorf("SearchVendors(%q) returned %d vendors, want %d", test.term, len(got), test.want)
			}
		})
	}
}

func TestMapService_FetchVendorsFillsCache(t *testing.T) {
	client := db.NewMockRedisClient(context.Background())
	dao := redisdao.NewRedisVendorDAO(client)
	vendorAPI := vendorapi.NewVendorApiClientMock()
	vendorAPI.SeedSchedules(nil)

	// Seed the mock with one vendor through its create path.
	if _, err := vendorAPI.AddVendor(models.Vendor{Name: "Night Noodles", Latitude: 25.0, Longitude: 121.5}); err != nil {
		t.Fatal(err)
	}

	ms := NewMapService(dao, vendorAPI)

	vendors, err := ms.FetchVendors("2024-06-01")
	if err != nil {
		t.Fatalf("FetchVendors failed: %v", err)
	}
	if len(vendors) != 1 {
		t.Fatalf("Expected 1 vendor, got %d", len(vendors))
	}

	cached, err := ms.NearbyVendors(25.0, 121.5, 100)
	if err != nil {
		t.Fatalf("NearbyVendors failed: %v", err)
	}
	if len(cached) != 1 {
		t.Errorf("Expected the fetched vendor in the geo cache, got %d entries", len(cached))
	}
}
