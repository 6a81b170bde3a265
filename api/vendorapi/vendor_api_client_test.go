package vendorapi

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"truckmap/api"
	"truckmap/models"
)

func TestGetVendors(t *testing.T) {
	wantResp := []models.Vendor{
		{ID: "vendor-001", Name: "阿宏鹽酥雞", Latitude: 24.9936, Longitude: 121.3010},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" {
			t.Errorf("expected GET; got %s", r.Method)
		}
		if r.URL.Path != "/vendors" {
			t.Errorf("expected path /vendors; got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("date"); got != "2024-06-01" {
			t.Errorf("date query = %q; want 2024-06-01", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(wantResp)
	}))
	defer srv.Close()

	client := NewVendorApiClient(api.NewHTTPClient(srv.URL))

	got, err := client.GetVendors("2024-06-01")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "vendor-001" {
		t.Errorf("GetVendors = %+v; want fixture vendor", got)
	}
}

func TestGetVendorSchedules(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/vendors/vendor-42/schedules" {
			t.Errorf("expected /vendors/vendor-42/schedules; got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]models.Schedule{{ID: "sched-1"}})
	}))
	defer srv.Close()

	client := NewVendorApiClient(api.NewHTTPClient(srv.URL))

	got, err := client.GetVendorSchedules("vendor-42")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "sched-1" {
		t.Errorf("GetVendorSchedules = %+v; want one schedule", got)
	}
}

func TestUpdateVendor_SendsFullRecord(t *testing.T) {
	var received map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "PUT" {
			t.Errorf("expected PUT; got %s", r.Method)
		}
		if r.URL.Path != "/vendors/vendor-7" {
			t.Errorf("expected /vendors/vendor-7; got %s", r.URL.Path)
		}
		b, _ := ioutil.ReadAll(r.Body)
		json.Unmarshal(b, &received)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewVendorApiClient(api.NewHTTPClient(srv.URL))

	vendor := models.Vendor{
		ID:   "vendor-7",
		Name: "Night Noodles",
		Schedules: []models.Schedule{
			{ID: "sched-9", Address: "somewhere"},
		},
	}
	if err := client.UpdateVendor(vendor, "owner@example.com"); err != nil {
		t.Fatal(err)
	}

	if received["email"] != "owner@example.com" {
		t.Errorf("email = %v; want owner@example.com", received["email"])
	}
	if received["name"] != "Night Noodles" {
		t.Errorf("name = %v; want Night Noodles", received["name"])
	}
	if _, ok := received["schedules"]; !ok {
		t.Error("expected full schedule list in the update payload")
	}
}

func TestDeleteSchedule(t *testing.T) {
	var calls int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Method != "DELETE" {
			t.Errorf("expected DELETE; got %s", r.Method)
		}
		if r.URL.Path != "/schedules/sched-13" {
			t.Errorf("expected /schedules/sched-13; got %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewVendorApiClient(api.NewHTTPClient(srv.URL))

	if err := client.DeleteSchedule("sched-13"); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("expected exactly one deletion request, got %d", calls)
	}
}

func TestDeleteSchedule_BackendFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message": "schedule is locked"}`))
	}))
	defer srv.Close()

	client := NewVendorApiClient(api.NewHTTPClient(srv.URL))

	err := client.DeleteSchedule("sched-13")
	if err == nil {
		t.Fatal("expected an error on backend failure")
	}
	apiErr, ok := err.(*api.APIError)
	if !ok {
		t.Fatalf("expected *api.APIError, got %T", err)
	}
	if apiErr.Message != "schedule is locked" {
		t.Errorf("message = %q; want the backend's message field", apiErr.Message)
	}
}

func TestExchangeLineCode(t *testing.T) {
	var received map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("expected POST; got %s", r.Method)
		}
		if r.URL.Path != "/line-callback" {
			t.Errorf("expected /line-callback; got %s", r.URL.Path)
		}
		b, _ := ioutil.ReadAll(r.Body)
		json.Unmarshal(b, &received)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"user": models.User{
				DisplayName: "Hong Chen",
				Email:       "hong.chen@example.com",
			},
		})
	}))
	defer srv.Close()

	client := NewVendorApiClient(api.NewHTTPClient(srv.URL))

	user, err := client.ExchangeLineCode("auth-code", "login")
	if err != nil {
		t.Fatal(err)
	}
	if received["code"] != "auth-code" || received["state"] != "login" {
		t.Errorf("exchange payload = %v; want code and state", received)
	}
	if user.Email != "hong.chen@example.com" {
		t.Errorf("user email = %q; want fixture email", user.Email)
	}
}

func TestExchangeLineCode_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "invalid state token",
		})
	}))
	defer srv.Close()

	client := NewVendorApiClient(api.NewHTTPClient(srv.URL))

	if _, err := client.ExchangeLineCode("auth-code", "tampered"); err == nil {
		t.Error("expected an error when the exchange is rejected")
	}
}
