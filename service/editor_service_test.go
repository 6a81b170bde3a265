package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"truckmap/api/vendorapi"
	"truckmap/channel"
	"truckmap/config"
	"truckmap/db"
	"truckmap/models"

	"github.com/stretchr/testify/assert"
)

func newTestEditor(t *testing.T) (*EditorService, *vendorapi.VendorApiClientMock, *db.MockRedisClient) {
	t.Helper()
	client := db.NewMockRedisClient(context.Background())
	vendorAPI := vendorapi.NewVendorApiClientMock()
	vendorAPI.SeedSchedules([]models.Schedule{
		{
			ID:        "sched-101",
			StartDate: "2024-06-01",
			StartTime: "11:00",
			EndDate:   "2024-06-01",
			EndTime:   "14:00",
			Latitude:  24.9936,
			Longitude: 121.3010,
			Address:   "桃園市中壢區中正路100號",
		},
	})

	editor := NewEditorService(vendorAPI, channel.NewLocationChannel(client), models.Vendor{
		ID:        "vendor-001",
		Name:      "阿宏鹽酥雞",
		UserEmail: "hong.chen@example.com",
	})
	t.Cleanup(editor.Close)
	return editor, vendorAPI, client
}

// waitFor polls until the condition holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("Timed out waiting for condition")
}

func TestEditorService_AddSchedule_Defaults(t *testing.T) {
	editor, _, _ := newTestEditor(t)

	added := editor.AddSchedule()

	today := time.Now().Format("2006-01-02")
	assert.True(t, added.IsTemporary(), "New schedules must carry a temporary id")
	assert.Equal(t, today, added.StartDate)
	assert.Equal(t, today, added.EndDate)
	assert.Equal(t, config.DEFAULT_CENTER_LAT, added.Latitude)
	assert.Equal(t, config.DEFAULT_CENTER_LNG, added.Longitude)
	assert.Equal(t, config.NEW_SCHEDULE_ADDRESS, added.Address)

	if len(editor.Schedules()) != 2 {
		t.Errorf("Expected 2 schedules after add, got %d", len(editor.Schedules()))
	}
}

func TestEditorService_AddSchedule_DistinctTempIDs(t *testing.T) {
	editor, _, _ := newTestEditor(t)

	first := editor.AddSchedule()
	second := editor.AddSchedule()

	if first.ID == second.ID {
		t.Errorf("Two added schedules share the temp id %s", first.ID)
	}
	if !strings.HasPrefix(first.ID, config.TEMP_ID_PREFIX) || !strings.HasPrefix(second.ID, config.TEMP_ID_PREFIX) {
		t.Errorf("Temp ids must carry the %q prefix, got %s and %s", config.TEMP_ID_PREFIX, first.ID, second.ID)
	}
}

func TestEditorService_DeleteSchedule_TemporaryNeverHitsBackend(t *testing.T) {
	editor, vendorAPI, _ := newTestEditor(t)

	added := editor.AddSchedule()
	editor.DeleteSchedule(added.ID)

	if len(vendorAPI.DeletedScheduleIDs) != 0 {
		t.Errorf("Deleting a temporary schedule issued %d network calls", len(vendorAPI.DeletedScheduleIDs))
	}
	for _, s := range editor.Schedules() {
		if s.ID == added.ID {
			t.Error("Temporary schedule was not removed from the list")
		}
	}
	if _, staged := editor.PendingDelete(); staged {
		t.Error("Temporary deletion must not stage a confirmation")
	}
}

func TestEditorService_DeleteSchedule_PersistedRequiresConfirmation(t *testing.T) {
	editor, vendorAPI, _ := newTestEditor(t)

	editor.DeleteSchedule("sched-101")

	// Nothing happens before confirmation.
	if len(vendorAPI.DeletedScheduleIDs) != 0 {
		t.Fatal("Deletion request issued before confirmation")
	}
	if len(editor.Schedules()) != 1 {
		t.Fatal("Entry removed before confirmation")
	}

	if err := editor.ConfirmDelete(); err != nil {
		t.Fatalf("ConfirmDelete failed: %v", err)
	}

	assert.Equal(t, []string{"sched-101"}, vendorAPI.DeletedScheduleIDs, "Expected exactly one deletion request")
	assert.Empty(t, editor.Schedules(), "Entry must be removed after a successful deletion")
}

func TestEditorService_ConfirmDelete_BackendFailureKeepsEntry(t *testing.T) {
	editor, vendorAPI, _ := newTestEditor(t)
	vendorAPI.FailDeleteSchedule = true

	editor.DeleteSchedule("sched-101")
	err := editor.ConfirmDelete()

	if err == nil {
		t.Fatal("Expected the backend failure to be reported")
	}
	if len(editor.Schedules()) != 1 {
		t.Error("Entry must remain in the list when deletion fails")
	}
}

func TestEditorService_CancelDelete(t *testing.T) {
	editor, vendorAPI, _ := newTestEditor(t)

	editor.DeleteSchedule("sched-101")
	editor.CancelDelete()

	if _, staged := editor.PendingDelete(); staged {
		t.Error("CancelDelete must drop the staged deletion")
	}
	if err := editor.ConfirmDelete(); err == nil {
		t.Error("ConfirmDelete after cancel must report nothing staged")
	}
	if len(vendorAPI.DeletedScheduleIDs) != 0 {
		t.Error("No deletion request may be issued after cancel")
	}
}

func TestEditorService_ChangeLocation_PublishesPendingEdit(t *testing.T) {
	editor, _, client := newTestEditor(t)

	if err := editor.EditSchedule("sched-101"); err != nil {
		t.Fatal(err)
	}
	if err := editor.ChangeLocation(); err != nil {
		t.Fatal(err)
	}

	pending, ok := channel.NewLocationChannel(client).ReadPendingEdit()
	if !ok {
		t.Fatal("Expected the pending edit to be published")
	}
	assert.Equal(t, "sched-101", pending.ID)
	assert.Equal(t, 24.9936, pending.Latitude)
}

func TestEditorService_ChangeLocation_WithoutEditing(t *testing.T) {
	editor, _, _ := newTestEditor(t)

	if err := editor.ChangeLocation(); err == nil {
		t.Error("ChangeLocation without an entry in editing must fail")
	}
}

func TestEditorService_ResolvedLocationMergesIntoEditingEntry(t *testing.T) {
	editor, _, client := newTestEditor(t)
	pickerSide := channel.NewLocationChannel(client)

	if err := editor.EditSchedule("sched-101"); err != nil {
		t.Fatal(err)
	}
	if err := editor.ChangeLocation(); err != nil {
		t.Fatal(err)
	}

	resolved := models.ResolvedLocation{
		Latitude:  25.0375,
		Longitude: 121.5637,
		Address:   "台北市信義區市府路1號",
	}
	if err := pickerSide.PublishResolvedLocation(resolved); err != nil {
		t.Fatal(err)
	}

	waitFor(t, func() bool {
		editing, ok := editor.Editing()
		return ok && editing.Address == resolved.Address
	})

	editing, _ := editor.Editing()
	assert.Equal(t, resolved.Latitude, editing.Latitude)
	assert.Equal(t, resolved.Longitude, editing.Longitude)

	// The consumed slot is cleared.
	if _, err := client.Get(config.RESOLVED_LOCATION_SLOT); err == nil {
		t.Error("Resolved-location slot must be cleared after the merge")
	}

	// The merge stays in the editing entry until SaveSchedule commits it.
	for _, s := range editor.Schedules() {
		if s.ID == "sched-101" && s.Address == resolved.Address {
			t.Error("Merge must not touch the list before SaveSchedule")
		}
	}
	if err := editor.SaveSchedule(); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, resolved.Address, editor.Schedules()[0].Address)
}

func TestEditorService_ResolvedLocationUpdatesVendorCoordinate(t *testing.T) {
	editor, vendorAPI, client := newTestEditor(t)
	pickerSide := channel.NewLocationChannel(client)

	if err := editor.EditSchedule("sched-101"); err != nil {
		t.Fatal(err)
	}
	if err := editor.ChangeLocation(); err != nil {
		t.Fatal(err)
	}

	resolved := models.ResolvedLocation{
		Latitude:  25.0478,
		Longitude: 121.5170,
		Address:   "台北市中正區忠孝西路一段49號",
	}
	if err := pickerSide.PublishResolvedLocation(resolved); err != nil {
		t.Fatal(err)
	}

	// The picked coordinate is lifted onto the vendor record as well.
	waitFor(t, func() bool {
		return editor.Vendor().Latitude == resolved.Latitude
	})
	assert.Equal(t, resolved.Longitude, editor.Vendor().Longitude)

	if err := editor.SaveVendor("阿宏鹽酥雞", "", "hong.chen@example.com"); err != nil {
		t.Fatal(err)
	}
	saved := vendorAPI.UpdatedVendors[0]
	assert.Equal(t, resolved.Latitude, saved.Latitude)
	assert.Equal(t, resolved.Longitude, saved.Longitude)
}

func TestEditorService_StaleResolvedLocationIsDiscarded(t *testing.T) {
	editor, _, client := newTestEditor(t)
	pickerSide := channel.NewLocationChannel(client)

	if err := editor.EditSchedule("sched-101"); err != nil {
		t.Fatal(err)
	}
	if err := editor.ChangeLocation(); err != nil {
		t.Fatal(err)
	}
	// The editing session ends before the picker reports back.
	editor.CancelEdit()

	if err := pickerSide.PublishResolvedLocation(models.ResolvedLocation{
		Latitude:  1,
		Longitude: 2,
		Address:   "stale",
	}); err != nil {
		t.Fatal(err)
	}

	// The slot is still cleared even though the update was discarded.
	waitFor(t, func() bool {
		_, err := client.Get(config.RESOLVED_LOCATION_SLOT)
		return err != nil
	})

	for _, s := range editor.Schedules() {
		if s.Address == "stale" {
			t.Error("A stale resolved location must not mutate any schedule")
		}
	}
}

func TestEditorService_SaveVendor_SendsFullScheduleList(t *testing.T) {
	editor, vendorAPI, _ := newTestEditor(t)

	editor.AddSchedule()
	if err := editor.SaveVendor("阿宏鹽酥雞", "https://order.example.com", "hong.chen@example.com"); err != nil {
		t.Fatal(err)
	}

	if len(vendorAPI.UpdatedVendors) != 1 {
		t.Fatalf("Expected one vendor update, got %d", len(vendorAPI.UpdatedVendors))
	}
	saved := vendorAPI.UpdatedVendors[0]
	assert.Equal(t, "阿宏鹽酥雞", saved.Name)
	assert.Len(t, saved.Schedules, 2, "The full schedule list must be handed to the backend")
	assert.True(t, editor.IsClosed(), "Saving the vendor closes the editing surface")
}

func TestEditorService_SaveSchedule_WithoutEditing(t *testing.T) {
	editor, _, _ := newTestEditor(t)

	if err := editor.SaveSchedule(); err == nil {
		t.Error("SaveSchedule without an entry in editing must fail")
	}
}
