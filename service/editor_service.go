package services

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"truckmap/api/vendorapi"
	"truckmap/channel"
	"truckmap/config"
	"truckmap/models"
)

var tempIDSeq int64

// newTempID generates a local identifier for a schedule that has not been
// persisted yet. The prefix marks it so deletion never reaches the backend.
func newTempID() string {
	seq := atomic.AddInt64(&tempIDSeq, 1)
	return fmt.Sprintf("%s%d-%d", config.TEMP_ID_PREFIX, time.Now().UnixMilli(), seq)
}

// EditorService owns a vendor's name, order link and full schedule list as
// one editable unit. At most one schedule is in the editing state at a
// time. Location changes are delegated to a picker running in another
// process; results come back asynchronously through the LocationChannel,
// so all state is mutex-guarded.
type EditorService struct {
	vendorAPI vendorapi.VendorAPI
	channel   *channel.LocationChannel

	mu            sync.Mutex
	vendor        models.Vendor
	schedules     []models.Schedule
	editing       *models.Schedule
	pendingDelete string
	closed        bool

	watching  bool
	stopWatch func() error
	watchDone chan struct{}
}

// NewEditorService constructs an editor for the given vendor and loads its
// schedule list from the backend. A failed load leaves the list empty
// rather than blocking the editing surface.
func NewEditorService(vendorAPI vendorapi.VendorAPI, locationChannel *channel.LocationChannel, vendor models.Vendor) *EditorService {
	editor := &EditorService{
		vendorAPI: vendorAPI,
		channel:   locationChannel,
		vendor:    vendor,
	}

	schedules, err := vendorAPI.GetVendorSchedules(vendor.ID)
	if err != nil {
		log.Printf("[EditorService] Failed to fetch schedules for vendor %s: %v", vendor.ID, err)
	} else {
		editor.schedules = schedules
	}
	return editor
}

// AddSchedule appends a new schedule with a temporary identifier, today's
// date as both start and end, the current time as the window, and the
// default coordinate. The backend is not contacted.
func (es *EditorService) AddSchedule() models.Schedule {
	now := time.Now()
	schedule := models.Schedule{
		ID:        newTempID(),
		StartDate: now.Format("2006-01-02"),
		StartTime: now.Format("15:04"),
		EndDate:   now.Format("2006-01-02"),
		EndTime:   now.Format("15:04"),
		Latitude:  config.DEFAULT_CENTER_LAT,
		Longitude: config.DEFAULT_CENTER_LNG,
		Address:   config.NEW_SCHEDULE_ADDRESS,
	}

	es.mu.Lock()
	defer es.mu.Unlock()
	es.schedules = append(es.schedules, schedule)
	return schedule
}

// EditSchedule transitions the entry with the given id into editing,
// replacing any entry that was being edited before.
func (es *EditorService) EditSchedule(id string) error {
	es.mu.Lock()
	defer es.mu.Unlock()
	for _, s := range es.schedules {
		if s.ID == id {
			entry := s
			es.editing = &entry
			return nil
		}
	}
	return fmt.Errorf("no schedule with id %s", id)
}

// Editing returns a copy of the entry currently being edited, if any.
func (es *EditorService) Editing() (models.Schedule, bool) {
	es.mu.Lock()
	defer es.mu.Unlock()
	if es.editing == nil {
		return models.Schedule{}, false
	}
	return *es.editing, true
}

// UpdateEditing applies field changes to the entry being edited without
// committing them back to the list.
func (es *EditorService) UpdateEditing(update func(*models.Schedule)) error {
	es.mu.Lock()
	defer es.mu.Unlock()
	if es.editing == nil {
		return fmt.Errorf("no schedule is being edited")
	}
	update(es.editing)
	return nil
}

// SaveSchedule commits the in-memory edits of the editing entry back into
// the schedule list and returns to viewing.
func (es *EditorService) SaveSchedule() error {
	es.mu.Lock()
	defer es.mu.Unlock()
	if es.editing == nil {
		return fmt.Errorf("no schedule is being edited")
	}
	for i, s := range es.schedules {
		if s.ID == es.editing.ID {
			es.schedules[i] = *es.editing
			break
		}
	}
	es.editing = nil
	return nil
}

// CancelEdit discards the in-memory edits and returns to viewing.
func (es *EditorService) CancelEdit() {
	es.mu.Lock()
	defer es.mu.Unlock()
	es.editing = nil
}

// ChangeLocation publishes the entry being edited as the pending edit so
// a newly opened picker can seed itself from it, and starts listening for
// the picker's resolved location.
func (es *EditorService) ChangeLocation() error {
	es.mu.Lock()
	if es.editing == nil {
		es.mu.Unlock()
		return fmt.Errorf("no schedule is being edited")
	}
	pending := *es.editing
	es.mu.Unlock()

	if err := es.channel.PublishPendingEdit(pending); err != nil {
		return err
	}
	es.startWatching()
	return nil
}

// startWatching registers the channel listener once per editor.
func (es *EditorService) startWatching() {
	es.mu.Lock()
	defer es.mu.Unlock()
	if es.watching {
		return
	}
	events, closer := es.channel.WatchResolvedLocation()
	es.watching = true
	es.stopWatch = closer
	es.watchDone = make(chan struct{})

	go func(done chan struct{}) {
		defer close(done)
		for range events {
			es.handleResolvedLocation()
		}
	}(es.watchDone)
}

// handleResolvedLocation consumes the resolved-location slot and merges it
// into the entry being edited. A notification that arrives after the
// editing session ended is discarded, but the slot is still cleared so the
// stale value cannot be re-processed later.
func (es *EditorService) handleResolvedLocation() {
	es.mu.Lock()
	defer es.mu.Unlock()

	loc, ok := es.channel.ConsumeResolvedLocation()
	if !ok {
		return
	}
	if es.editing == nil {
		log.Printf("[EditorService] Discarding resolved location: no schedule is being edited")
		return
	}

	es.editing.Latitude = loc.Latitude
	es.editing.Longitude = loc.Longitude
	es.editing.Address = loc.Address

	// The vendor record tracks its latest picked coordinate too, so a
	// later SaveVendor persists it.
	es.vendor.Latitude = loc.Latitude
	es.vendor.Longitude = loc.Longitude
}

// DeleteSchedule removes a temporary entry directly from the in-memory
// list. Persisted entries are staged and require ConfirmDelete before any
// deletion request is issued.
func (es *EditorService) DeleteSchedule(id string) {
	es.mu.Lock()
	defer es.mu.Unlock()

	schedule := models.Schedule{ID: id}
	if schedule.IsTemporary() {
		es.removeScheduleLocked(id)
		return
	}
	es.pendingDelete = id
}

// PendingDelete returns the id staged for deletion, if any.
func (es *EditorService) PendingDelete() (string, bool) {
	es.mu.Lock()
	defer es.mu.Unlock()
	return es.pendingDelete, es.pendingDelete != ""
}

// ConfirmDelete issues the deletion request for the staged entry and
// removes it from the list only on success. On failure the entry remains
// and the error is reported.
func (es *EditorService) ConfirmDelete() error {
	es.mu.Lock()
	id := es.pendingDelete
	es.mu.Unlock()
	if id == "" {
		return fmt.Errorf("no schedule staged for deletion")
	}

	if err := es.vendorAPI.DeleteSchedule(id); err != nil {
		log.Printf("[EditorService] Failed to delete schedule %s: %v", id, err)
		return err
	}

	es.mu.Lock()
	defer es.mu.Unlock()
	es.removeScheduleLocked(id)
	es.pendingDelete = ""
	return nil
}

// CancelDelete drops the staged deletion.
func (es *EditorService) CancelDelete() {
	es.mu.Lock()
	defer es.mu.Unlock()
	es.pendingDelete = ""
}

func (es *EditorService) removeScheduleLocked(id string) {
	kept := es.schedules[:0]
	for _, s := range es.schedules {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	es.schedules = kept
}

// SaveVendor hands the full vendor record, current schedule list included,
// to the backend for persistence and closes the editing surface.
func (es *EditorService) SaveVendor(name, link, email string) error {
	es.mu.Lock()
	es.vendor.Name = name
	es.vendor.Link = link
	es.vendor.Schedules = append([]models.Schedule{}, es.schedules...)
	vendor := es.vendor
	es.mu.Unlock()

	if err := es.vendorAPI.UpdateVendor(vendor, email); err != nil {
		log.Printf("[EditorService] Failed to save vendor %s: %v", vendor.ID, err)
		return err
	}

	es.Close()
	return nil
}

// Schedules returns a copy of the current schedule list.
func (es *EditorService) Schedules() []models.Schedule {
	es.mu.Lock()
	defer es.mu.Unlock()
	return append([]models.Schedule{}, es.schedules...)
}

// Vendor returns the vendor record being edited.
func (es *EditorService) Vendor() models.Vendor {
	es.mu.Lock()
	defer es.mu.Unlock()
	return es.vendor
}

// IsClosed reports whether the editing surface has been closed.
func (es *EditorService) IsClosed() bool {
	es.mu.Lock()
	defer es.mu.Unlock()
	return es.closed
}

// Close stops the channel listener. Safe to call more than once.
func (es *EditorService) Close() {
	es.mu.Lock()
	if es.closed {
		es.mu.Unlock()
		return
	}
	es.closed = true
	stop := es.stopWatch
	done := es.watchDone
	es.mu.Unlock()

	if stop != nil {
		if err := stop(); err != nil {
			log.Printf("[EditorService] Failed to stop channel listener: %v", err)
		}
		<-done
	}
}
