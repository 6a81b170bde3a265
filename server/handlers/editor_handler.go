package handlers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"truckmap/api/vendorapi"
	"truckmap/channel"
	"truckmap/models"
	services "truckmap/service"
)

// EditorHandler exposes the schedule editor over HTTP. One editing
// session is open at a time, the way a single editor window is; opening
// a vendor replaces the previous session.
type EditorHandler struct {
	vendorAPI       vendorapi.VendorAPI
	locationChannel *channel.LocationChannel

	mu     sync.Mutex
	editor *services.EditorService
}

func NewEditorHandler(
	vendorAPI vendorapi.VendorAPI,
	locationChannel *channel.LocationChannel) *EditorHandler {

	return &EditorHandler{
		vendorAPI:       vendorAPI,
		locationChannel: locationChannel,
	}
}

func (h *EditorHandler) session(w http.ResponseWriter) (*services.EditorService, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.editor == nil || h.editor.IsClosed() {
		http.Error(w, "No editor session is open", http.StatusConflict)
		return nil, false
	}
	return h.editor, true
}

// Open handles POST /v1/editor. The body carries the vendor record to
// edit; a session that was already open is closed first.
func (h *EditorHandler) Open(w http.ResponseWriter, r *http.Request) {
	var vendor models.Vendor
	if err := json.NewDecoder(r.Body).Decode(&vendor); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if vendor.ID == "" {
		http.Error(w, "Missing vendor id", http.StatusBadRequest)
		return
	}

	editor := services.NewEditorService(h.vendorAPI, h.locationChannel, vendor)

	h.mu.Lock()
	if h.editor != nil {
		h.editor.Close()
	}
	h.editor = editor
	h.mu.Unlock()

	writeJSON(w, editor.Schedules())
}

// GetSchedules handles GET /v1/editor/schedules
func (h *EditorHandler) GetSchedules(w http.ResponseWriter, r *http.Request) {
	editor, ok := h.session(w)
	if !ok {
		return
	}
	writeJSON(w, editor.Schedules())
}

// AddSchedule handles POST /v1/editor/schedules and returns the new
// draft entry.
func (h *EditorHandler) AddSchedule(w http.ResponseWriter, r *http.Request) {
	editor, ok := h.session(w)
	if !ok {
		return
	}
	writeJSON(w, editor.AddSchedule())
}

// EditSchedule handles POST /v1/editor/schedules/{id}/edit
func (h *EditorHandler) EditSchedule(w http.ResponseWriter, r *http.Request) {
	editor, ok := h.session(w)
	if !ok {
		return
	}
	if err := editor.EditSchedule(mux.Vars(r)["id"]); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	editing, _ := editor.Editing()
	writeJSON(w, editing)
}

// GetEditing handles GET /v1/editor/editing
func (h *EditorHandler) GetEditing(w http.ResponseWriter, r *http.Request) {
	editor, ok := h.session(w)
	if !ok {
		return
	}
	editing, ok := editor.Editing()
	if !ok {
		http.Error(w, "No schedule is being edited", http.StatusNotFound)
		return
	}
	writeJSON(w, editing)
}

// UpdateEditing handles PUT /v1/editor/editing. The body carries the
// edited field values; the entry's identifier cannot change.
func (h *EditorHandler) UpdateEditing(w http.ResponseWriter, r *http.Request) {
	editor, ok := h.session(w)
	if !ok {
		return
	}

	var fields models.Schedule
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	err := editor.UpdateEditing(func(s *models.Schedule) {
		id := s.ID
		*s = fields
		s.ID = id
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	editing, _ := editor.Editing()
	writeJSON(w, editing)
}

// SaveSchedule handles POST /v1/editor/editing/save
func (h *EditorHandler) SaveSchedule(w http.ResponseWriter, r *http.Request) {
	editor, ok := h.session(w)
	if !ok {
		return
	}
	if err := editor.SaveSchedule(); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	writeJSON(w, editor.Schedules())
}

// CancelEdit handles POST /v1/editor/editing/cancel
func (h *EditorHandler) CancelEdit(w http.ResponseWriter, r *http.Request) {
	editor, ok := h.session(w)
	if !ok {
		return
	}
	editor.CancelEdit()
	writeJSON(w, editor.Schedules())
}

// ChangeLocation handles POST /v1/editor/editing/location. It hands the
// editing entry to the channel so a picker can seed itself from it.
func (h *EditorHandler) ChangeLocation(w http.ResponseWriter, r *http.Request) {
	editor, ok := h.session(w)
	if !ok {
		return
	}
	if err := editor.ChangeLocation(); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// DeleteSchedule handles DELETE /v1/editor/schedules/{id}. Temporary
// entries disappear immediately; persisted ones are staged until
// ConfirmDelete.
func (h *EditorHandler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	editor, ok := h.session(w)
	if !ok {
		return
	}
	editor.DeleteSchedule(mux.Vars(r)["id"])

	if staged, pending := editor.PendingDelete(); pending {
		writeJSON(w, map[string]string{"pending_delete": staged})
		return
	}
	writeJSON(w, editor.Schedules())
}

// ConfirmDelete handles POST /v1/editor/deletion/confirm
func (h *EditorHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	editor, ok := h.session(w)
	if !ok {
		return
	}
	if err := editor.ConfirmDelete(); err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, editor.Schedules())
}

// CancelDelete handles POST /v1/editor/deletion/cancel
func (h *EditorHandler) CancelDelete(w http.ResponseWriter, r *http.Request) {
	editor, ok := h.session(w)
	if !ok {
		return
	}
	editor.CancelDelete()
	writeJSON(w, editor.Schedules())
}

type saveVendorRequest struct {
	Name  string `json:"name"`
	Link  string `json:"link"`
	Email string `json:"email"`
}

// SaveVendor handles POST /v1/editor/save: the full vendor record goes
// to the backend and the session closes.
func (h *EditorHandler) SaveVendor(w http.ResponseWriter, r *http.Request) {
	editor, ok := h.session(w)
	if !ok {
		return
	}

	var req saveVendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := editor.SaveVendor(req.Name, req.Link, req.Email); err != nil {
		http.Error(w, "Failed to save vendor", http.StatusBadGateway)
		return
	}
	writeJSON(w, editor.Vendor())
}

// Close handles POST /v1/editor/close
func (h *EditorHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.editor != nil {
		h.editor.Close()
		h.editor = nil
	}
	w.WriteHeader(http.StatusNoContent)
}
