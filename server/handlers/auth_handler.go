package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"truckmap/api/vendorapi"
	"truckmap/models"
	"truckmap/session"
)

type AuthHandler struct {
	vendorAPI vendorapi.VendorAPI
	store     *session.Store
	manager   *session.Manager
}

func NewAuthHandler(
	vendorAPI vendorapi.VendorAPI,
	store *session.Store,
	manager *session.Manager) *AuthHandler {

	return &AuthHandler{
		vendorAPI: vendorAPI,
		store:     store,
		manager:   manager,
	}
}

type lineCallbackRequest struct {
	Code  string `json:"code"`
	State string `json:"state"`
}

type lineCallbackResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// LineCallback handles POST /v1/auth/line-callback. It forwards the OAuth
// code and state to the backend, then opens a session for the returned user.
func (h *AuthHandler) LineCallback(w http.ResponseWriter, r *http.Request) {
	var req lineCallbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Code == "" || req.State == "" {
		http.Error(w, "Missing code or state", http.StatusBadRequest)
		return
	}

	user, err := h.vendorAPI.ExchangeLineCode(req.Code, req.State)
	if err != nil {
		log.Println("Error exchanging LINE code:", err)
		http.Error(w, "Login failed", http.StatusUnauthorized)
		return
	}

	token, err := h.manager.IssueToken(*user)
	if err != nil {
		log.Println("Error issuing session token:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.store.Login(*user)

	writeJSON(w, lineCallbackResponse{Token: token, User: *user})
}

// Logout handles POST /v1/auth/logout and clears the session slot.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.store.Logout()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "logged out"})
}
