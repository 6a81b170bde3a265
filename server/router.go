package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"truckmap/server/handlers"
	"truckmap/session"
)

// VendorRoutes is the surface the router needs from the vendor handler.
type VendorRoutes interface {
	GetVendors(w http.ResponseWriter, r *http.Request)
	GetVendorsNearby(w http.ResponseWriter, r *http.Request)
	GetUserVendors(w http.ResponseWriter, r *http.Request)
	GetVendorMap(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
}

// AuthRoutes is the surface the router needs from the auth handler.
type AuthRoutes interface {
	LineCallback(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	vendorRoutes   VendorRoutes
	authRoutes     AuthRoutes
	editorHandler  *handlers.EditorHandler
	pickerHandler  *handlers.PickerHandler
	sessionManager *session.Manager
	router         *mux.Router
}

// NewRouter creates a router with the app’s routes.
func NewRouter(
	vendorRoutes VendorRoutes,
	authRoutes AuthRoutes,
	editorHandler *handlers.EditorHandler,
	pickerHandler *handlers.PickerHandler,
	sessionManager *session.Manager,
	router *mux.Router) *Router {
	return &Router{
		vendorRoutes:   vendorRoutes,
		authRoutes:     authRoutes,
		editorHandler:  editorHandler,
		pickerHandler:  pickerHandler,
		sessionManager: sessionManager,
		router:         router,
	}
}

func (r *Router) RegisterRoutes() {
	// expects ?date=YYYY-MM-DD
	r.router.HandleFunc("/v1/vendors", r.vendorRoutes.GetVendors).Methods("GET")

	// expects ?lat={latitude(float)}&lon={longitude(float)}&radius={radius_km(float)}
	r.router.HandleFunc("/v1/vendors/nearby", r.vendorRoutes.GetVendorsNearby).Methods("GET")

	// expects ?date=YYYY-MM-DD, serves rendered HTML
	r.router.HandleFunc("/v1/map", r.vendorRoutes.GetVendorMap).Methods("GET")

	r.router.HandleFunc("/v1/users/{email}/vendors",
		r.requireAuth(r.vendorRoutes.GetUserVendors)).Methods("GET")

	r.router.HandleFunc("/v1/auth/line-callback", r.authRoutes.LineCallback).Methods("POST")
	r.router.HandleFunc("/v1/auth/logout", r.authRoutes.Logout).Methods("POST")

	// The editing surface requires a logged-in session, like the vendor
	// form it serves.
	e := r.editorHandler
	r.router.HandleFunc("/v1/editor", r.requireAuth(e.Open)).Methods("POST")
	r.router.HandleFunc("/v1/editor/schedules", r.requireAuth(e.GetSchedules)).Methods("GET")
	r.router.HandleFunc("/v1/editor/schedules", r.requireAuth(e.AddSchedule)).Methods("POST")
	r.router.HandleFunc("/v1/editor/schedules/{id}/edit", r.requireAuth(e.EditSchedule)).Methods("POST")
	r.router.HandleFunc("/v1/editor/schedules/{id}", r.requireAuth(e.DeleteSchedule)).Methods("DELETE")
	r.router.HandleFunc("/v1/editor/editing", r.requireAuth(e.GetEditing)).Methods("GET")
	r.router.HandleFunc("/v1/editor/editing", r.requireAuth(e.UpdateEditing)).Methods("PUT")
	r.router.HandleFunc("/v1/editor/editing/save", r.requireAuth(e.SaveSchedule)).Methods("POST")
	r.router.HandleFunc("/v1/editor/editing/cancel", r.requireAuth(e.CancelEdit)).Methods("POST")
	r.router.HandleFunc("/v1/editor/editing/location", r.requireAuth(e.ChangeLocation)).Methods("POST")
	r.router.HandleFunc("/v1/editor/deletion/confirm", r.requireAuth(e.ConfirmDelete)).Methods("POST")
	r.router.HandleFunc("/v1/editor/deletion/cancel", r.requireAuth(e.CancelDelete)).Methods("POST")
	r.router.HandleFunc("/v1/editor/save", r.requireAuth(e.SaveVendor)).Methods("POST")
	r.router.HandleFunc("/v1/editor/close", r.requireAuth(e.Close)).Methods("POST")

	p := r.pickerHandler
	r.router.HandleFunc("/v1/picker", r.requireAuth(p.Open)).Methods("POST")
	r.router.HandleFunc("/v1/picker", r.requireAuth(p.GetState)).Methods("GET")
	r.router.HandleFunc("/v1/picker/click", r.requireAuth(p.Click)).Methods("POST")
	r.router.HandleFunc("/v1/picker/search", r.requireAuth(p.Search)).Methods("POST")
	r.router.HandleFunc("/v1/picker/save", r.requireAuth(p.Save)).Methods("POST")
	r.router.HandleFunc("/v1/picker/cancel", r.requireAuth(p.Cancel)).Methods("POST")

	r.router.HandleFunc("/ping", r.vendorRoutes.Ping).Methods("GET")
}

// requireAuth admits only requests carrying a valid session token whose
// account matches the {email} path segment.
func (r *Router) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		auth := req.Header.Get("Authorization")
		const prefix = "Bearer "
		if len(auth) <= len(prefix) || auth[:len(prefix)] != prefix {
			http.Error(w, "Missing session token", http.StatusUnauthorized)
			return
		}

		user, err := r.sessionManager.VerifyToken(auth[len(prefix):])
		if err != nil {
			http.Error(w, "Invalid session token", http.StatusUnauthorized)
			return
		}

		if email := mux.Vars(req)["email"]; email != "" && email != user.Email {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		next(w, req)
	}
}
