package session

import (
	"sync"

	"truckmap/models"
)

// Store holds the logged-in user: one mutable slot with an explicit
// init-on-login, clear-on-logout lifecycle, read by every view. It is
// injected rather than kept as ambient state.
type Store struct {
	mu   sync.RWMutex
	user *models.User
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{}
}

// Login installs the user profile delivered by the identity provider.
func (s *Store) Login(user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := user
	s.user = &u
}

// Logout clears the slot.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}

// Current returns the logged-in user, if any.
func (s *Store) Current() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}
