package session

import (
	"testing"

	"truckmap/models"
)

func TestStore_LoginLogoutLifecycle(t *testing.T) {
	store := NewStore()

	if _, ok := store.Current(); ok {
		t.Fatal("Expected no user before login")
	}

	store.Login(models.User{DisplayName: "Hong Chen", Email: "hong.chen@example.com"})

	user, ok := store.Current()
	if !ok {
		t.Fatal("Expected a user after login")
	}
	if user.Email != "hong.chen@example.com" {
		t.Errorf("Expected the logged-in user's email, got %s", user.Email)
	}

	store.Logout()

	if _, ok := store.Current(); ok {
		t.Error("Expected no user after logout")
	}
}

func TestStore_LoginOverwrites(t *testing.T) {
	store := NewStore()

	store.Login(models.User{Email: "first@example.com"})
	store.Login(models.User{Email: "second@example.com"})

	user, _ := store.Current()
	if user.Email != "second@example.com" {
		t.Errorf("Expected the second login to win, got %s", user.Email)
	}
}
