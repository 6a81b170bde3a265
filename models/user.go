package models

// User is the profile delivered by the identity-provider callback.
type User struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	PictureURL  string `json:"picture_url"`
}
