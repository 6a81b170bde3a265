package session

import (
	"fmt"
	"time"

	"truckmap/config"
	"truckmap/models"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the logged-in user's profile in the session token.
type Claims struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	PictureURL  string `json:"picture_url"`
	jwt.RegisteredClaims
}

// Manager issues and verifies signed session tokens handed to the client
// after the identity-provider exchange.
type Manager struct {
	secret []byte
}

func NewManager(secret []byte) *Manager {
	return &Manager{secret: secret}
}

// IssueToken signs a session token for the user.
func (m *Manager) IssueToken(user models.User) (string, error) {
	claims := &Claims{
		DisplayName: user.DisplayName,
		Email:       user.Email,
		PictureURL:  user.PictureURL,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(config.SESSION_TOKEN_TTL_HOURS * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    config.SESSION_TOKEN_ISSUER,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// VerifyToken validates a session token and returns the user it carries.
func (m *Manager) VerifyToken(tokenString string) (*models.User, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}

	return &models.User{
		DisplayName: claims.DisplayName,
		Email:       claims.Email,
		PictureURL:  claims.PictureURL,
	}, nil
}
