package domain

import (
	"strings"
	"time"
)

// TrialUserName is the display name given to trial users.
const TrialUserName = "Trial user"

// User is a signed in player.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Trial     bool      `json:"trial"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUser creates a registered user keyed by email.
func NewUser(name, email string) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, ErrInvalidCredentials
	}
	return &User{
		ID:        email,
		Name:      name,
		Email:     email,
		CreatedAt: time.Now(),
	}, nil
}

// NewTrialUser creates an anonymous user for a timed trial.
func NewTrialUser() *User {
	return &User{
		ID:        generateID(),
		Name:      TrialUserName,
		Trial:     true,
		CreatedAt: time.Now(),
	}
}
