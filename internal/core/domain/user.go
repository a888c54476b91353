package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("username already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")

// User models an authenticated actor in the portal.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	ClientID     string    `json:"client_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidRole reports whether role is one of the two recognised roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleClient
}

// Validate enforces the role/scope invariant: a client-role user must be
// bound to a client, an admin never is.
func (u *User) Validate() error {
	if u.Username == "" || u.PasswordHash == "" {
		return ErrValidation
	}
	if !ValidRole(u.Role) {
		return ErrValidation
	}
	if u.Role == RoleClient && u.ClientID == "" {
		return ErrValidation
	}
	if u.Role == RoleAdmin && u.ClientID != "" {
		return ErrValidation
	}
	return nil
}
