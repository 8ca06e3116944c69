package model

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleChef  = "chef"
	RoleAdmin = "admin"
)

const (
	StatusActive = "active"
	StatusFraud  = "fraud"
)

// User is the identity-directory record. ChefID is set exactly once, by an
// approved chef role request, and is never reused across users.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	ChefID    *string   `json:"chef_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleChef, RoleAdmin:
		return true
	}
	return false
}
