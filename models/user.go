package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRole represents the role of a portal user
type UserRole string

const (
	RoleAccountant UserRole = "accountant"
	RoleClient     UserRole = "client"
)

// User represents a user entity
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize password hash
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
