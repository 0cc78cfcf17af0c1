package user

import (
	"time"

	"github.com/google/uuid"
)

// Role is a user's permission level within a company.
type Role string

const (
	RoleOwner   Role = "owner"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleManager || r == RoleStaff
}

// User is a person who signs in to manage a shop.
type User struct {
	ID           uuid.UUID  `json:"id"`
	CompanyID    *uuid.UUID `json:"company_id,omitempty"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FullName     string     `json:"full_name,omitempty"`
	Role         Role       `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
