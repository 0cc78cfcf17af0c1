package user

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for user-related business logic.
type Service interface {
	// RegisterUser signs up a user with no company. They join one by
	// creating it or by being added as a member.
	RegisterUser(ctx context.Context, req RegisterRequest) (*User, error)
	// AddMember creates a user inside the caller's company.
	AddMember(ctx context.Context, req RegisterRequest) (*User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	// CompanyOf returns the user's company, or uuid.Nil if they have none.
	CompanyOf(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
}

// RegisterRequest is the payload for POST /api/v1/users/register and
// POST /api/v1/users.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role,omitempty"`
}
