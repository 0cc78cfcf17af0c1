package user

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/georgemunganga/autoservice-backend/internal/platform/apperr"
	"github.com/georgemunganga/autoservice-backend/internal/platform/tenant"
)

const minPasswordLength = 8

type service struct {
	repo Repository
}

// NewService creates a new user service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) RegisterUser(ctx context.Context, req RegisterRequest) (*User, error) {
	return s.create(ctx, req, RoleOwner, nil)
}

func (s *service) AddMember(ctx context.Context, req RegisterRequest) (*User, error) {
	companyID, err := tenant.Resolve(ctx, "")
	if err != nil {
		return nil, err
	}
	if Role(strings.ToLower(req.Role)) == RoleOwner {
		return nil, apperr.Validation("a company has a single owner")
	}
	return s.create(ctx, req, RoleStaff, &companyID)
}

func (s *service) create(ctx context.Context, req RegisterRequest, defaultRole Role, companyID *uuid.UUID) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperr.Validation("invalid email")
	}
	if len(req.Password) < minPasswordLength {
		return nil, apperr.Validation("password must be at least %d characters", minPasswordLength)
	}
	role := defaultRole
	if req.Role != "" {
		role = Role(strings.ToLower(req.Role))
	}
	if !role.Valid() {
		return nil, apperr.Validation("unknown role %q", req.Role)
	}

	user := &User{
		ID:        uuid.New(),
		CompanyID: companyID,
		Email:     email,
		FullName:  strings.TrimSpace(req.FullName),
		Role:      role,
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hashedPassword)

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser returns the caller themselves or a member of their company.
func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if scope, ok := tenant.FromContext(ctx); ok && scope.UserID == id {
		return u, nil
	}
	var owner uuid.UUID
	if u.CompanyID != nil {
		owner = *u.CompanyID
	}
	if err := tenant.Check(ctx, owner, "user", id); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) CompanyOf(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	u, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return uuid.Nil, err
	}
	if u.CompanyID == nil {
		return uuid.Nil, nil
	}
	return *u.CompanyID, nil
}
