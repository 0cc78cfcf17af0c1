package company

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/georgemunganga/autoservice-backend/internal/platform/apperr"
	"github.com/georgemunganga/autoservice-backend/internal/platform/ids"
	"github.com/georgemunganga/autoservice-backend/internal/platform/tenant"
)

type Service interface {
	CreateCompany(ctx context.Context, ownerID string, req CreateRequest) (*Company, error)
	GetCompany(ctx context.Context, id uuid.UUID) (*Company, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateCompany(ctx context.Context, ownerID string, req CreateRequest) (*Company, error) {
	parsedOwnerID, err := ids.Parse(ownerID, "owner_id")
	if err != nil {
		return nil, err
	}
	if scope, ok := tenant.FromContext(ctx); ok && scope.CompanyID != uuid.Nil {
		return nil, apperr.Conflict("user already belongs to company %s", scope.CompanyID)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	if len(currency) != 3 {
		return nil, apperr.Validation("currency must be a 3-letter ISO code")
	}

	company := &Company{
		ID:       uuid.New(),
		OwnerID:  parsedOwnerID,
		Name:     name,
		TaxID:    strings.TrimSpace(req.TaxID),
		Currency: currency,
	}
	if err := s.repo.CreateCompany(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *service) GetCompany(ctx context.Context, id uuid.UUID) (*Company, error) {
	c, err := s.repo.GetCompanyByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := tenant.Check(ctx, c.ID, "company", id); err != nil {
		return nil, err
	}
	return c, nil
}
