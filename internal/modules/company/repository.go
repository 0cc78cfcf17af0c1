package company

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// CreateCompany inserts the company and attaches its owner to it.
	CreateCompany(ctx context.Context, company *Company) error
	GetCompanyByID(ctx context.Context, id uuid.UUID) (*Company, error)
}
