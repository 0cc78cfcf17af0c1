package technician

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository defines data access for technicians and specializations.
type Repository interface {
	CreateTechnician(ctx context.Context, t *Technician, specializationIDs []uuid.UUID) error
	GetTechnician(ctx context.Context, id uuid.UUID) (*Technician, error)
	ListTechnicians(ctx context.Context, companyID uuid.UUID, activeOnly bool) ([]*Technician, error)
	UpdateEarnings(ctx context.Context, id uuid.UUID, pct decimal.Decimal) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	ReplaceSpecializations(ctx context.Context, id uuid.UUID, specializationIDs []uuid.UUID) error

	CreateSpecialization(ctx context.Context, s *Specialization) error
	ListSpecializations(ctx context.Context, companyID uuid.UUID) ([]*Specialization, error)
}
