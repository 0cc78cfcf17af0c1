package technician

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/georgemunganga/autoservice-backend/internal/modules/costing"
	"github.com/georgemunganga/autoservice-backend/internal/platform/apperr"
	"github.com/georgemunganga/autoservice-backend/internal/platform/ids"
	"github.com/georgemunganga/autoservice-backend/internal/platform/tenant"
)

var hundred = decimal.NewFromInt(100)

type Service interface {
	CreateTechnician(ctx context.Context, req CreateTechnicianRequest) (*Technician, error)
	GetTechnician(ctx context.Context, id uuid.UUID) (*Technician, error)
	ListTechnicians(ctx context.Context, companyID uuid.UUID, activeOnly bool) ([]*Technician, error)
	UpdateEarnings(ctx context.Context, id uuid.UUID, req EarningsRequest) (*Technician, error)
	SetActive(ctx context.Context, id uuid.UUID, req ActiveRequest) (*Technician, error)
	ReplaceSpecializations(ctx context.Context, id uuid.UUID, req SpecializationsRequest) (*Technician, error)

	CreateSpecialization(ctx context.Context, req CreateSpecializationRequest) (*Specialization, error)
	ListSpecializations(ctx context.Context, companyID uuid.UUID) ([]*Specialization, error)

	// CostingTechnician exposes the earnings settings the cost rules need.
	CostingTechnician(ctx context.Context, id uuid.UUID) (*costing.Technician, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateTechnician(ctx context.Context, req CreateTechnicianRequest) (*Technician, error) {
	companyID, err := tenant.Resolve(ctx, req.CompanyID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	pct := costing.DefaultEarningsPercentage
	if req.EarningsPercentage != nil {
		if pct, err = validPercentage(*req.EarningsPercentage); err != nil {
			return nil, err
		}
	}
	specIDs, err := parseIDs(req.SpecializationIDs)
	if err != nil {
		return nil, err
	}

	t := &Technician{
		ID:                 uuid.New(),
		CompanyID:          companyID,
		Name:               name,
		Phone:              strings.TrimSpace(req.Phone),
		Active:             true,
		EarningsPercentage: pct,
	}
	if err := s.repo.CreateTechnician(ctx, t, specIDs); err != nil {
		return nil, err
	}
	return s.repo.GetTechnician(ctx, t.ID)
}

func (s *service) GetTechnician(ctx context.Context, id uuid.UUID) (*Technician, error) {
	t, err := s.repo.GetTechnician(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := tenant.Check(ctx, t.CompanyID, "technician", id); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) ListTechnicians(ctx context.Context, companyID uuid.UUID, activeOnly bool) ([]*Technician, error) {
	return s.repo.ListTechnicians(ctx, companyID, activeOnly)
}

func (s *service) UpdateEarnings(ctx context.Context, id uuid.UUID, req EarningsRequest) (*Technician, error) {
	pct, err := validPercentage(req.EarningsPercentage)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetTechnician(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateEarnings(ctx, id, pct); err != nil {
		return nil, err
	}
	return s.repo.GetTechnician(ctx, id)
}

// SetActive toggles availability. Inactive technicians keep their history.
func (s *service) SetActive(ctx context.Context, id uuid.UUID, req ActiveRequest) (*Technician, error) {
	if _, err := s.GetTechnician(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.SetActive(ctx, id, req.Active); err != nil {
		return nil, err
	}
	return s.repo.GetTechnician(ctx, id)
}

func (s *service) ReplaceSpecializations(ctx context.Context, id uuid.UUID, req SpecializationsRequest) (*Technician, error) {
	specIDs, err := parseIDs(req.SpecializationIDs)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetTechnician(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.ReplaceSpecializations(ctx, id, specIDs); err != nil {
		return nil, err
	}
	return s.repo.GetTechnician(ctx, id)
}

func (s *service) CreateSpecialization(ctx context.Context, req CreateSpecializationRequest) (*Specialization, error) {
	companyID, err := tenant.Resolve(ctx, req.CompanyID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	sp := &Specialization{ID: uuid.New(), CompanyID: companyID, Name: name}
	if err := s.repo.CreateSpecialization(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *service) ListSpecializations(ctx context.Context, companyID uuid.UUID) ([]*Specialization, error) {
	return s.repo.ListSpecializations(ctx, companyID)
}

func (s *service) CostingTechnician(ctx context.Context, id uuid.UUID) (*costing.Technician, error) {
	t, err := s.repo.GetTechnician(ctx, id)
	if err != nil {
		return nil, err
	}
	return &costing.Technician{
		ID:                 t.ID,
		CompanyID:          t.CompanyID,
		EarningsPercentage: decimal.NewNullDecimal(t.EarningsPercentage),
	}, nil
}

func validPercentage(pct decimal.Decimal) (decimal.Decimal, error) {
	if pct.IsNegative() || pct.GreaterThan(hundred) {
		return decimal.Zero, apperr.Validation("earnings_percentage must be between 0 and 100")
	}
	return pct.Round(2), nil
}

// parseIDs parses and de-duplicates specialization ids, keeping order.
func parseIDs(raw []string) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]bool, len(raw))
	out := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := ids.Parse(s, "specialization_ids")
		if err != nil {
			return nil, err
		}
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out, nil
}
