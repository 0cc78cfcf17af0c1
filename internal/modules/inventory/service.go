package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/autoservice-backend/internal/modules/costing"
	"github.com/georgemunganga/autoservice-backend/internal/platform/apperr"
	"github.com/georgemunganga/autoservice-backend/internal/platform/tenant"
)

// Service defines inventory business logic. It also serves as the
// costing.Catalog used to price service line items.
type Service interface {
	CreateComponent(ctx context.Context, req CreateComponentRequest) (*Component, error)
	GetComponent(ctx context.Context, id uuid.UUID) (*Component, error)
	ListComponents(ctx context.Context, companyID uuid.UUID, search string) ([]*Component, error)
	UpdatePrice(ctx context.Context, id uuid.UUID, req UpdatePriceRequest) (*PriceHistoryEntry, error)
	PriceHistory(ctx context.Context, id uuid.UUID) ([]*PriceHistoryEntry, error)
	UpdateStock(ctx context.Context, id uuid.UUID, req UpdateStockRequest) (*Component, error)
	LowStock(ctx context.Context, companyID uuid.UUID) ([]LowStockItem, error)

	CatalogEntry(ctx context.Context, componentID uuid.UUID) (costing.CatalogEntry, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateComponent(ctx context.Context, req CreateComponentRequest) (*Component, error) {
	companyID, err := tenant.Resolve(ctx, req.CompanyID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	if req.Price.IsNegative() {
		return nil, apperr.Validation("price must be >= 0")
	}
	if req.Stock < 0 || req.ReorderLevel < 0 {
		return nil, apperr.Validation("stock and reorder_level must be >= 0")
	}
	c := &Component{
		ID:           uuid.New(),
		CompanyID:    companyID,
		Name:         name,
		Price:        costing.Round2(req.Price),
		Stock:        req.Stock,
		ReorderLevel: req.ReorderLevel,
	}
	if pn := strings.TrimSpace(req.PartNumber); pn != "" {
		c.PartNumber = &pn
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetComponent(ctx context.Context, id uuid.UUID) (*Component, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := tenant.Check(ctx, c.CompanyID, "component", id); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) ListComponents(ctx context.Context, companyID uuid.UUID, search string) ([]*Component, error) {
	return s.repo.List(ctx, companyID, strings.TrimSpace(search))
}

func (s *service) UpdatePrice(ctx context.Context, id uuid.UUID, req UpdatePriceRequest) (*PriceHistoryEntry, error) {
	if req.Price == nil {
		return nil, apperr.Validation("price is required")
	}
	if req.Price.IsNegative() {
		return nil, apperr.Validation("price must be >= 0")
	}
	e := &PriceHistoryEntry{
		ID:          uuid.New(),
		ComponentID: id,
		NewPrice:    costing.Round2(*req.Price),
		ChangedAt:   time.Now(),
	}
	if req.Reason != "" {
		reason := PriceReason(strings.ToLower(req.Reason))
		if !validReasons[reason] {
			return nil, apperr.Validation("unknown price change reason %q", req.Reason)
		}
		e.Reason = &reason
	}
	if _, err := s.GetComponent(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdatePrice(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) PriceHistory(ctx context.Context, id uuid.UUID) ([]*PriceHistoryEntry, error) {
	if _, err := s.GetComponent(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.PriceHistory(ctx, id)
}

func (s *service) UpdateStock(ctx context.Context, id uuid.UUID, req UpdateStockRequest) (*Component, error) {
	if _, err := s.GetComponent(ctx, id); err != nil {
		return nil, err
	}
	var err error
	switch {
	case req.Stock != nil && req.Delta != nil:
		return nil, apperr.Validation("send either stock or delta, not both")
	case req.Stock != nil:
		if *req.Stock < 0 {
			return nil, apperr.Validation("stock must be >= 0")
		}
		err = s.repo.SetStock(ctx, id, *req.Stock)
	case req.Delta != nil:
		err = s.repo.AdjustStock(ctx, id, *req.Delta)
	default:
		return nil, apperr.Validation("stock or delta is required")
	}
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) LowStock(ctx context.Context, companyID uuid.UUID) ([]LowStockItem, error) {
	comps, err := s.repo.LowStock(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]LowStockItem, 0, len(comps))
	for _, c := range comps {
		out = append(out, LowStockItem{Component: c, Shortfall: c.ReorderLevel - c.Stock})
	}
	return out, nil
}

func (s *service) CatalogEntry(ctx context.Context, componentID uuid.UUID) (costing.CatalogEntry, error) {
	c, err := s.repo.GetByID(ctx, componentID)
	if err != nil {
		return costing.CatalogEntry{}, err
	}
	return costing.CatalogEntry{ComponentID: c.ID, CompanyID: c.CompanyID, Price: c.Price}, nil
}
