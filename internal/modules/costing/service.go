package costing

import (
	"context"

	"github.com/google/uuid"

	"github.com/georgemunganga/autoservice-backend/internal/platform/apperr"
	"github.com/georgemunganga/autoservice-backend/internal/platform/ids"
	"github.com/georgemunganga/autoservice-backend/internal/platform/tenant"
)

// Catalog resolves a component id to its current catalog entry.
type Catalog interface {
	CatalogEntry(ctx context.Context, componentID uuid.UUID) (CatalogEntry, error)
}

// TechnicianDirectory resolves a technician id to its earnings settings.
type TechnicianDirectory interface {
	CostingTechnician(ctx context.Context, id uuid.UUID) (*Technician, error)
}

// Service exposes the cost rules over catalog and technician lookups.
type Service interface {
	// Quote computes parts, labor, total and technician earnings for a draft.
	Quote(ctx context.Context, req QuoteRequest) (CostBreakdown, error)
	// ResolveLine applies a select/override/reset action to one line item.
	ResolveLine(ctx context.Context, req ResolveRequest) (ResolveResponse, error)
}

type service struct {
	catalog     Catalog
	technicians TechnicianDirectory
}

func NewService(catalog Catalog, technicians TechnicianDirectory) Service {
	return &service{catalog: catalog, technicians: technicians}
}

func (s *service) Quote(ctx context.Context, req QuoteRequest) (CostBreakdown, error) {
	companyID, err := tenant.Resolve(ctx, req.CompanyID)
	if err != nil {
		return CostBreakdown{}, err
	}
	var tech *Technician
	if req.TechnicianID != "" {
		id, err := ids.Parse(req.TechnicianID, "technician_id")
		if err != nil {
			return CostBreakdown{}, err
		}
		if tech, err = s.technicians.CostingTechnician(ctx, id); err != nil {
			return CostBreakdown{}, err
		}
	}
	return Compute(CostRequest{
		CompanyID:  companyID,
		LineItems:  req.LineItems,
		LaborCost:  req.LaborCost,
		Technician: tech,
	})
}

// entry looks up a catalog entry and rejects one owned by another company.
func (s *service) entry(ctx context.Context, companyID, componentID uuid.UUID) (CatalogEntry, error) {
	e, err := s.catalog.CatalogEntry(ctx, componentID)
	if err != nil {
		return CatalogEntry{}, err
	}
	if err := e.BelongsTo(companyID); err != nil {
		return CatalogEntry{}, err
	}
	return e, nil
}

func (s *service) ResolveLine(ctx context.Context, req ResolveRequest) (ResolveResponse, error) {
	companyID, err := tenant.Resolve(ctx, req.CompanyID)
	if err != nil {
		return ResolveResponse{}, err
	}
	var (
		item  LineItem
		entry CatalogEntry
	)
	switch req.Action {
	case ActionSelect:
		id, perr := ids.Parse(req.ComponentID, "component_id")
		if perr != nil {
			return ResolveResponse{}, perr
		}
		if entry, err = s.entry(ctx, companyID, id); err != nil {
			return ResolveResponse{}, err
		}
		item = SelectComponent(req.Item, entry)
	case ActionOverride:
		if req.Price == nil {
			return ResolveResponse{}, apperr.Validation("price is required for override")
		}
		if item, err = OverridePrice(req.Item, *req.Price); err != nil {
			return ResolveResponse{}, err
		}
		if entry, err = s.entry(ctx, companyID, item.ComponentID); err != nil {
			return ResolveResponse{}, err
		}
	case ActionReset:
		if entry, err = s.entry(ctx, companyID, req.Item.ComponentID); err != nil {
			return ResolveResponse{}, err
		}
		if item, err = ResetPrice(req.Item, entry); err != nil {
			return ResolveResponse{}, err
		}
	default:
		return ResolveResponse{}, apperr.Validation("unknown action %q (allowed: select, override, reset)", req.Action)
	}

	if item.Quantity == 0 {
		item.Quantity = 1
	}
	if err := ValidateLine(1, item); err != nil {
		return ResolveResponse{}, err
	}
	return ResolveResponse{Item: item, LineCost: LineCost(item), Drift: Drift(item, entry)}, nil
}
