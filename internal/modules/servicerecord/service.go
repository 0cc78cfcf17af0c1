package servicerecord

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/georgemunganga/autoservice-backend/internal/modules/costing"
	"github.com/georgemunganga/autoservice-backend/internal/modules/scheduling"
	"github.com/georgemunganga/autoservice-backend/internal/platform/apperr"
	"github.com/georgemunganga/autoservice-backend/internal/platform/ids"
	"github.com/georgemunganga/autoservice-backend/internal/platform/tenant"
)

// Service defines service record business logic.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*ServiceRecord, error)
	Get(ctx context.Context, id uuid.UUID) (*ServiceRecord, error)
	List(ctx context.Context, f ListFilter) ([]*ServiceRecord, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*ServiceRecord, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*StatusResult, error)
}

type service struct {
	repo            Repository
	catalog         costing.Catalog
	technicians     costing.TechnicianDirectory
	defaultDuration int
}

func NewService(repo Repository, catalog costing.Catalog, technicians costing.TechnicianDirectory, defaultDuration int) Service {
	return &service{repo: repo, catalog: catalog, technicians: technicians, defaultDuration: defaultDuration}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*ServiceRecord, error) {
	companyID, err := tenant.Resolve(ctx, req.CompanyID)
	if err != nil {
		return nil, err
	}
	vehicleID, err := ids.Parse(req.VehicleID, "vehicle_id")
	if err != nil {
		return nil, err
	}
	customerID, err := ids.Parse(req.CustomerID, "customer_id")
	if err != nil {
		return nil, err
	}
	technicianID, err := ids.Optional(req.TechnicianID, "technician_id")
	if err != nil {
		return nil, err
	}
	if req.ServiceDate.IsZero() {
		return nil, apperr.Validation("service_date is required")
	}
	if err := validOdometer(req.Odometer); err != nil {
		return nil, err
	}

	status := StatusPending
	if req.Status != "" {
		status = Status(strings.ToLower(req.Status))
	}
	if status != StatusPending && status != StatusInProgress && status != StatusCompleted {
		return nil, apperr.Validation("a new service record must be pending, in_progress or completed")
	}
	var next *scheduling.UpcomingService
	if status == StatusCompleted {
		origin := scheduling.Origin{CompanyID: companyID, VehicleID: vehicleID, CustomerID: customerID}
		if next, err = scheduling.PlanNextService(origin, req.NextService, s.defaultDuration); err != nil {
			return nil, err
		}
	}

	items, err := s.resolveItems(ctx, companyID, req.LineItems)
	if err != nil {
		return nil, err
	}
	costs, err := s.compute(ctx, companyID, items, req.LaborCost, technicianID)
	if err != nil {
		return nil, err
	}

	rec := &ServiceRecord{
		ID:           uuid.New(),
		CompanyID:    companyID,
		VehicleID:    vehicleID,
		CustomerID:   customerID,
		TechnicianID: technicianID,
		Description:  strings.TrimSpace(req.Description),
		ServiceDate:  req.ServiceDate,
		Status:       status,
		LaborCost:    decimal.NewNullDecimal(costs.LaborCost),
		TotalCost:    costs.TotalCost,
		Odometer:     req.Odometer,
		LineItems:    lineItems(items),
		Costs:        &costs,
	}
	if err := s.repo.Create(ctx, rec, next); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ServiceRecord, error) {
	rec, err := s.record(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.attachCosts(ctx, rec, map[uuid.UUID]*costing.Technician{}); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *service) List(ctx context.Context, f ListFilter) ([]*ServiceRecord, error) {
	var err error
	if f.CompanyID, err = tenant.Narrow(ctx, f.CompanyID); err != nil {
		return nil, err
	}
	if f.CompanyID == uuid.Nil && f.VehicleID == uuid.Nil {
		return nil, apperr.Validation("company_id or vehicle_id is required")
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, apperr.Validation("unknown status %q", f.Status)
	}
	recs, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	techs := map[uuid.UUID]*costing.Technician{}
	for _, rec := range recs {
		if err := s.attachCosts(ctx, rec, techs); err != nil {
			return nil, err
		}
	}
	return recs, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*ServiceRecord, error) {
	rec, err := s.record(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.Status == StatusCancelled {
		return nil, apperr.Transition("cancelled service record %s cannot be edited", id)
	}
	technicianID, err := ids.Optional(req.TechnicianID, "technician_id")
	if err != nil {
		return nil, err
	}
	if err := validOdometer(req.Odometer); err != nil {
		return nil, err
	}

	var labor decimal.Decimal
	switch {
	case req.LaborCost != nil:
		labor = *req.LaborCost
	case rec.LaborCost.Valid:
		labor = rec.LaborCost.Decimal
	default:
		if labor, err = costing.DeriveLaborCost(rec.TotalCost, storedItems(rec.LineItems)); err != nil {
			return nil, err
		}
	}

	items, err := s.resolveItems(ctx, rec.CompanyID, req.LineItems)
	if err != nil {
		return nil, err
	}
	costs, err := s.compute(ctx, rec.CompanyID, items, labor, technicianID)
	if err != nil {
		return nil, err
	}

	rec.TechnicianID = technicianID
	rec.Description = strings.TrimSpace(req.Description)
	if !req.ServiceDate.IsZero() {
		rec.ServiceDate = req.ServiceDate
	}
	rec.Odometer = req.Odometer
	rec.LaborCost = decimal.NewNullDecimal(costs.LaborCost)
	rec.TotalCost = costs.TotalCost
	rec.LineItems = lineItems(items)
	rec.Costs = &costs
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*StatusResult, error) {
	if req.Status == "" {
		return nil, apperr.Validation("status is required")
	}
	rec, err := s.record(ctx, id)
	if err != nil {
		return nil, err
	}
	next := Status(strings.ToLower(strings.TrimSpace(req.Status)))
	if !next.Valid() {
		return nil, apperr.Validation("unknown status %q", req.Status)
	}
	if !CanTransition(rec.Status, next) {
		return nil, apperr.Transition("cannot transition service record from %s to %s", rec.Status, next)
	}

	var upcoming *scheduling.UpcomingService
	if next == StatusCompleted {
		origin := scheduling.Origin{CompanyID: rec.CompanyID, VehicleID: rec.VehicleID, CustomerID: rec.CustomerID}
		if upcoming, err = scheduling.PlanNextService(origin, req.NextService, s.defaultDuration); err != nil {
			return nil, err
		}
	} else if req.NextService != nil {
		return nil, apperr.Validation("next_service is only accepted when completing a service record")
	}

	if err := s.repo.UpdateStatus(ctx, id, rec.Status, next, upcoming); err != nil {
		return nil, err
	}
	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &StatusResult{Record: updated, NextService: upcoming}, nil
}

// record loads a service record owned by the caller's company.
func (s *service) record(ctx context.Context, id uuid.UUID) (*ServiceRecord, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := tenant.Check(ctx, rec.CompanyID, "service record", id); err != nil {
		return nil, err
	}
	return rec, nil
}

// resolveItems prices each input line against companyID's catalog. Lines
// without a unit price take the catalog price; custom lines keep the price
// they were given.
func (s *service) resolveItems(ctx context.Context, companyID uuid.UUID, in []LineItemInput) ([]costing.LineItem, error) {
	out := make([]costing.LineItem, 0, len(in))
	for i, li := range in {
		componentID, err := ids.Parse(li.ComponentID, "component_id")
		if err != nil {
			return nil, apperr.Validation("line %d: invalid component_id", i+1)
		}
		entry, err := s.catalog.CatalogEntry(ctx, componentID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return nil, apperr.Validation("line %d: component %s not found", i+1, componentID)
			}
			return nil, err
		}
		if err := entry.BelongsTo(companyID); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		item := costing.SelectComponent(costing.LineItem{Quantity: li.Quantity}, entry)
		if li.UnitPrice != nil && li.CustomPrice {
			if item, err = costing.OverridePrice(item, *li.UnitPrice); err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
		} else if li.UnitPrice != nil {
			item.UnitPrice = *li.UnitPrice
		}
		if err := costing.ValidateLine(i+1, item); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *service) compute(ctx context.Context, companyID uuid.UUID, items []costing.LineItem, labor decimal.Decimal, technicianID *uuid.UUID) (costing.CostBreakdown, error) {
	var tech *costing.Technician
	if technicianID != nil {
		var err error
		if tech, err = s.technicians.CostingTechnician(ctx, *technicianID); err != nil {
			return costing.CostBreakdown{}, err
		}
	}
	return costing.Compute(costing.CostRequest{CompanyID: companyID, LineItems: items, LaborCost: labor, Technician: tech})
}

// attachCosts fills rec.Costs from the stored figures. Records without a
// stored labor cost get one derived from the total; a derivation that goes
// negative is reported in CostWarning instead of failing the read.
func (s *service) attachCosts(ctx context.Context, rec *ServiceRecord, techs map[uuid.UUID]*costing.Technician) error {
	items := storedItems(rec.LineItems)
	labor := rec.LaborCost.Decimal
	if !rec.LaborCost.Valid {
		derived, err := costing.DeriveLaborCost(rec.TotalCost, items)
		if err != nil {
			rec.CostWarning = err.Error()
			return nil
		}
		labor = derived
	}

	var tech *costing.Technician
	if rec.TechnicianID != nil {
		var ok bool
		if tech, ok = techs[*rec.TechnicianID]; !ok {
			t, err := s.technicians.CostingTechnician(ctx, *rec.TechnicianID)
			if err != nil {
				return err
			}
			techs[*rec.TechnicianID], tech = t, t
		}
	}
	costs, err := costing.Compute(costing.CostRequest{LineItems: items, LaborCost: labor, Technician: tech})
	if err != nil {
		rec.CostWarning = err.Error()
		return nil
	}
	rec.Costs = &costs
	return nil
}

func storedItems(items []LineItem) []costing.LineItem {
	out := make([]costing.LineItem, len(items))
	for i, li := range items {
		out[i] = li.LineItem
	}
	return out
}

func lineItems(items []costing.LineItem) []LineItem {
	out := make([]LineItem, len(items))
	for i, li := range items {
		out[i] = LineItem{ID: uuid.New(), LineItem: li, LineCost: costing.LineCost(li), Position: i}
	}
	return out
}

func validOdometer(v *int) error {
	if v != nil && *v < 0 {
		return apperr.Validation("odometer must be >= 0")
	}
	return nil
}
