package customer

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/georgemunganga/autoservice-backend/internal/platform/apperr"
	"github.com/georgemunganga/autoservice-backend/internal/platform/tenant"
)

type Service interface {
	CreateCustomer(ctx context.Context, req CustomerRequest) (*Customer, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*Customer, error)
	ListCustomers(ctx context.Context, companyID uuid.UUID, search string) ([]*Customer, error)
	UpdateCustomer(ctx context.Context, id uuid.UUID, req CustomerRequest) (*Customer, error)

	AddVehicle(ctx context.Context, customerID uuid.UUID, req VehicleRequest) (*Vehicle, error)
	GetVehicle(ctx context.Context, id uuid.UUID) (*Vehicle, error)
	ListVehicles(ctx context.Context, customerID uuid.UUID) ([]*Vehicle, error)
	RecordOdometer(ctx context.Context, id uuid.UUID, req OdometerRequest) (*Vehicle, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateCustomer(ctx context.Context, req CustomerRequest) (*Customer, error) {
	companyID, err := tenant.Resolve(ctx, req.CompanyID)
	if err != nil {
		return nil, err
	}
	c := &Customer{ID: uuid.New(), CompanyID: companyID}
	if err := applyCustomer(c, req); err != nil {
		return nil, err
	}
	if err := s.repo.CreateCustomer(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetCustomer returns the customer together with their vehicles.
func (s *service) GetCustomer(ctx context.Context, id uuid.UUID) (*Customer, error) {
	c, err := s.customer(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Vehicles, err = s.repo.ListVehicles(ctx, id)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) ListCustomers(ctx context.Context, companyID uuid.UUID, search string) ([]*Customer, error) {
	return s.repo.ListCustomers(ctx, companyID, strings.TrimSpace(search))
}

func (s *service) UpdateCustomer(ctx context.Context, id uuid.UUID, req CustomerRequest) (*Customer, error) {
	c, err := s.customer(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyCustomer(c, req); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateCustomer(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) customer(ctx context.Context, id uuid.UUID) (*Customer, error) {
	c, err := s.repo.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := tenant.Check(ctx, c.CompanyID, "customer", id); err != nil {
		return nil, err
	}
	return c, nil
}

func applyCustomer(c *Customer, req CustomerRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return apperr.Validation("name is required")
	}
	c.Name = name
	c.Phone = strings.TrimSpace(req.Phone)
	c.Email = strings.ToLower(strings.TrimSpace(req.Email))
	c.Notes = req.Notes
	return nil
}

func (s *service) AddVehicle(ctx context.Context, customerID uuid.UUID, req VehicleRequest) (*Vehicle, error) {
	owner, err := s.customer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	plate := normalizePlate(req.Plate)
	if plate == "" {
		return nil, apperr.Validation("plate is required")
	}
	if req.Odometer < 0 {
		return nil, apperr.Validation("odometer must be >= 0")
	}
	if req.Year != nil && (*req.Year < 1900 || *req.Year > 2100) {
		return nil, apperr.Validation("year %d is out of range", *req.Year)
	}

	v := &Vehicle{
		ID:         uuid.New(),
		CompanyID:  owner.CompanyID,
		CustomerID: owner.ID,
		Plate:      plate,
		Make:       strings.TrimSpace(req.Make),
		Model:      strings.TrimSpace(req.Model),
		Year:       req.Year,
		VIN:        strings.ToUpper(strings.TrimSpace(req.VIN)),
		Odometer:   req.Odometer,
	}
	if err := s.repo.CreateVehicle(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) GetVehicle(ctx context.Context, id uuid.UUID) (*Vehicle, error) {
	v, err := s.repo.GetVehicle(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := tenant.Check(ctx, v.CompanyID, "vehicle", id); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) ListVehicles(ctx context.Context, customerID uuid.UUID) ([]*Vehicle, error) {
	if _, err := s.customer(ctx, customerID); err != nil {
		return nil, err
	}
	return s.repo.ListVehicles(ctx, customerID)
}

// RecordOdometer stores a new reading. Readings never go backwards.
func (s *service) RecordOdometer(ctx context.Context, id uuid.UUID, req OdometerRequest) (*Vehicle, error) {
	v, err := s.GetVehicle(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Odometer < v.Odometer {
		return nil, apperr.Validation("odometer %d is below current reading %d", req.Odometer, v.Odometer)
	}
	if err := s.repo.UpdateOdometer(ctx, id, req.Odometer); err != nil {
		return nil, err
	}
	v.Odometer = req.Odometer
	return v, nil
}

// normalizePlate collapses whitespace and upper-cases so "34 abc 12" and
// "34  ABC 12" collide on the unique index.
func normalizePlate(p string) string {
	return strings.ToUpper(strings.Join(strings.Fields(p), " "))
}
