package customer

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for customers and their vehicles.
type Repository interface {
	CreateCustomer(ctx context.Context, c *Customer) error
	GetCustomer(ctx context.Context, id uuid.UUID) (*Customer, error)
	ListCustomers(ctx context.Context, companyID uuid.UUID, search string) ([]*Customer, error)
	UpdateCustomer(ctx context.Context, c *Customer) error

	CreateVehicle(ctx context.Context, v *Vehicle) error
	GetVehicle(ctx context.Context, id uuid.UUID) (*Vehicle, error)
	ListVehicles(ctx context.Context, customerID uuid.UUID) ([]*Vehicle, error)
	UpdateOdometer(ctx context.Context, id uuid.UUID, odometer int) error
}
