package servicerecord

import (
	"context"

	"github.com/google/uuid"

	"github.com/georgemunganga/autoservice-backend/internal/modules/scheduling"
)

// Repository defines data access for service records.
type Repository interface {
	// Create persists the record and its items atomically. A non-nil next
	// visit is inserted in the same transaction.
	Create(ctx context.Context, rec *ServiceRecord, next *scheduling.UpcomingService) error

	// GetByID returns a record with its line items.
	GetByID(ctx context.Context, id uuid.UUID) (*ServiceRecord, error)

	// List returns records with their line items, newest first. Either
	// CompanyID or VehicleID must be set.
	List(ctx context.Context, f ListFilter) ([]*ServiceRecord, error)

	// Update rewrites the record fields and replaces its line items.
	Update(ctx context.Context, rec *ServiceRecord) error

	// UpdateStatus moves the record from one status to another, inserting
	// next (when non-nil) in the same transaction.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status, next *scheduling.UpcomingService) error
}
