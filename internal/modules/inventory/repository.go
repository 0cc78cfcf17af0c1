package inventory

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for components and their price history.
type Repository interface {
	// Create inserts the component together with its initial_price history entry.
	Create(ctx context.Context, c *Component) error
	GetByID(ctx context.Context, id uuid.UUID) (*Component, error)
	List(ctx context.Context, companyID uuid.UUID, search string) ([]*Component, error)

	// UpdatePrice sets a new price and appends the history entry atomically.
	UpdatePrice(ctx context.Context, entry *PriceHistoryEntry) error
	PriceHistory(ctx context.Context, componentID uuid.UUID) ([]*PriceHistoryEntry, error)

	SetStock(ctx context.Context, id uuid.UUID, stock int) error
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) error

	// LowStock lists components whose stock is at or below the reorder level.
	LowStock(ctx context.Context, companyID uuid.UUID) ([]*Component, error)
}
