package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Component is a spare part kept in the shop's inventory.
type Component struct {
	ID           uuid.UUID       `json:"id"`
	CompanyID    uuid.UUID       `json:"company_id"`
	Name         string          `json:"name"`
	PartNumber   *string         `json:"part_number,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	ReorderLevel int             `json:"reorder_level"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// LowStock reports whether the component should be reordered.
func (c *Component) LowStock() bool { return c.Stock <= c.ReorderLevel }

// PriceReason explains a price change.
type PriceReason string

const (
	ReasonInflation       PriceReason = "inflation"
	ReasonMarketPrice     PriceReason = "market_price"
	ReasonSupplierChange  PriceReason = "supplier_change"
	ReasonDiscount        PriceReason = "discount"
	ReasonExchangeRate    PriceReason = "exchange_rate"
	ReasonPriceAdjustment PriceReason = "price_adjustment"
	ReasonInitialPrice    PriceReason = "initial_price"
	ReasonOther           PriceReason = "other"
)

var validReasons = map[PriceReason]bool{
	ReasonInflation: true, ReasonMarketPrice: true, ReasonSupplierChange: true, ReasonDiscount: true,
	ReasonExchangeRate: true, ReasonPriceAdjustment: true, ReasonInitialPrice: true, ReasonOther: true,
}

// PriceHistoryEntry is one append-only record of a price change.
type PriceHistoryEntry struct {
	ID          uuid.UUID       `json:"id"`
	ComponentID uuid.UUID       `json:"component_id"`
	OldPrice    decimal.Decimal `json:"old_price"`
	NewPrice    decimal.Decimal `json:"new_price"`
	Reason      *PriceReason    `json:"reason,omitempty"`
	ChangedAt   time.Time       `json:"changed_at"`
}

// CreateComponentRequest holds data for adding a component.
type CreateComponentRequest struct {
	CompanyID    string          `json:"company_id"`
	Name         string          `json:"name"`
	PartNumber   string          `json:"part_number,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	ReorderLevel int             `json:"reorder_level"`
}

// UpdatePriceRequest changes a component's catalog price.
type UpdatePriceRequest struct {
	Price  *decimal.Decimal `json:"price"`
	Reason string           `json:"reason,omitempty"`
}

// UpdateStockRequest either sets the stock level or adjusts it by Delta.
type UpdateStockRequest struct {
	Stock *int `json:"stock,omitempty"`
	Delta *int `json:"delta,omitempty"`
}

// LowStockItem is a component at or below its reorder level.
type LowStockItem struct {
	*Component
	Shortfall int `json:"shortfall"`
}
