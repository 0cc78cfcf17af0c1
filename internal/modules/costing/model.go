package costing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/georgemunganga/autoservice-backend/internal/platform/apperr"
)

// DefaultEarningsPercentage applies to technicians with no percentage set.
var DefaultEarningsPercentage = decimal.NewFromInt(30)

var hundred = decimal.NewFromInt(100)

// CatalogEntry is the slice of an inventory component the resolver needs.
type CatalogEntry struct {
	ComponentID uuid.UUID       `json:"component_id"`
	CompanyID   uuid.UUID       `json:"company_id"`
	Price       decimal.Decimal `json:"price"`
}

// LineItem is one component-usage row on a service record.
// CustomPrice is set only when a user edits the price directly; a stored
// price that merely differs from today's catalog price is not custom.
type LineItem struct {
	ComponentID uuid.UUID       `json:"component_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	CustomPrice bool            `json:"custom_price"`
}

// Technician is the slice of a technician the earnings calculator needs.
type Technician struct {
	ID                 uuid.UUID           `json:"id"`
	CompanyID          uuid.UUID           `json:"company_id"`
	EarningsPercentage decimal.NullDecimal `json:"earnings_percentage"`
}

// CostRequest is the input of Compute. When CompanyID is set the
// technician must belong to that company.
type CostRequest struct {
	CompanyID  uuid.UUID
	LineItems  []LineItem
	LaborCost  decimal.Decimal
	Technician *Technician
}

// CostBreakdown is the output of Compute.
type CostBreakdown struct {
	PartsCost          decimal.Decimal `json:"parts_cost"`
	LaborCost          decimal.Decimal `json:"labor_cost"`
	TotalCost          decimal.Decimal `json:"total_cost"`
	TechnicianEarnings decimal.Decimal `json:"technician_earnings"`
}

// QuoteRequest is the HTTP payload for POST /api/v1/costing/quote.
type QuoteRequest struct {
	CompanyID    string          `json:"company_id,omitempty"`
	LineItems    []LineItem      `json:"line_items"`
	LaborCost    decimal.Decimal `json:"labor_cost"`
	TechnicianID string          `json:"technician_id,omitempty"`
}

// ResolveAction names a pricing resolver operation.
type ResolveAction string

const (
	ActionSelect   ResolveAction = "select"
	ActionOverride ResolveAction = "override"
	ActionReset    ResolveAction = "reset"
)

// ResolveRequest is the HTTP payload for POST /api/v1/costing/line-items/resolve.
type ResolveRequest struct {
	CompanyID   string           `json:"company_id,omitempty"`
	Item        LineItem         `json:"item"`
	Action      ResolveAction    `json:"action"`
	ComponentID string           `json:"component_id,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

// ResolveResponse returns the resolved line together with its cost and the
// gap between its price and the current catalog price.
type ResolveResponse struct {
	Item     LineItem        `json:"item"`
	LineCost decimal.Decimal `json:"line_cost"`
	Drift    decimal.Decimal `json:"drift"`
}

// BelongsTo rejects an entry from another company's catalog.
func (e CatalogEntry) BelongsTo(companyID uuid.UUID) error {
	if e.CompanyID != companyID {
		return apperr.Validation("component %s does not belong to this company", e.ComponentID)
	}
	return nil
}

// BelongsTo rejects a technician employed by another company.
func (t *Technician) BelongsTo(companyID uuid.UUID) error {
	if t.CompanyID != companyID {
		return apperr.Validation("technician %s does not belong to this company", t.ID)
	}
	return nil
}
