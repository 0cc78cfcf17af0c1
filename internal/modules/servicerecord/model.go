package servicerecord

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/georgemunganga/autoservice-backend/internal/modules/costing"
	"github.com/georgemunganga/autoservice-backend/internal/modules/scheduling"
)

// Status represents the lifecycle state of a service record.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var validTransitions = map[Status][]Status{
	StatusPending:    {StatusInProgress, StatusCompleted, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

func (s Status) Valid() bool {
	_, ok := validTransitions[s]
	return ok
}

// CanTransition returns true if the transition from current to next is valid.
func CanTransition(current, next Status) bool {
	for _, s := range validTransitions[current] {
		if s == next {
			return true
		}
	}
	return false
}

// LineItem is a stored component usage on a record.
type LineItem struct {
	ID uuid.UUID `json:"id"`
	costing.LineItem
	ComponentName string          `json:"component_name,omitempty"`
	LineCost      decimal.Decimal `json:"line_cost"`
	Position      int             `json:"position"`
}

// ServiceRecord is a visit of a vehicle to the shop.
// LaborCost is null for records that only stored a combined total; Costs
// then carries a labor figure derived from the total.
type ServiceRecord struct {
	ID                uuid.UUID              `json:"id"`
	CompanyID         uuid.UUID              `json:"company_id"`
	VehicleID         uuid.UUID              `json:"vehicle_id"`
	CustomerID        uuid.UUID              `json:"customer_id"`
	TechnicianID      *uuid.UUID             `json:"technician_id,omitempty"`
	UpcomingServiceID *uuid.UUID             `json:"upcoming_service_id,omitempty"`
	Description       string                 `json:"description"`
	ServiceDate       time.Time              `json:"service_date"`
	Status            Status                 `json:"status"`
	LaborCost         decimal.NullDecimal    `json:"labor_cost"`
	TotalCost         decimal.Decimal        `json:"total_cost"`
	Odometer          *int                   `json:"odometer,omitempty"`
	LineItems         []LineItem             `json:"line_items"`
	Costs             *costing.CostBreakdown `json:"costs,omitempty"`
	CostWarning       string                 `json:"cost_warning,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

// LineItemInput is one line as sent by the client. A missing unit price
// takes the component's catalog price; CustomPrice marks a hand-edited one.
type LineItemInput struct {
	ComponentID string           `json:"component_id"`
	Quantity    int              `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	CustomPrice bool             `json:"custom_price"`
}

// CreateRequest is the payload for creating a service record.
type CreateRequest struct {
	CompanyID    string                       `json:"company_id"`
	VehicleID    string                       `json:"vehicle_id"`
	CustomerID   string                       `json:"customer_id"`
	TechnicianID string                       `json:"technician_id,omitempty"`
	Description  string                       `json:"description"`
	ServiceDate  time.Time                    `json:"service_date"`
	Status       string                       `json:"status,omitempty"`
	LaborCost    decimal.Decimal              `json:"labor_cost"`
	Odometer     *int                         `json:"odometer,omitempty"`
	LineItems    []LineItemInput              `json:"line_items"`
	NextService  *scheduling.NextServiceInput `json:"next_service,omitempty"`
}

// UpdateRequest replaces the editable fields and all line items. A nil
// LaborCost keeps the stored labor, deriving it from the old total when the
// record never stored one.
type UpdateRequest struct {
	TechnicianID string           `json:"technician_id,omitempty"`
	Description  string           `json:"description"`
	ServiceDate  time.Time        `json:"service_date"`
	LaborCost    *decimal.Decimal `json:"labor_cost,omitempty"`
	Odometer     *int             `json:"odometer,omitempty"`
	LineItems    []LineItemInput  `json:"line_items"`
}

// UpdateStatusRequest moves a record to a new status. NextService is only
// read when completing.
type UpdateStatusRequest struct {
	Status      string                       `json:"status"`
	NextService *scheduling.NextServiceInput `json:"next_service,omitempty"`
}

// StatusResult reports a status change and the follow-up visit it planned.
type StatusResult struct {
	Record      *ServiceRecord              `json:"service_record"`
	NextService *scheduling.UpcomingService `json:"next_service,omitempty"`
}

// ListFilter narrows List. Zero values are ignored.
type ListFilter struct {
	CompanyID uuid.UUID
	VehicleID uuid.UUID
	Status    Status
	From      time.Time
	To        time.Time
}
