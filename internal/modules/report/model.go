package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/georgemunganga/autoservice-backend/internal/modules/costing"
)

// Period is a half-open date range [From, To).
type Period struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// CompletedRecord is the cost snapshot of one completed service record.
type CompletedRecord struct {
	ID                 uuid.UUID
	TechnicianID       *uuid.UUID
	TechnicianName     string
	EarningsPercentage decimal.NullDecimal
	LaborCost          decimal.NullDecimal
	TotalCost          decimal.Decimal
	LineItems          []costing.LineItem
}

// Revenue summarises completed work in a period.
type Revenue struct {
	Period
	RecordCount  int             `json:"record_count"`
	PartsTotal   decimal.Decimal `json:"parts_total"`
	LaborTotal   decimal.Decimal `json:"labor_total"`
	RevenueTotal decimal.Decimal `json:"revenue_total"`
	// Unreconciled counts records whose stored total is below their parts
	// cost; their labor is left out of LaborTotal.
	Unreconciled int `json:"unreconciled"`
}

// TechnicianEarnings is one technician's share of labor in a period.
type TechnicianEarnings struct {
	TechnicianID       uuid.UUID       `json:"technician_id"`
	Name               string          `json:"name"`
	EarningsPercentage decimal.Decimal `json:"earnings_percentage"`
	RecordCount        int             `json:"record_count"`
	LaborTotal         decimal.Decimal `json:"labor_total"`
	Earnings           decimal.Decimal `json:"earnings"`
}

type EarningsReport struct {
	Period
	Technicians []*TechnicianEarnings `json:"technicians"`
	Total       decimal.Decimal       `json:"total"`
}
