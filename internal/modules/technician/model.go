package technician

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Specialization is a skill tag a technician can hold, unique per company.
type Specialization struct {
	ID        uuid.UUID `json:"id"`
	CompanyID uuid.UUID `json:"company_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Technician performs service work and earns a share of labor cost.
type Technician struct {
	ID                 uuid.UUID         `json:"id"`
	CompanyID          uuid.UUID         `json:"company_id"`
	Name               string            `json:"name"`
	Phone              string            `json:"phone,omitempty"`
	Active             bool              `json:"active"`
	EarningsPercentage decimal.Decimal   `json:"earnings_percentage"`
	Specializations    []*Specialization `json:"specializations"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

type CreateTechnicianRequest struct {
	CompanyID          string           `json:"company_id"`
	Name               string           `json:"name"`
	Phone              string           `json:"phone"`
	EarningsPercentage *decimal.Decimal `json:"earnings_percentage,omitempty"`
	SpecializationIDs  []string         `json:"specialization_ids"`
}

type EarningsRequest struct {
	EarningsPercentage decimal.Decimal `json:"earnings_percentage"`
}

type ActiveRequest struct {
	Active bool `json:"active"`
}

type SpecializationsRequest struct {
	SpecializationIDs []string `json:"specialization_ids"`
}

type CreateSpecializationRequest struct {
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
}
