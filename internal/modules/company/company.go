package company

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCurrency is used when a company is created without one.
const DefaultCurrency = "TRY"

// Company is a shop; it owns every customer, vehicle and record.
type Company struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id,omitempty"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateRequest is the payload for POST /api/v1/companies.
type CreateRequest struct {
	Name     string `json:"name"`
	TaxID    string `json:"tax_id"`
	Currency string `json:"currency,omitempty"`
}
