package customer

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a vehicle owner served by the shop.
type Customer struct {
	ID        uuid.UUID  `json:"id"`
	CompanyID uuid.UUID  `json:"company_id"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone,omitempty"`
	Email     string     `json:"email,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	Vehicles  []*Vehicle `json:"vehicles,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Vehicle belongs to one customer. Plates are unique within a company.
type Vehicle struct {
	ID         uuid.UUID `json:"id"`
	CompanyID  uuid.UUID `json:"company_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Plate      string    `json:"plate"`
	Make       string    `json:"make,omitempty"`
	Model      string    `json:"model,omitempty"`
	Year       *int      `json:"year,omitempty"`
	VIN        string    `json:"vin,omitempty"`
	Odometer   int       `json:"odometer"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CustomerRequest is the payload for creating or replacing a customer.
type CustomerRequest struct {
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Notes     string `json:"notes"`
}

// VehicleRequest is the payload for registering a vehicle.
type VehicleRequest struct {
	Plate    string `json:"plate"`
	Make     string `json:"make"`
	Model    string `json:"model"`
	Year     *int   `json:"year,omitempty"`
	VIN      string `json:"vin"`
	Odometer int    `json:"odometer"`
}

// OdometerRequest records a new odometer reading.
type OdometerRequest struct {
	Odometer int `json:"odometer"`
}
