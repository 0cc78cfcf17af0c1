package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// DefaultDurationMinutes is used when a visit is planned without a duration
// and no other default is configured.
const DefaultDurationMinutes = 60

// Status represents the lifecycle state of an upcoming service.
type Status string

const (
	StatusScheduled       Status = "scheduled"
	StatusConfirmed       Status = "confirmed"
	StatusCancelled       Status = "cancelled"
	StatusCustomerArrived Status = "customer_arrived"
	StatusNoShow          Status = "no_show"
)

// validTransitions defines the allowed status changes. Rescheduling out of
// cancelled/no_show is a separate action, see CanReschedule.
var validTransitions = map[Status][]Status{
	StatusScheduled:       {StatusConfirmed, StatusCustomerArrived, StatusCancelled, StatusNoShow},
	StatusConfirmed:       {StatusCustomerArrived, StatusCancelled, StatusNoShow},
	StatusCancelled:       {},
	StatusNoShow:          {},
	StatusCustomerArrived: {},
}

// Valid reports whether s is a known status.
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

// CanReschedule returns true if a visit in status s may be given a new date.
func CanReschedule(s Status) bool {
	return s == StatusCancelled || s == StatusNoShow
}

// UpcomingService is a planned future visit of a vehicle.
type UpcomingService struct {
	ID              uuid.UUID  `json:"id"`
	CompanyID       uuid.UUID  `json:"company_id"`
	VehicleID       uuid.UUID  `json:"vehicle_id"`
	CustomerID      uuid.UUID  `json:"customer_id"`
	PlannedAt       time.Time  `json:"planned_at"`
	DurationMinutes int        `json:"duration_minutes"`
	ServiceType     string     `json:"service_type"`
	TargetOdometer  *int       `json:"target_odometer,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	Status          Status     `json:"status"`
	ServiceRecordID *uuid.UUID `json:"service_record_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ServiceRecordDraft is the service record created when a customer arrives.
type ServiceRecordDraft struct {
	ID                uuid.UUID `json:"id"`
	CompanyID         uuid.UUID `json:"company_id"`
	VehicleID         uuid.UUID `json:"vehicle_id"`
	CustomerID        uuid.UUID `json:"customer_id"`
	UpcomingServiceID uuid.UUID `json:"upcoming_service_id"`
	Description       string    `json:"description"`
	ServiceDate       time.Time `json:"service_date"`
	Status            string    `json:"status"`
}

// DraftRecordStatus is the status a spawned service record starts in.
const DraftRecordStatus = "in_progress"

// TransitionRequest asks the status machine to move Service from From to To.
// At is the moment the change happens.
type TransitionRequest struct {
	From    Status
	To      Status
	Service UpcomingService
	At      time.Time
}

// TransitionOutcome is the result of a legal transition.
type TransitionOutcome struct {
	NewStatus            Status              `json:"new_status"`
	SpawnedServiceRecord *ServiceRecordDraft `json:"spawned_service_record,omitempty"`
}

// Origin identifies the vehicle a follow-up visit is planned for.
type Origin struct {
	CompanyID  uuid.UUID
	VehicleID  uuid.UUID
	CustomerID uuid.UUID
}

// NextServiceInput carries the follow-up visit entered when a service record
// is completed. PlannedDate accepts YYYY-MM-DD or RFC3339.
type NextServiceInput struct {
	PlannedDate     string `json:"planned_date"`
	ServiceType     string `json:"service_type"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
	TargetOdometer  *int   `json:"target_odometer,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// CreateRequest is the payload for scheduling a visit by hand.
type CreateRequest struct {
	CompanyID       string    `json:"company_id"`
	VehicleID       string    `json:"vehicle_id"`
	CustomerID      string    `json:"customer_id"`
	PlannedAt       time.Time `json:"planned_at"`
	DurationMinutes int       `json:"duration_minutes,omitempty"`
	ServiceType     string    `json:"service_type"`
	TargetOdometer  *int      `json:"target_odometer,omitempty"`
	Notes           string    `json:"notes,omitempty"`
}

// UpdateStatusRequest is the payload for PATCH /upcoming-services/{id}/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// StatusResult is returned after a status change. ServiceRecordID is set when
// the change opened a service record.
type StatusResult struct {
	Service         *UpcomingService `json:"upcoming_service"`
	ServiceRecordID *uuid.UUID       `json:"service_record_id,omitempty"`
}

// RescheduleRequest gives a cancelled or missed visit a new slot.
type RescheduleRequest struct {
	PlannedAt       *time.Time `json:"planned_at"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	ServiceType     *string    `json:"service_type,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
}

// ListFilter narrows List. Zero values are ignored.
type ListFilter struct {
	CompanyID uuid.UUID
	VehicleID uuid.UUID
	Status    Status
	From      time.Time
	To        time.Time
}

// Day is one column of the weekly calendar.
type Day struct {
	Date     string             `json:"date"`
	Weekday  string             `json:"weekday"`
	Services []*UpcomingService `json:"services"`
}

// Week is the Monday-to-Sunday calendar view.
type Week struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Days  []Day     `json:"days"`
}
