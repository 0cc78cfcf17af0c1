package scheduling

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/autoservice-backend/internal/platform/apperr"
)

// Transition validates req and returns the resulting status. Moving to
// customer_arrived also returns the service record that must be created in
// the same unit of work as the status change.
func Transition(req TransitionRequest) (TransitionOutcome, error) {
	if !req.To.Valid() {
		return TransitionOutcome{}, apperr.Validation("unknown status %q", req.To)
	}
	if !CanTransition(req.From, req.To) {
		return TransitionOutcome{}, apperr.Transition("cannot transition upcoming service from %s to %s", req.From, req.To)
	}
	out := TransitionOutcome{NewStatus: req.To}
	if req.To != StatusCustomerArrived {
		return out, nil
	}

	svc := req.Service
	if svc.ID == uuid.Nil || svc.VehicleID == uuid.Nil || svc.CustomerID == uuid.Nil || svc.CompanyID == uuid.Nil {
		return TransitionOutcome{}, apperr.Validation("upcoming service must reference company, vehicle and customer")
	}
	at := req.At
	if at.IsZero() {
		at = time.Now()
	}
	out.SpawnedServiceRecord = &ServiceRecordDraft{
		ID:                uuid.New(),
		CompanyID:         svc.CompanyID,
		VehicleID:         svc.VehicleID,
		CustomerID:        svc.CustomerID,
		UpcomingServiceID: svc.ID,
		Description:       svc.ServiceType,
		ServiceDate:       at,
		Status:            DraftRecordStatus,
	}
	return out, nil
}

// Reschedule returns svc moved back to scheduled at the requested slot.
// The id and vehicle links are kept.
func Reschedule(svc UpcomingService, req RescheduleRequest) (UpcomingService, error) {
	if !CanReschedule(svc.Status) {
		return UpcomingService{}, apperr.Transition("cannot reschedule upcoming service in status %s", svc.Status)
	}
	if req.PlannedAt == nil || req.PlannedAt.IsZero() {
		return UpcomingService{}, apperr.Validation("planned_at is required")
	}
	svc.PlannedAt = *req.PlannedAt
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			return UpcomingService{}, apperr.Validation("duration_minutes must be > 0")
		}
		svc.DurationMinutes = *req.DurationMinutes
	}
	if req.ServiceType != nil {
		if strings.TrimSpace(*req.ServiceType) == "" {
			return UpcomingService{}, apperr.Validation("service_type must not be empty")
		}
		svc.ServiceType = strings.TrimSpace(*req.ServiceType)
	}
	if req.Notes != nil {
		svc.Notes = *req.Notes
	}
	svc.Status = StatusScheduled
	svc.ServiceRecordID = nil
	return svc, nil
}

// PlanNextService builds the follow-up visit for a completed service record.
// A nil input means the caller chose not to plan one and yields nil. Input
// without a planned date or service type is rejected.
func PlanNextService(origin Origin, input *NextServiceInput, defaultDuration int) (*UpcomingService, error) {
	if input == nil {
		return nil, nil
	}
	if strings.TrimSpace(input.PlannedDate) == "" {
		return nil, apperr.Validation("next_service.planned_date is required")
	}
	serviceType := strings.TrimSpace(input.ServiceType)
	if serviceType == "" {
		return nil, apperr.Validation("next_service.service_type is required")
	}
	plannedAt, err := parsePlanned(input.PlannedDate)
	if err != nil {
		return nil, err
	}
	if input.DurationMinutes < 0 {
		return nil, apperr.Validation("next_service.duration_minutes must be > 0")
	}
	if input.TargetOdometer != nil && *input.TargetOdometer < 0 {
		return nil, apperr.Validation("next_service.target_odometer must be >= 0")
	}

	duration := input.DurationMinutes
	if duration == 0 {
		duration = defaultDuration
	}
	if duration <= 0 {
		duration = DefaultDurationMinutes
	}
	return &UpcomingService{
		ID:              uuid.New(),
		CompanyID:       origin.CompanyID,
		VehicleID:       origin.VehicleID,
		CustomerID:      origin.CustomerID,
		PlannedAt:       plannedAt,
		DurationMinutes: duration,
		ServiceType:     serviceType,
		TargetOdometer:  input.TargetOdometer,
		Notes:           input.Notes,
		Status:          StatusScheduled,
	}, nil
}

func parsePlanned(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Time{}, apperr.Validation("invalid next_service.planned_date %q, use YYYY-MM-DD or RFC3339", s)
}

// WeekStart returns midnight of the Monday on or before t, in t's location.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}

// BuildWeek buckets services into the seven days of the week containing
// anchor. Services outside the week are dropped; each day is ordered by time.
func BuildWeek(anchor time.Time, services []*UpcomingService) Week {
	start := WeekStart(anchor)
	end := start.AddDate(0, 0, 7)
	loc := anchor.Location()

	week := Week{Start: start, End: end, Days: make([]Day, 7)}
	for i := range week.Days {
		day := start.AddDate(0, 0, i)
		week.Days[i] = Day{
			Date:     day.Format(time.DateOnly),
			Weekday:  day.Weekday().String(),
			Services: []*UpcomingService{},
		}
	}
	for _, s := range services {
		at := s.PlannedAt.In(loc)
		if at.Before(start) || !at.Before(end) {
			continue
		}
		y, m, d := at.Date()
		idx := int(time.Date(y, m, d, 0, 0, 0, 0, loc).Sub(start).Hours()+12) / 24
		week.Days[idx].Services = append(week.Days[idx].Services, s)
	}
	for i := range week.Days {
		svcs := week.Days[i].Services
		sort.SliceStable(svcs, func(a, b int) bool { return svcs[a].PlannedAt.Before(svcs[b].PlannedAt) })
	}
	return week
}
