package scheduling

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/autoservice-backend/internal/platform/apperr"
	"github.com/georgemunganga/autoservice-backend/internal/platform/ids"
	"github.com/georgemunganga/autoservice-backend/internal/platform/tenant"
)

// Service defines upcoming-service business logic.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*UpcomingService, error)
	Get(ctx context.Context, id uuid.UUID) (*UpcomingService, error)
	List(ctx context.Context, f ListFilter) ([]*UpcomingService, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*StatusResult, error)
	Reschedule(ctx context.Context, id uuid.UUID, req RescheduleRequest) (*UpcomingService, error)
	Week(ctx context.Context, companyID uuid.UUID, anchor time.Time) (Week, error)
}

type service struct {
	repo            Repository
	defaultDuration int
	now             func() time.Time
}

// NewService returns a Service. defaultDuration applies to visits created
// without a duration.
func NewService(repo Repository, defaultDuration int) Service {
	if defaultDuration <= 0 {
		defaultDuration = DefaultDurationMinutes
	}
	return &service{repo: repo, defaultDuration: defaultDuration, now: time.Now}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*UpcomingService, error) {
	companyID, err := tenant.Resolve(ctx, req.CompanyID)
	if err != nil {
		return nil, err
	}
	vehicleID, err := ids.Parse(req.VehicleID, "vehicle_id")
	if err != nil {
		return nil, err
	}
	customerID, err := ids.Parse(req.CustomerID, "customer_id")
	if err != nil {
		return nil, err
	}
	if req.PlannedAt.IsZero() {
		return nil, apperr.Validation("planned_at is required")
	}
	serviceType := strings.TrimSpace(req.ServiceType)
	if serviceType == "" {
		return nil, apperr.Validation("service_type is required")
	}
	if req.DurationMinutes < 0 {
		return nil, apperr.Validation("duration_minutes must be > 0")
	}
	if req.TargetOdometer != nil && *req.TargetOdometer < 0 {
		return nil, apperr.Validation("target_odometer must be >= 0")
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = s.defaultDuration
	}
	svc := &UpcomingService{
		ID:              uuid.New(),
		CompanyID:       companyID,
		VehicleID:       vehicleID,
		CustomerID:      customerID,
		PlannedAt:       req.PlannedAt,
		DurationMinutes: duration,
		ServiceType:     serviceType,
		TargetOdometer:  req.TargetOdometer,
		Notes:           req.Notes,
		Status:          StatusScheduled,
	}
	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*UpcomingService, error) {
	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := tenant.Check(ctx, svc.CompanyID, "upcoming service", id); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *service) List(ctx context.Context, f ListFilter) ([]*UpcomingService, error) {
	var err error
	if f.CompanyID, err = tenant.Narrow(ctx, f.CompanyID); err != nil {
		return nil, err
	}
	if f.CompanyID == uuid.Nil {
		return nil, apperr.Validation("company_id is required")
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, apperr.Validation("unknown status %q", f.Status)
	}
	return s.repo.List(ctx, f)
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*StatusResult, error) {
	if req.Status == "" {
		return nil, apperr.Validation("status is required")
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next := Status(strings.ToLower(strings.TrimSpace(req.Status)))
	out, err := Transition(TransitionRequest{From: current.Status, To: next, Service: *current, At: s.now()})
	if err != nil {
		return nil, err
	}

	result := &StatusResult{}
	if draft := out.SpawnedServiceRecord; draft != nil {
		if err := s.repo.MarkArrived(ctx, id, current.Status, *draft); err != nil {
			return nil, err
		}
		result.ServiceRecordID = &draft.ID
	} else if err := s.repo.UpdateStatus(ctx, id, current.Status, out.NewStatus); err != nil {
		return nil, err
	}

	if result.Service, err = s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) Reschedule(ctx context.Context, id uuid.UUID, req RescheduleRequest) (*UpcomingService, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := Reschedule(*current, req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Reschedule(ctx, &next, current.Status); err != nil {
		return nil, err
	}
	return &next, nil
}

func (s *service) Week(ctx context.Context, companyID uuid.UUID, anchor time.Time) (Week, error) {
	companyID, err := tenant.Narrow(ctx, companyID)
	if err != nil {
		return Week{}, err
	}
	if companyID == uuid.Nil {
		return Week{}, apperr.Validation("company_id is required")
	}
	start := WeekStart(anchor)
	services, err := s.repo.List(ctx, ListFilter{
		CompanyID: companyID,
		From:      start,
		To:        start.AddDate(0, 0, 7),
	})
	if err != nil {
		return Week{}, err
	}
	return BuildWeek(anchor, services), nil
}
