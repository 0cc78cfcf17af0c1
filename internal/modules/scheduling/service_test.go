package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/autoservice-backend/internal/platform/apperr"
	"github.com/georgemunganga/autoservice-backend/internal/platform/tenant"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, s *UpcomingService) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*UpcomingService, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*UpcomingService), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, f ListFilter) ([]*UpcomingService, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*UpcomingService), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) error {
	return m.Called(ctx, id, from, to).Error(0)
}

func (m *MockRepository) MarkArrived(ctx context.Context, id uuid.UUID, from Status, draft ServiceRecordDraft) error {
	return m.Called(ctx, id, from, draft).Error(0)
}

func (m *MockRepository) Reschedule(ctx context.Context, s *UpcomingService, from Status) error {
	return m.Called(ctx, s, from).Error(0)
}

func newTestService(repo Repository) *service {
	s := NewService(repo, 45).(*service)
	s.now = func() time.Time { return time.Date(2025, 6, 2, 9, 5, 0, 0, time.UTC) }
	return s
}

func TestService_Create(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*scheduling.UpcomingService")).Return(nil)

	svc, err := newTestService(repo).Create(context.Background(), CreateRequest{
		CompanyID:   uuid.NewString(),
		VehicleID:   uuid.NewString(),
		CustomerID:  uuid.NewString(),
		PlannedAt:   time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC),
		ServiceType: "  Brake check ",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusScheduled, svc.Status)
	assert.Equal(t, 45, svc.DurationMinutes)
	assert.Equal(t, "Brake check", svc.ServiceType)
	repo.AssertExpectations(t)
}

func TestService_CreateValidation(t *testing.T) {
	repo := new(MockRepository)
	s := newTestService(repo)
	base := CreateRequest{
		CompanyID:   uuid.NewString(),
		VehicleID:   uuid.NewString(),
		CustomerID:  uuid.NewString(),
		PlannedAt:   time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC),
		ServiceType: "Brake check",
	}

	bad := base
	bad.VehicleID = "not-a-uuid"
	_, err := s.Create(context.Background(), bad)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	bad = base
	bad.PlannedAt = time.Time{}
	_, err = s.Create(context.Background(), bad)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	bad = base
	bad.ServiceType = " "
	_, err = s.Create(context.Background(), bad)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_UpdateStatus_Confirm(t *testing.T) {
	repo := new(MockRepository)
	current := visit(StatusScheduled)
	confirmed := current
	confirmed.Status = StatusConfirmed

	repo.On("GetByID", mock.Anything, current.ID).Return(&current, nil).Once()
	repo.On("UpdateStatus", mock.Anything, current.ID, StatusScheduled, StatusConfirmed).Return(nil)
	repo.On("GetByID", mock.Anything, current.ID).Return(&confirmed, nil).Once()

	res, err := newTestService(repo).UpdateStatus(context.Background(), current.ID, UpdateStatusRequest{Status: "CONFIRMED"})
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, res.Service.Status)
	assert.Nil(t, res.ServiceRecordID)
	repo.AssertNotCalled(t, "MarkArrived", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestService_UpdateStatus_CustomerArrived(t *testing.T) {
	repo := new(MockRepository)
	current := visit(StatusConfirmed)
	arrived := current
	arrived.Status = StatusCustomerArrived

	var draft ServiceRecordDraft
	repo.On("GetByID", mock.Anything, current.ID).Return(&current, nil).Once()
	repo.On("MarkArrived", mock.Anything, current.ID, StatusConfirmed, mock.AnythingOfType("scheduling.ServiceRecordDraft")).
		Run(func(args mock.Arguments) { draft = args.Get(3).(ServiceRecordDraft) }).
		Return(nil)
	repo.On("GetByID", mock.Anything, current.ID).Return(&arrived, nil).Once()

	res, err := newTestService(repo).UpdateStatus(context.Background(), current.ID, UpdateStatusRequest{Status: "customer_arrived"})
	require.NoError(t, err)
	require.NotNil(t, res.ServiceRecordID)
	assert.Equal(t, draft.ID, *res.ServiceRecordID)
	assert.Equal(t, current.VehicleID, draft.VehicleID)
	assert.Equal(t, time.Date(2025, 6, 2, 9, 5, 0, 0, time.UTC), draft.ServiceDate)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestService_UpdateStatus_SpawnFailureSurfaces(t *testing.T) {
	repo := new(MockRepository)
	current := visit(StatusScheduled)
	spawnErr := apperr.Dependency("open service record for arrived customer", errors.New("disk full"))

	repo.On("GetByID", mock.Anything, current.ID).Return(&current, nil).Once()
	repo.On("MarkArrived", mock.Anything, current.ID, StatusScheduled, mock.Anything).Return(spawnErr)

	res, err := newTestService(repo).UpdateStatus(context.Background(), current.ID, UpdateStatusRequest{Status: "customer_arrived"})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, apperr.ErrDependency)
	repo.AssertExpectations(t)
}

func TestService_UpdateStatus_IllegalTransition(t *testing.T) {
	repo := new(MockRepository)
	current := visit(StatusCancelled)
	repo.On("GetByID", mock.Anything, current.ID).Return(&current, nil)

	_, err := newTestService(repo).UpdateStatus(context.Background(), current.ID, UpdateStatusRequest{Status: "customer_arrived"})
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
	repo.AssertNotCalled(t, "MarkArrived", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Reschedule(t *testing.T) {
	repo := new(MockRepository)
	current := visit(StatusNoShow)
	slot := time.Date(2025, 6, 10, 11, 0, 0, 0, time.UTC)

	repo.On("GetByID", mock.Anything, current.ID).Return(&current, nil)
	repo.On("Reschedule", mock.Anything, mock.MatchedBy(func(s *UpcomingService) bool {
		return s.ID == current.ID && s.Status == StatusScheduled && s.PlannedAt.Equal(slot)
	}), StatusNoShow).Return(nil)

	got, err := newTestService(repo).Reschedule(context.Background(), current.ID, RescheduleRequest{PlannedAt: &slot})
	require.NoError(t, err)
	assert.Equal(t, StatusScheduled, got.Status)
	repo.AssertExpectations(t)
}

func TestService_Week(t *testing.T) {
	repo := new(MockRepository)
	companyID := uuid.New()
	s := visit(StatusScheduled)
	s.PlannedAt = time.Date(2025, 6, 5, 10, 0, 0, 0, time.UTC)

	repo.On("List", mock.Anything, ListFilter{
		CompanyID: companyID,
		From:      time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		To:        time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC),
	}).Return([]*UpcomingService{&s}, nil)

	week, err := newTestService(repo).Week(context.Background(), companyID, time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, week.Days[3].Services, 1)
	repo.AssertExpectations(t)
}

func TestService_HidesAnotherCompanysVisits(t *testing.T) {
	repo := new(MockRepository)
	current := visit(StatusScheduled)
	repo.On("GetByID", mock.Anything, current.ID).Return(&current, nil)
	s := newTestService(repo)
	ctx := tenant.WithScope(context.Background(), tenant.Scope{UserID: uuid.New(), CompanyID: uuid.New()})

	_, err := s.Get(ctx, current.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = s.UpdateStatus(ctx, current.ID, UpdateStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	later := current.PlannedAt.Add(time.Hour)
	_, err = s.Reschedule(ctx, current.ID, RescheduleRequest{PlannedAt: &later})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = s.List(ctx, ListFilter{CompanyID: current.CompanyID})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Reschedule", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_WeekUsesCallerCompany(t *testing.T) {
	repo := new(MockRepository)
	own := uuid.New()
	repo.On("List", mock.Anything, mock.MatchedBy(func(f ListFilter) bool { return f.CompanyID == own })).
		Return([]*UpcomingService{}, nil)
	ctx := tenant.WithScope(context.Background(), tenant.Scope{UserID: uuid.New(), CompanyID: own})

	_, err := newTestService(repo).Week(ctx, uuid.Nil, time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
