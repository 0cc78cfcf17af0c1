package scheduling

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/autoservice-backend/internal/platform/apperr"
)

func visit(status Status) UpcomingService {
	return UpcomingService{
		ID:              uuid.New(),
		CompanyID:       uuid.New(),
		VehicleID:       uuid.New(),
		CustomerID:      uuid.New(),
		PlannedAt:       time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		ServiceType:     "Periodic maintenance",
		Status:          status,
	}
}

func TestCanTransition(t *testing.T) {
	all := []Status{StatusScheduled, StatusConfirmed, StatusCancelled, StatusCustomerArrived, StatusNoShow}
	allowed := map[Status]map[Status]bool{
		StatusScheduled: {StatusConfirmed: true, StatusCustomerArrived: true, StatusCancelled: true, StatusNoShow: true},
		StatusConfirmed: {StatusCustomerArrived: true, StatusCancelled: true, StatusNoShow: true},
	}
	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[from][to], CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTransition_ConfirmHasNoSideEffect(t *testing.T) {
	out, err := Transition(TransitionRequest{From: StatusScheduled, To: StatusConfirmed, Service: visit(StatusScheduled)})
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, out.NewStatus)
	assert.Nil(t, out.SpawnedServiceRecord)
}

func TestTransition_CustomerArrivedSpawnsRecord(t *testing.T) {
	at := time.Date(2025, 6, 2, 9, 5, 0, 0, time.UTC)
	for _, from := range []Status{StatusScheduled, StatusConfirmed} {
		svc := visit(from)
		out, err := Transition(TransitionRequest{From: from, To: StatusCustomerArrived, Service: svc, At: at})
		require.NoError(t, err)

		assert.Equal(t, StatusCustomerArrived, out.NewStatus)
		draft := out.SpawnedServiceRecord
		require.NotNil(t, draft)
		assert.NotEqual(t, uuid.Nil, draft.ID)
		assert.Equal(t, svc.CompanyID, draft.CompanyID)
		assert.Equal(t, svc.VehicleID, draft.VehicleID)
		assert.Equal(t, svc.CustomerID, draft.CustomerID)
		assert.Equal(t, svc.ID, draft.UpcomingServiceID)
		assert.Equal(t, DraftRecordStatus, draft.Status)
		assert.Equal(t, at, draft.ServiceDate)
		assert.Equal(t, "Periodic maintenance", draft.Description)
	}
}

func TestTransition_CustomerArrivedRejectedFromTerminalStates(t *testing.T) {
	for _, from := range []Status{StatusCancelled, StatusNoShow, StatusCustomerArrived} {
		_, err := Transition(TransitionRequest{From: from, To: StatusCustomerArrived, Service: visit(from)})
		assert.ErrorIs(t, err, apperr.ErrInvalidTransition, string(from))
	}
}

func TestTransition_UnknownStatus(t *testing.T) {
	_, err := Transition(TransitionRequest{From: StatusScheduled, To: "done"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestTransition_ArrivalNeedsLinks(t *testing.T) {
	svc := visit(StatusScheduled)
	svc.VehicleID = uuid.Nil
	_, err := Transition(TransitionRequest{From: StatusScheduled, To: StatusCustomerArrived, Service: svc})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestReschedule(t *testing.T) {
	newSlot := time.Date(2025, 6, 9, 14, 0, 0, 0, time.UTC)
	duration := 90
	notes := "customer asked for afternoon"

	for _, from := range []Status{StatusCancelled, StatusNoShow} {
		svc := visit(from)
		got, err := Reschedule(svc, RescheduleRequest{PlannedAt: &newSlot, DurationMinutes: &duration, Notes: &notes})
		require.NoError(t, err)

		assert.Equal(t, svc.ID, got.ID)
		assert.Equal(t, svc.VehicleID, got.VehicleID)
		assert.Equal(t, StatusScheduled, got.Status)
		assert.Equal(t, newSlot, got.PlannedAt)
		assert.Equal(t, 90, got.DurationMinutes)
		assert.Equal(t, "Periodic maintenance", got.ServiceType)
		assert.Equal(t, notes, got.Notes)
	}
}

func TestReschedule_Rejections(t *testing.T) {
	slot := time.Date(2025, 6, 9, 14, 0, 0, 0, time.UTC)

	for _, from := range []Status{StatusScheduled, StatusConfirmed, StatusCustomerArrived} {
		_, err := Reschedule(visit(from), RescheduleRequest{PlannedAt: &slot})
		assert.ErrorIs(t, err, apperr.ErrInvalidTransition, string(from))
	}

	_, err := Reschedule(visit(StatusCancelled), RescheduleRequest{})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	zero := 0
	_, err = Reschedule(visit(StatusCancelled), RescheduleRequest{PlannedAt: &slot, DurationMinutes: &zero})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestPlanNextService(t *testing.T) {
	origin := Origin{CompanyID: uuid.New(), VehicleID: uuid.New(), CustomerID: uuid.New()}
	odo := 60000

	next, err := PlanNextService(origin, &NextServiceInput{
		PlannedDate:    "2025-06-01",
		ServiceType:    "Genel Bakım",
		TargetOdometer: &odo,
	}, 45)
	require.NoError(t, err)
	require.NotNil(t, next)

	assert.Equal(t, StatusScheduled, next.Status)
	assert.Equal(t, origin.VehicleID, next.VehicleID)
	assert.Equal(t, origin.CustomerID, next.CustomerID)
	assert.Equal(t, origin.CompanyID, next.CompanyID)
	assert.Equal(t, "Genel Bakım", next.ServiceType)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), next.PlannedAt)
	assert.Equal(t, 45, next.DurationMinutes)
	assert.Equal(t, &odo, next.TargetOdometer)
}

func TestPlanNextService_SkipAndRejections(t *testing.T) {
	origin := Origin{CompanyID: uuid.New(), VehicleID: uuid.New(), CustomerID: uuid.New()}

	next, err := PlanNextService(origin, nil, 60)
	require.NoError(t, err)
	assert.Nil(t, next)

	next, err = PlanNextService(origin, &NextServiceInput{PlannedDate: "2025-06-01"}, 60)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Nil(t, next)

	_, err = PlanNextService(origin, &NextServiceInput{ServiceType: "Genel Bakım"}, 60)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = PlanNextService(origin, &NextServiceInput{PlannedDate: "01/06/2025", ServiceType: "Genel Bakım"}, 60)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestPlanNextService_DefaultDuration(t *testing.T) {
	next, err := PlanNextService(Origin{}, &NextServiceInput{PlannedDate: "2025-06-01T10:30:00+03:00", ServiceType: "Oil change"}, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultDurationMinutes, next.DurationMinutes)
	assert.Equal(t, 7, next.PlannedAt.UTC().Hour())
}

func TestWeekStart(t *testing.T) {
	sunday := time.Date(2025, 6, 8, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), WeekStart(sunday))

	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, WeekStart(monday))
}

func TestBuildWeek(t *testing.T) {
	at := func(day, hour int) *UpcomingService {
		s := visit(StatusScheduled)
		s.PlannedAt = time.Date(2025, 6, day, hour, 0, 0, 0, time.UTC)
		return &s
	}
	tueLate, tueEarly, sun, nextMon, prevSun := at(3, 15), at(3, 8), at(8, 10), at(9, 9), at(1, 9)

	week := BuildWeek(time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC), []*UpcomingService{tueLate, sun, nextMon, tueEarly, prevSun})

	require.Len(t, week.Days, 7)
	assert.Equal(t, "2025-06-02", week.Days[0].Date)
	assert.Equal(t, "Monday", week.Days[0].Weekday)
	assert.Equal(t, "2025-06-08", week.Days[6].Date)

	assert.Equal(t, []*UpcomingService{tueEarly, tueLate}, week.Days[1].Services)
	assert.Equal(t, []*UpcomingService{sun}, week.Days[6].Services)
	assert.Empty(t, week.Days[0].Services)
	assert.NotNil(t, week.Days[0].Services)
}
