package technician

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/autoservice-backend/internal/platform/apperr"
	"github.com/georgemunganga/autoservice-backend/internal/platform/database/dbtest"
)

func TestPostgresRepo_TechnicianLifecycle(t *testing.T) {
	db := dbtest.Open(t)
	f := dbtest.Seed(t, db)
	ctx := context.Background()
	svc := NewService(NewPostgresRepository(db))

	engine, err := svc.CreateSpecialization(ctx, CreateSpecializationRequest{CompanyID: f.CompanyID.String(), Name: "Engine"})
	require.NoError(t, err)
	brakes, err := svc.CreateSpecialization(ctx, CreateSpecializationRequest{CompanyID: f.CompanyID.String(), Name: "Brakes"})
	require.NoError(t, err)
	_, err = svc.CreateSpecialization(ctx, CreateSpecializationRequest{CompanyID: f.CompanyID.String(), Name: "Engine"})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	pct := decimal.RequireFromString("35.5")
	tech, err := svc.CreateTechnician(ctx, CreateTechnicianRequest{
		CompanyID: f.CompanyID.String(), Name: "Ali Usta", EarningsPercentage: &pct,
		SpecializationIDs: []string{engine.ID.String()},
	})
	require.NoError(t, err)
	require.Len(t, tech.Specializations, 1)
	assert.Equal(t, "Engine", tech.Specializations[0].Name)
	assert.Equal(t, "35.50", tech.EarningsPercentage.StringFixed(2))

	tech, err = svc.ReplaceSpecializations(ctx, tech.ID, SpecializationsRequest{
		SpecializationIDs: []string{brakes.ID.String(), engine.ID.String()},
	})
	require.NoError(t, err)
	require.Len(t, tech.Specializations, 2)
	assert.Equal(t, "Brakes", tech.Specializations[0].Name)

	_, err = svc.SetActive(ctx, tech.ID, ActiveRequest{Active: false})
	require.NoError(t, err)
	active, err := svc.ListTechnicians(ctx, f.CompanyID, true)
	require.NoError(t, err)
	for _, a := range active {
		assert.NotEqual(t, tech.ID, a.ID)
	}

	ct, err := svc.CostingTechnician(ctx, f.TechnicianID)
	require.NoError(t, err)
	assert.Equal(t, "30.00", ct.EarningsPercentage.Decimal.StringFixed(2))
}

func TestPostgresRepo_ForeignSpecializationRejected(t *testing.T) {
	db := dbtest.Open(t)
	mine := dbtest.Seed(t, db)
	other := dbtest.Seed(t, db)
	ctx := context.Background()
	svc := NewService(NewPostgresRepository(db))

	foreign, err := svc.CreateSpecialization(ctx, CreateSpecializationRequest{CompanyID: other.CompanyID.String(), Name: "Paint"})
	require.NoError(t, err)

	_, err = svc.ReplaceSpecializations(ctx, mine.TechnicianID, SpecializationsRequest{
		SpecializationIDs: []string{foreign.ID.String()},
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
