package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/autoservice-backend/internal/platform/database/dbtest"
)

func TestPostgresRepo_CompletedRecords(t *testing.T) {
	db := dbtest.Open(t)
	f := dbtest.Seed(t, db)
	ctx := context.Background()

	inJune := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	insert := func(status string, at time.Time, labor interface{}, total string) uuid.UUID {
		id := uuid.New()
		_, err := db.ExecContext(ctx, `
			INSERT INTO service_records (id, company_id, vehicle_id, customer_id, technician_id, service_date, status, labor_cost, total_cost)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			id, f.CompanyID, f.VehicleID, f.CustomerID, f.TechnicianID, at, status, labor, total)
		require.NoError(t, err)
		_, err = db.ExecContext(ctx, `
			INSERT INTO service_line_items (id, service_record_id, component_id, quantity, unit_price)
			VALUES ($1,$2,$3,2,75)`, uuid.New(), id, f.ComponentID)
		require.NoError(t, err)
		return id
	}
	insert("completed", inJune, "100", "250")
	insert("completed", inJune.Add(time.Hour), nil, "200")
	insert("in_progress", inJune, "50", "200")
	insert("completed", inJune.AddDate(0, 1, 0), "10", "160")

	svc := NewService(NewPostgresRepository(db), nil)
	june := MonthOf(inJune)

	rev, err := svc.Revenue(ctx, f.CompanyID, june)
	require.NoError(t, err)
	assert.Equal(t, 2, rev.RecordCount)
	assert.Equal(t, "300.00", rev.PartsTotal.StringFixed(2))
	assert.Equal(t, "150.00", rev.LaborTotal.StringFixed(2))
	assert.Equal(t, "450.00", rev.RevenueTotal.StringFixed(2))

	earn, err := svc.TechnicianEarnings(ctx, f.CompanyID, june)
	require.NoError(t, err)
	require.Len(t, earn.Technicians, 1)
	assert.Equal(t, "Mehmet Usta", earn.Technicians[0].Name)
	assert.Equal(t, "45.00", earn.Technicians[0].Earnings.StringFixed(2))
}
