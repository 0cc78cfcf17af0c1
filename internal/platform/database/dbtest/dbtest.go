// Package dbtest opens the integration-test database and seeds fixtures.
// Tests using it are skipped unless TEST_DATABASE_URL is set.
package dbtest

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/autoservice-backend/internal/platform/database"
)

// Open connects to TEST_DATABASE_URL and applies migrations.
func Open(t *testing.T) *sql.DB {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}
	ctx := context.Background()
	db, err := database.Open(ctx, url)
	if err != nil {
		t.Skipf("failed to connect: %v, skipping integration test", err)
	}
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(ctx, db, "up"))
	return db
}

// Fixture is a freshly seeded company with one of everything.
type Fixture struct {
	CompanyID    uuid.UUID
	CustomerID   uuid.UUID
	VehicleID    uuid.UUID
	TechnicianID uuid.UUID
	ComponentID  uuid.UUID
}

// Seed inserts a company, a customer with one vehicle, a technician at 30%
// and a component priced 75.00 with stock 10.
func Seed(t *testing.T, db *sql.DB) Fixture {
	t.Helper()
	ctx := context.Background()
	f := Fixture{
		CompanyID:    uuid.New(),
		CustomerID:   uuid.New(),
		VehicleID:    uuid.New(),
		TechnicianID: uuid.New(),
		ComponentID:  uuid.New(),
	}
	stmts := []struct {
		query string
		args  []interface{}
	}{
		{`INSERT INTO companies (id, owner_id, name) VALUES ($1,$2,'Test Garage')`,
			[]interface{}{f.CompanyID, uuid.New()}},
		{`INSERT INTO customers (id, company_id, name, phone) VALUES ($1,$2,'Ayşe Yılmaz','+905551112233')`,
			[]interface{}{f.CustomerID, f.CompanyID}},
		{`INSERT INTO vehicles (id, company_id, customer_id, plate, make, model) VALUES ($1,$2,$3,$4,'Fiat','Egea')`,
			[]interface{}{f.VehicleID, f.CompanyID, f.CustomerID, "34 T " + f.VehicleID.String()[:4]}},
		{`INSERT INTO technicians (id, company_id, name, earnings_percentage) VALUES ($1,$2,'Mehmet Usta',30)`,
			[]interface{}{f.TechnicianID, f.CompanyID}},
		{`INSERT INTO components (id, company_id, name, part_number, price, stock, reorder_level) VALUES ($1,$2,'Oil filter',$3,75,10,2)`,
			[]interface{}{f.ComponentID, f.CompanyID, "OF-" + f.ComponentID.String()[:8]}},
	}
	for _, s := range stmts {
		_, err := db.ExecContext(ctx, s.query, s.args...)
		require.NoError(t, err, s.query)
	}
	return f
}
