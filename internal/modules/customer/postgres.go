package customer

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/autoservice-backend/internal/platform/apperr"
	"github.com/georgemunganga/autoservice-backend/internal/platform/database"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// ── customers ────────────────────────────────────────────────────────────────

func (r *postgresRepo) CreateCustomer(ctx context.Context, c *Customer) error {
	now := time.Now()
	c.CreatedAt, c.UpdatedAt = now, now
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (id, company_id, name, phone, email, notes, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		c.ID, c.CompanyID, c.Name, c.Phone, c.Email, c.Notes, c.CreatedAt, c.UpdatedAt)
	return database.TranslateError(err, "insert customer")
}

func (r *postgresRepo) GetCustomer(ctx context.Context, id uuid.UUID) (*Customer, error) {
	c := &Customer{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id,company_id,name,phone,email,notes,created_at,updated_at
		FROM customers WHERE id=$1`, id).
		Scan(&c.ID, &c.CompanyID, &c.Name, &c.Phone, &c.Email, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, database.TranslateError(err, "customer "+id.String())
	}
	return c, nil
}

func (r *postgresRepo) ListCustomers(ctx context.Context, companyID uuid.UUID, search string) ([]*Customer, error) {
	query := `SELECT id,company_id,name,phone,email,notes,created_at,updated_at
	          FROM customers WHERE company_id=$1`
	args := []interface{}{companyID}
	if search != "" {
		query += ` AND (name ILIKE $2 OR phone ILIKE $2 OR email ILIKE $2
		           OR id IN (SELECT customer_id FROM vehicles WHERE plate ILIKE $2))`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, database.TranslateError(err, "list customers")
	}
	defer rows.Close()
	var out []*Customer
	for rows.Next() {
		c := &Customer{}
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Name, &c.Phone, &c.Email, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, database.TranslateError(err, "scan customer")
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *postgresRepo) UpdateCustomer(ctx context.Context, c *Customer) error {
	c.UpdatedAt = time.Now()
	res, err := r.db.ExecContext(ctx, `
		UPDATE customers SET name=$1, phone=$2, email=$3, notes=$4, updated_at=$5 WHERE id=$6`,
		c.Name, c.Phone, c.Email, c.Notes, c.UpdatedAt, c.ID)
	if err != nil {
		return database.TranslateError(err, "update customer")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("customer %s", c.ID)
	}
	return nil
}

// ── vehicles ─────────────────────────────────────────────────────────────────

const selectVehicle = `
	SELECT id,company_id,customer_id,plate,make,model,year,vin,odometer,created_at,updated_at
	FROM vehicles`

func (r *postgresRepo) CreateVehicle(ctx context.Context, v *Vehicle) error {
	now := time.Now()
	v.CreatedAt, v.UpdatedAt = now, now
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vehicles (id, company_id, customer_id, plate, make, model, year, vin, odometer, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		v.ID, v.CompanyID, v.CustomerID, v.Plate, v.Make, v.Model, v.Year, v.VIN, v.Odometer, v.CreatedAt, v.UpdatedAt)
	return database.TranslateError(err, "insert vehicle")
}

func (r *postgresRepo) GetVehicle(ctx context.Context, id uuid.UUID) (*Vehicle, error) {
	v, err := scanVehicle(r.db.QueryRowContext(ctx, selectVehicle+` WHERE id=$1`, id))
	if err != nil {
		return nil, database.TranslateError(err, "vehicle "+id.String())
	}
	return v, nil
}

func (r *postgresRepo) ListVehicles(ctx context.Context, customerID uuid.UUID) ([]*Vehicle, error) {
	rows, err := r.db.QueryContext(ctx, selectVehicle+` WHERE customer_id=$1 ORDER BY plate ASC`, customerID)
	if err != nil {
		return nil, database.TranslateError(err, "list vehicles")
	}
	defer rows.Close()
	var out []*Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, database.TranslateError(err, "scan vehicle")
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *postgresRepo) UpdateOdometer(ctx context.Context, id uuid.UUID, odometer int) error {
	res, err := r.db.ExecContext(ctx, `UPDATE vehicles SET odometer=$1, updated_at=$2 WHERE id=$3`,
		odometer, time.Now(), id)
	if err != nil {
		return database.TranslateError(err, "update odometer")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("vehicle %s", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVehicle(row rowScanner) (*Vehicle, error) {
	v := &Vehicle{}
	var year sql.NullInt64
	err := row.Scan(&v.ID, &v.CompanyID, &v.CustomerID, &v.Plate, &v.Make, &v.Model, &year, &v.VIN,
		&v.Odometer, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if year.Valid {
		y := int(year.Int64)
		v.Year = &y
	}
	return v, nil
}
