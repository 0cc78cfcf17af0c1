package servicerecord

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/georgemunganga/autoservice-backend/internal/modules/scheduling"
	"github.com/georgemunganga/autoservice-backend/internal/platform/apperr"
	"github.com/georgemunganga/autoservice-backend/internal/platform/database"
)

const selectRecord = `
	SELECT id,company_id,vehicle_id,customer_id,technician_id,upcoming_service_id,description,
	       service_date,status,labor_cost,total_cost,odometer,created_at,updated_at
	FROM service_records`

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// Create inserts the record, its items and the optional next visit inside a
// single transaction.
func (r *postgresRepo) Create(ctx context.Context, rec *ServiceRecord, next *scheduling.UpcomingService) error {
	now := time.Now()
	rec.CreatedAt, rec.UpdatedAt = now, now
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO service_records
			  (id, company_id, vehicle_id, customer_id, technician_id, upcoming_service_id,
			   description, service_date, status, labor_cost, total_cost, odometer, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
			rec.ID, rec.CompanyID, rec.VehicleID, rec.CustomerID, rec.TechnicianID, rec.UpcomingServiceID,
			rec.Description, rec.ServiceDate, rec.Status, rec.LaborCost, rec.TotalCost, rec.Odometer,
			rec.CreatedAt, rec.UpdatedAt)
		if err != nil {
			return database.TranslateError(err, "insert service record")
		}
		if err := insertItems(ctx, tx, rec.ID, rec.LineItems); err != nil {
			return err
		}
		return insertNext(ctx, tx, next)
	})
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*ServiceRecord, error) {
	rec, err := scanRecord(r.db.QueryRowContext(ctx, selectRecord+` WHERE id=$1`, id))
	if err != nil {
		return nil, database.TranslateError(err, "service record "+id.String())
	}
	if err := r.attachItems(ctx, []*ServiceRecord{rec}); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *postgresRepo) List(ctx context.Context, f ListFilter) ([]*ServiceRecord, error) {
	query := selectRecord + ` WHERE TRUE`
	var args []interface{}
	add := func(cond string, v interface{}) {
		args = append(args, v)
		query += fmt.Sprintf(" AND "+cond, len(args))
	}
	if f.CompanyID != uuid.Nil {
		add("company_id=$%d", f.CompanyID)
	}
	if f.VehicleID != uuid.Nil {
		add("vehicle_id=$%d", f.VehicleID)
	}
	if f.Status != "" {
		add("status=$%d", f.Status)
	}
	if !f.From.IsZero() {
		add("service_date >= $%d", f.From)
	}
	if !f.To.IsZero() {
		add("service_date < $%d", f.To)
	}
	query += ` ORDER BY service_date DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, database.TranslateError(err, "list service records")
	}
	defer rows.Close()
	var out []*ServiceRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, database.TranslateError(err, "scan service record")
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites the record and replaces its items inside a single transaction.
func (r *postgresRepo) Update(ctx context.Context, rec *ServiceRecord) error {
	rec.UpdatedAt = time.Now()
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE service_records
			SET technician_id=$1, description=$2, service_date=$3, labor_cost=$4,
			    total_cost=$5, odometer=$6, updated_at=$7
			WHERE id=$8 AND status<>'cancelled'`,
			rec.TechnicianID, rec.Description, rec.ServiceDate, rec.LaborCost,
			rec.TotalCost, rec.Odometer, rec.UpdatedAt, rec.ID)
		if err != nil {
			return database.TranslateError(err, "update service record")
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return apperr.Conflict("service record %s was cancelled or removed", rec.ID)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM service_line_items WHERE service_record_id=$1`, rec.ID); err != nil {
			return database.TranslateError(err, "delete service line items")
		}
		return insertItems(ctx, tx, rec.ID, rec.LineItems)
	})
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status, next *scheduling.UpcomingService) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE service_records SET status=$1, updated_at=$2 WHERE id=$3 AND status=$4`,
			to, time.Now(), id, from)
		if err != nil {
			return database.TranslateError(err, "update service record status")
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return apperr.Conflict("service record %s was changed concurrently", id)
		}
		return insertNext(ctx, tx, next)
	})
}

// ── helpers ──────────────────────────────────────────────────────────────────

func insertItems(ctx context.Context, tx *sql.Tx, recordID uuid.UUID, items []LineItem) error {
	for i := range items {
		item := &items[i]
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.Position = i
		_, err := tx.ExecContext(ctx, `
			INSERT INTO service_line_items
			  (id, service_record_id, component_id, quantity, unit_price, custom_price, position)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			item.ID, recordID, item.ComponentID, item.Quantity, item.UnitPrice, item.CustomPrice, item.Position)
		if err != nil {
			return database.TranslateError(err, fmt.Sprintf("insert service line item %d", i+1))
		}
	}
	return nil
}

func insertNext(ctx context.Context, tx *sql.Tx, next *scheduling.UpcomingService) error {
	if next == nil {
		return nil
	}
	if err := scheduling.InsertUpcoming(ctx, tx, next); err != nil {
		return apperr.Dependency("plan next service", err)
	}
	return nil
}

func (r *postgresRepo) attachItems(ctx context.Context, recs []*ServiceRecord) error {
	if len(recs) == 0 {
		return nil
	}
	byID := make(map[uuid.UUID]*ServiceRecord, len(recs))
	ids := make([]string, 0, len(recs))
	for _, rec := range recs {
		rec.LineItems = []LineItem{}
		byID[rec.ID] = rec
		ids = append(ids, rec.ID.String())
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT li.id, li.service_record_id, li.component_id, c.name, li.quantity,
		       li.unit_price, li.custom_price, li.position
		FROM service_line_items li
		JOIN components c ON c.id = li.component_id
		WHERE li.service_record_id = ANY($1::uuid[])
		ORDER BY li.service_record_id, li.position`, pq.Array(ids))
	if err != nil {
		return database.TranslateError(err, "list service line items")
	}
	defer rows.Close()
	for rows.Next() {
		var item LineItem
		var recordID uuid.UUID
		if err := rows.Scan(&item.ID, &recordID, &item.ComponentID, &item.ComponentName,
			&item.Quantity, &item.UnitPrice, &item.CustomPrice, &item.Position); err != nil {
			return database.TranslateError(err, "scan service line item")
		}
		rec := byID[recordID]
		rec.LineItems = append(rec.LineItems, item)
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*ServiceRecord, error) {
	rec := &ServiceRecord{}
	var technicianID, upcomingID uuid.NullUUID
	var odometer sql.NullInt64
	err := row.Scan(&rec.ID, &rec.CompanyID, &rec.VehicleID, &rec.CustomerID, &technicianID, &upcomingID,
		&rec.Description, &rec.ServiceDate, &rec.Status, &rec.LaborCost, &rec.TotalCost, &odometer,
		&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if technicianID.Valid {
		rec.TechnicianID = &technicianID.UUID
	}
	if upcomingID.Valid {
		rec.UpcomingServiceID = &upcomingID.UUID
	}
	if odometer.Valid {
		v := int(odometer.Int64)
		rec.Odometer = &v
	}
	return rec, nil
}
