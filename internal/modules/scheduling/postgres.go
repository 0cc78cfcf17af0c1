package scheduling

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/autoservice-backend/internal/platform/apperr"
	"github.com/georgemunganga/autoservice-backend/internal/platform/database"
)

const selectColumns = `
	SELECT id,company_id,vehicle_id,customer_id,planned_at,duration_minutes,service_type,
	       target_odometer,notes,status,service_record_id,created_at,updated_at
	FROM upcoming_services`

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// InsertUpcoming writes s using ex, which may be a transaction owned by the
// caller.
func InsertUpcoming(ctx context.Context, ex database.Execer, s *UpcomingService) error {
	now := time.Now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	_, err := ex.ExecContext(ctx, `
		INSERT INTO upcoming_services
		  (id, company_id, vehicle_id, customer_id, planned_at, duration_minutes,
		   service_type, target_odometer, notes, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		s.ID, s.CompanyID, s.VehicleID, s.CustomerID, s.PlannedAt, s.DurationMinutes,
		s.ServiceType, s.TargetOdometer, s.Notes, s.Status, s.CreatedAt, s.UpdatedAt)
	return database.TranslateError(err, "insert upcoming service")
}

func (r *postgresRepo) Create(ctx context.Context, s *UpcomingService) error {
	return InsertUpcoming(ctx, r.db, s)
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*UpcomingService, error) {
	s, err := scan(r.db.QueryRowContext(ctx, selectColumns+` WHERE id=$1`, id))
	if err != nil {
		return nil, database.TranslateError(err, "upcoming service "+id.String())
	}
	return s, nil
}

func (r *postgresRepo) List(ctx context.Context, f ListFilter) ([]*UpcomingService, error) {
	query := selectColumns + ` WHERE company_id=$1`
	args := []interface{}{f.CompanyID}
	if f.VehicleID != uuid.Nil {
		args = append(args, f.VehicleID)
		query += fmt.Sprintf(" AND vehicle_id=$%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND status=$%d", len(args))
	}
	if !f.From.IsZero() {
		args = append(args, f.From)
		query += fmt.Sprintf(" AND planned_at >= $%d", len(args))
	}
	if !f.To.IsZero() {
		args = append(args, f.To)
		query += fmt.Sprintf(" AND planned_at < $%d", len(args))
	}
	query += " ORDER BY planned_at ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, database.TranslateError(err, "list upcoming services")
	}
	defer rows.Close()
	var out []*UpcomingService
	for rows.Next() {
		s, err := scan(rows)
		if err != nil {
			return nil, database.TranslateError(err, "scan upcoming service")
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) error {
	return updateStatus(ctx, r.db, id, from, to, nil)
}

func (r *postgresRepo) MarkArrived(ctx context.Context, id uuid.UUID, from Status, draft ServiceRecordDraft) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := updateStatus(ctx, tx, id, from, StatusCustomerArrived, &draft.ID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO service_records
			  (id, company_id, vehicle_id, customer_id, upcoming_service_id,
			   description, service_date, status, total_cost)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,0)`,
			draft.ID, draft.CompanyID, draft.VehicleID, draft.CustomerID, draft.UpcomingServiceID,
			draft.Description, draft.ServiceDate, draft.Status)
		if err != nil {
			return apperr.Dependency("open service record for arrived customer", database.TranslateError(err, "insert service record"))
		}
		return nil
	})
}

func (r *postgresRepo) Reschedule(ctx context.Context, s *UpcomingService, from Status) error {
	s.UpdatedAt = time.Now()
	res, err := r.db.ExecContext(ctx, `
		UPDATE upcoming_services
		SET planned_at=$1, duration_minutes=$2, service_type=$3, notes=$4,
		    status=$5, service_record_id=NULL, updated_at=$6
		WHERE id=$7 AND status=$8`,
		s.PlannedAt, s.DurationMinutes, s.ServiceType, s.Notes, s.Status, s.UpdatedAt, s.ID, from)
	if err != nil {
		return database.TranslateError(err, "reschedule upcoming service")
	}
	return expectOne(res, s.ID)
}

func updateStatus(ctx context.Context, ex database.Execer, id uuid.UUID, from, to Status, recordID *uuid.UUID) error {
	res, err := ex.ExecContext(ctx, `
		UPDATE upcoming_services
		SET status=$1, service_record_id=COALESCE($2, service_record_id), updated_at=$3
		WHERE id=$4 AND status=$5`,
		to, recordID, time.Now(), id, from)
	if err != nil {
		return database.TranslateError(err, "update upcoming service status")
	}
	return expectOne(res, id)
}

func expectOne(res sql.Result, id uuid.UUID) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return apperr.Conflict("upcoming service %s was changed concurrently", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scan(row rowScanner) (*UpcomingService, error) {
	s := &UpcomingService{}
	var target sql.NullInt64
	var recordID uuid.NullUUID
	err := row.Scan(&s.ID, &s.CompanyID, &s.VehicleID, &s.CustomerID, &s.PlannedAt,
		&s.DurationMinutes, &s.ServiceType, &target, &s.Notes, &s.Status, &recordID,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if target.Valid {
		v := int(target.Int64)
		s.TargetOdometer = &v
	}
	if recordID.Valid {
		s.ServiceRecordID = &recordID.UUID
	}
	return s, nil
}
