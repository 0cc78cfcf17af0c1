package technician

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/georgemunganga/autoservice-backend/internal/platform/apperr"
	"github.com/georgemunganga/autoservice-backend/internal/platform/database"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const selectTechnician = `
	SELECT id,company_id,name,phone,active,earnings_percentage,created_at,updated_at
	FROM technicians`

func (r *postgresRepo) CreateTechnician(ctx context.Context, t *Technician, specializationIDs []uuid.UUID) error {
	now := time.Now()
	t.CreatedAt, t.UpdatedAt = now, now
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO technicians (id, company_id, name, phone, active, earnings_percentage, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			t.ID, t.CompanyID, t.Name, t.Phone, t.Active, t.EarningsPercentage, t.CreatedAt, t.UpdatedAt)
		if err != nil {
			return database.TranslateError(err, "insert technician")
		}
		return linkSpecializations(ctx, tx, t.ID, specializationIDs)
	})
}

func (r *postgresRepo) GetTechnician(ctx context.Context, id uuid.UUID) (*Technician, error) {
	t, err := scanTechnician(r.db.QueryRowContext(ctx, selectTechnician+` WHERE id=$1`, id))
	if err != nil {
		return nil, database.TranslateError(err, "technician "+id.String())
	}
	if err := r.attachSpecializations(ctx, []*Technician{t}); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *postgresRepo) ListTechnicians(ctx context.Context, companyID uuid.UUID, activeOnly bool) ([]*Technician, error) {
	query := selectTechnician + ` WHERE company_id=$1`
	if activeOnly {
		query += ` AND active`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, database.TranslateError(err, "list technicians")
	}
	defer rows.Close()
	var out []*Technician
	for rows.Next() {
		t, err := scanTechnician(rows)
		if err != nil {
			return nil, database.TranslateError(err, "scan technician")
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, r.attachSpecializations(ctx, out)
}

func (r *postgresRepo) UpdateEarnings(ctx context.Context, id uuid.UUID, pct decimal.Decimal) error {
	return r.updateOne(ctx, id, "update earnings percentage",
		`UPDATE technicians SET earnings_percentage=$1, updated_at=$2 WHERE id=$3`, pct, time.Now(), id)
}

func (r *postgresRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return r.updateOne(ctx, id, "update technician active",
		`UPDATE technicians SET active=$1, updated_at=$2 WHERE id=$3`, active, time.Now(), id)
}

func (r *postgresRepo) updateOne(ctx context.Context, id uuid.UUID, what, query string, args ...interface{}) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return database.TranslateError(err, what)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("technician %s", id)
	}
	return nil
}

// ReplaceSpecializations swaps the technician's whole specialization set.
func (r *postgresRepo) ReplaceSpecializations(ctx context.Context, id uuid.UUID, specializationIDs []uuid.UUID) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT true FROM technicians WHERE id=$1 FOR UPDATE`, id).Scan(&exists); err != nil {
			return database.TranslateError(err, "technician "+id.String())
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM technician_specializations WHERE technician_id=$1`, id); err != nil {
			return database.TranslateError(err, "clear specializations")
		}
		if err := linkSpecializations(ctx, tx, id, specializationIDs); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `UPDATE technicians SET updated_at=$1 WHERE id=$2`, time.Now(), id)
		return database.TranslateError(err, "touch technician")
	})
}

// linkSpecializations rejects specializations that belong to another company.
func linkSpecializations(ctx context.Context, tx *sql.Tx, technicianID uuid.UUID, ids []uuid.UUID) error {
	for _, sid := range ids {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO technician_specializations (technician_id, specialization_id)
			SELECT t.id, s.id FROM technicians t JOIN specializations s ON s.company_id = t.company_id
			WHERE t.id=$1 AND s.id=$2
			ON CONFLICT DO NOTHING`, technicianID, sid)
		if err != nil {
			return database.TranslateError(err, "link specialization")
		}
		if n, _ := res.RowsAffected(); n == 0 {
			var dup bool
			err := tx.QueryRowContext(ctx, `
				SELECT EXISTS (SELECT 1 FROM technician_specializations WHERE technician_id=$1 AND specialization_id=$2)`,
				technicianID, sid).Scan(&dup)
			if err != nil {
				return database.TranslateError(err, "check specialization")
			}
			if !dup {
				return apperr.Validation("specialization %s not found for this company", sid)
			}
		}
	}
	return nil
}

func (r *postgresRepo) attachSpecializations(ctx context.Context, techs []*Technician) error {
	if len(techs) == 0 {
		return nil
	}
	ids := make([]string, len(techs))
	byID := make(map[uuid.UUID]*Technician, len(techs))
	for i, t := range techs {
		ids[i] = t.ID.String()
		t.Specializations = []*Specialization{}
		byID[t.ID] = t
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT ts.technician_id, s.id, s.company_id, s.name, s.created_at
		FROM technician_specializations ts JOIN specializations s ON s.id = ts.specialization_id
		WHERE ts.technician_id = ANY($1::uuid[])
		ORDER BY s.name ASC`, pq.Array(ids))
	if err != nil {
		return database.TranslateError(err, "list technician specializations")
	}
	defer rows.Close()
	for rows.Next() {
		var techID uuid.UUID
		s := &Specialization{}
		if err := rows.Scan(&techID, &s.ID, &s.CompanyID, &s.Name, &s.CreatedAt); err != nil {
			return database.TranslateError(err, "scan specialization")
		}
		if t, ok := byID[techID]; ok {
			t.Specializations = append(t.Specializations, s)
		}
	}
	return rows.Err()
}

func (r *postgresRepo) CreateSpecialization(ctx context.Context, s *Specialization) error {
	s.CreatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO specializations (id, company_id, name, created_at) VALUES ($1,$2,$3,$4)`,
		s.ID, s.CompanyID, s.Name, s.CreatedAt)
	return database.TranslateError(err, "insert specialization")
}

func (r *postgresRepo) ListSpecializations(ctx context.Context, companyID uuid.UUID) ([]*Specialization, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id,company_id,name,created_at FROM specializations WHERE company_id=$1 ORDER BY name ASC`, companyID)
	if err != nil {
		return nil, database.TranslateError(err, "list specializations")
	}
	defer rows.Close()
	var out []*Specialization
	for rows.Next() {
		s := &Specialization{}
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Name, &s.CreatedAt); err != nil {
			return nil, database.TranslateError(err, "scan specialization")
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTechnician(row rowScanner) (*Technician, error) {
	t := &Technician{}
	err := row.Scan(&t.ID, &t.CompanyID, &t.Name, &t.Phone, &t.Active, &t.EarningsPercentage, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}
