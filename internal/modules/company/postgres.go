package company

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/autoservice-backend/internal/platform/apperr"
	"github.com/georgemunganga/autoservice-backend/internal/platform/database"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL company repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateCompany(ctx context.Context, company *Company) error {
	now := time.Now()
	company.CreatedAt, company.UpdatedAt = now, now
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `
			INSERT INTO companies (id, owner_id, name, tax_id, currency, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		_, err := tx.ExecContext(ctx, query, company.ID, company.OwnerID, company.Name, company.TaxID,
			company.Currency, company.CreatedAt, company.UpdatedAt)
		if err != nil {
			return database.TranslateError(err, "insert company")
		}
		res, err := tx.ExecContext(ctx,
			`UPDATE users SET company_id=$1, updated_at=$2 WHERE id=$3 AND company_id IS NULL`,
			company.ID, now, company.OwnerID)
		if err != nil {
			return database.TranslateError(err, "attach company owner")
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return apperr.Conflict("user %s already belongs to a company", company.OwnerID)
		}
		return nil
	})
}

func (r *postgresRepository) GetCompanyByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	company := &Company{}
	query := `
		SELECT id, owner_id, name, tax_id, currency, created_at, updated_at
		FROM companies
		WHERE id = $1
	`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&company.ID,
		&company.OwnerID,
		&company.Name,
		&company.TaxID,
		&company.Currency,
		&company.CreatedAt,
		&company.UpdatedAt,
	)
	if err != nil {
		return nil, database.TranslateError(err, "company "+id.String())
	}
	return company, nil
}
