package user

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/autoservice-backend/internal/platform/database"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL user repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateUser(ctx context.Context, user *User) error {
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	query := `
		INSERT INTO users (id, company_id, email, password_hash, full_name, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query, user.ID, user.CompanyID, user.Email, user.PasswordHash,
		user.FullName, user.Role, user.CreatedAt, user.UpdatedAt)
	return database.TranslateError(err, "insert user")
}

func (r *postgresRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, company_id, email, password_hash, full_name, role, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, database.TranslateError(err, "user "+email)
	}
	return user, nil
}

func (r *postgresRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `
		SELECT id, company_id, email, password_hash, full_name, role, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, database.TranslateError(err, "user "+id.String())
	}
	return user, nil
}

func scanUser(row *sql.Row) (*User, error) {
	user := &User{}
	var companyID uuid.NullUUID
	err := row.Scan(
		&user.ID,
		&companyID,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if companyID.Valid {
		user.CompanyID = &companyID.UUID
	}
	return user, nil
}
