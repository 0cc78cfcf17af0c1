package inventory

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/autoservice-backend/internal/platform/apperr"
	"github.com/georgemunganga/autoservice-backend/internal/platform/database"
)

const selectComponent = `
	SELECT id,company_id,name,part_number,price,stock,reorder_level,created_at,updated_at
	FROM components`

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, c *Component) error {
	now := time.Now()
	c.CreatedAt, c.UpdatedAt = now, now
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO components (id, company_id, name, part_number, price, stock, reorder_level, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			c.ID, c.CompanyID, c.Name, c.PartNumber, c.Price, c.Stock, c.ReorderLevel, c.CreatedAt, c.UpdatedAt)
		if err != nil {
			return database.TranslateError(err, "insert component")
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO component_price_history (id, component_id, old_price, new_price, reason, changed_at)
			VALUES ($1,$2,0,$3,$4,$5)`,
			uuid.New(), c.ID, c.Price, ReasonInitialPrice, now)
		return database.TranslateError(err, "insert initial price")
	})
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Component, error) {
	c, err := scanComponent(r.db.QueryRowContext(ctx, selectComponent+` WHERE id=$1`, id))
	if err != nil {
		return nil, database.TranslateError(err, "component "+id.String())
	}
	return c, nil
}

func (r *postgresRepo) List(ctx context.Context, companyID uuid.UUID, search string) ([]*Component, error) {
	query := selectComponent + ` WHERE company_id=$1`
	args := []interface{}{companyID}
	if search != "" {
		query += ` AND (name ILIKE $2 OR part_number ILIKE $2)`
		args = append(args, "%"+search+"%")
	}
	return r.query(ctx, query+` ORDER BY name ASC`, args...)
}

// UpdatePrice locks the component row, records the old price and writes the
// new one inside a single transaction.
func (r *postgresRepo) UpdatePrice(ctx context.Context, e *PriceHistoryEntry) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `SELECT price FROM components WHERE id=$1 FOR UPDATE`, e.ComponentID).Scan(&e.OldPrice)
		if err != nil {
			return database.TranslateError(err, "component "+e.ComponentID.String())
		}
		if _, err := tx.ExecContext(ctx, `UPDATE components SET price=$1, updated_at=$2 WHERE id=$3`,
			e.NewPrice, e.ChangedAt, e.ComponentID); err != nil {
			return database.TranslateError(err, "update component price")
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO component_price_history (id, component_id, old_price, new_price, reason, changed_at)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			e.ID, e.ComponentID, e.OldPrice, e.NewPrice, e.Reason, e.ChangedAt)
		return database.TranslateError(err, "insert price history")
	})
}

func (r *postgresRepo) PriceHistory(ctx context.Context, componentID uuid.UUID) ([]*PriceHistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, component_id, old_price, new_price, reason, changed_at
		FROM component_price_history WHERE component_id=$1
		ORDER BY changed_at DESC`, componentID)
	if err != nil {
		return nil, database.TranslateError(err, "list price history")
	}
	defer rows.Close()
	var out []*PriceHistoryEntry
	for rows.Next() {
		e := &PriceHistoryEntry{}
		var reason sql.NullString
		if err := rows.Scan(&e.ID, &e.ComponentID, &e.OldPrice, &e.NewPrice, &reason, &e.ChangedAt); err != nil {
			return nil, database.TranslateError(err, "scan price history")
		}
		if reason.Valid {
			pr := PriceReason(reason.String)
			e.Reason = &pr
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *postgresRepo) SetStock(ctx context.Context, id uuid.UUID, stock int) error {
	res, err := r.db.ExecContext(ctx, `UPDATE components SET stock=$1, updated_at=$2 WHERE id=$3`, stock, time.Now(), id)
	if err != nil {
		return database.TranslateError(err, "set component stock")
	}
	return expectOne(res, id)
}

func (r *postgresRepo) AdjustStock(ctx context.Context, id uuid.UUID, delta int) error {
	res, err := r.db.ExecContext(ctx, `UPDATE components SET stock=stock+$1, updated_at=$2 WHERE id=$3`, delta, time.Now(), id)
	if err != nil {
		return database.TranslateError(err, "adjust component stock")
	}
	return expectOne(res, id)
}

func (r *postgresRepo) LowStock(ctx context.Context, companyID uuid.UUID) ([]*Component, error) {
	return r.query(ctx, selectComponent+`
		WHERE company_id=$1 AND stock <= reorder_level
		ORDER BY (reorder_level - stock) DESC, name ASC`, companyID)
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (r *postgresRepo) query(ctx context.Context, query string, args ...interface{}) ([]*Component, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, database.TranslateError(err, "list components")
	}
	defer rows.Close()
	var out []*Component
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, database.TranslateError(err, "scan component")
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func expectOne(res sql.Result, id uuid.UUID) error {
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("component %s", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanComponent(row rowScanner) (*Component, error) {
	c := &Component{}
	var partNumber sql.NullString
	err := row.Scan(&c.ID, &c.CompanyID, &c.Name, &partNumber, &c.Price, &c.Stock, &c.ReorderLevel,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if partNumber.Valid {
		c.PartNumber = &partNumber.String
	}
	return c, nil
}
