package report

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/georgemunganga/autoservice-backend/internal/modules/costing"
	"github.com/georgemunganga/autoservice-backend/internal/platform/database"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) CompletedRecords(ctx context.Context, companyID uuid.UUID, p Period) ([]*CompletedRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT sr.id, sr.technician_id, COALESCE(t.name, ''), t.earnings_percentage, sr.labor_cost, sr.total_cost
		FROM service_records sr
		LEFT JOIN technicians t ON t.id = sr.technician_id
		WHERE sr.company_id=$1 AND sr.status='completed'
		  AND sr.service_date >= $2 AND sr.service_date < $3
		ORDER BY sr.service_date ASC`, companyID, p.From, p.To)
	if err != nil {
		return nil, database.TranslateError(err, "list completed records")
	}
	defer rows.Close()

	var (
		out  []*CompletedRecord
		ids  []string
		byID = map[uuid.UUID]*CompletedRecord{}
	)
	for rows.Next() {
		rec := &CompletedRecord{}
		var techID uuid.NullUUID
		if err := rows.Scan(&rec.ID, &techID, &rec.TechnicianName, &rec.EarningsPercentage, &rec.LaborCost, &rec.TotalCost); err != nil {
			return nil, database.TranslateError(err, "scan completed record")
		}
		if techID.Valid {
			id := techID.UUID
			rec.TechnicianID = &id
		}
		out = append(out, rec)
		ids = append(ids, rec.ID.String())
		byID[rec.ID] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	items, err := r.db.QueryContext(ctx, `
		SELECT service_record_id, component_id, quantity, unit_price, custom_price
		FROM service_line_items WHERE service_record_id = ANY($1::uuid[])`, pq.Array(ids))
	if err != nil {
		return nil, database.TranslateError(err, "list report line items")
	}
	defer items.Close()
	for items.Next() {
		var recID uuid.UUID
		var li costing.LineItem
		if err := items.Scan(&recID, &li.ComponentID, &li.Quantity, &li.UnitPrice, &li.CustomPrice); err != nil {
			return nil, database.TranslateError(err, "scan report line item")
		}
		if rec, ok := byID[recID]; ok {
			rec.LineItems = append(rec.LineItems, li)
		}
	}
	return out, items.Err()
}
