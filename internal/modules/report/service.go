package report

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/georgemunganga/autoservice-backend/internal/modules/costing"
	"github.com/georgemunganga/autoservice-backend/internal/modules/inventory"
	"github.com/georgemunganga/autoservice-backend/internal/platform/apperr"
)

// StockSource lists components at or below their reorder level.
type StockSource interface {
	LowStock(ctx context.Context, companyID uuid.UUID) ([]inventory.LowStockItem, error)
}

type Service interface {
	Revenue(ctx context.Context, companyID uuid.UUID, p Period) (*Revenue, error)
	TechnicianEarnings(ctx context.Context, companyID uuid.UUID, p Period) (*EarningsReport, error)
	LowStock(ctx context.Context, companyID uuid.UUID) ([]inventory.LowStockItem, error)
}

type service struct {
	repo  Repository
	stock StockSource
}

func NewService(repo Repository, stock StockSource) Service {
	return &service{repo: repo, stock: stock}
}

// MonthOf returns the calendar month containing t.
func MonthOf(t time.Time) Period {
	from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return Period{From: from, To: from.AddDate(0, 1, 0)}
}

func (p Period) validate() error {
	if !p.From.Before(p.To) {
		return apperr.Validation("from must be before to")
	}
	return nil
}

func (s *service) Revenue(ctx context.Context, companyID uuid.UUID, p Period) (*Revenue, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	records, err := s.repo.CompletedRecords(ctx, companyID, p)
	if err != nil {
		return nil, err
	}

	out := &Revenue{Period: p, PartsTotal: decimal.Zero, LaborTotal: decimal.Zero, RevenueTotal: decimal.Zero}
	for _, rec := range records {
		parts, err := costing.PartsCost(rec.LineItems)
		if err != nil {
			return nil, err
		}
		labor, ok := laborOf(rec)
		if !ok {
			out.Unreconciled++
		}
		out.RecordCount++
		out.PartsTotal = out.PartsTotal.Add(parts)
		out.LaborTotal = out.LaborTotal.Add(labor)
		out.RevenueTotal = out.RevenueTotal.Add(rec.TotalCost)
	}
	out.PartsTotal = costing.Round2(out.PartsTotal)
	out.LaborTotal = costing.Round2(out.LaborTotal)
	out.RevenueTotal = costing.Round2(out.RevenueTotal)
	return out, nil
}

// TechnicianEarnings sums per-record earnings, each rounded on its own, so
// the report matches what each service record showed.
func (s *service) TechnicianEarnings(ctx context.Context, companyID uuid.UUID, p Period) (*EarningsReport, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	records, err := s.repo.CompletedRecords(ctx, companyID, p)
	if err != nil {
		return nil, err
	}

	byTech := map[uuid.UUID]*TechnicianEarnings{}
	report := &EarningsReport{Period: p, Technicians: []*TechnicianEarnings{}, Total: decimal.Zero}
	for _, rec := range records {
		if rec.TechnicianID == nil {
			continue
		}
		tech := &costing.Technician{ID: *rec.TechnicianID, EarningsPercentage: rec.EarningsPercentage}
		row, ok := byTech[tech.ID]
		if !ok {
			pct := costing.DefaultEarningsPercentage
			if rec.EarningsPercentage.Valid {
				pct = rec.EarningsPercentage.Decimal
			}
			row = &TechnicianEarnings{
				TechnicianID:       tech.ID,
				Name:               rec.TechnicianName,
				EarningsPercentage: pct,
				LaborTotal:         decimal.Zero,
				Earnings:           decimal.Zero,
			}
			byTech[tech.ID] = row
			report.Technicians = append(report.Technicians, row)
		}
		labor, _ := laborOf(rec)
		earned := costing.Earnings(labor, tech)
		row.RecordCount++
		row.LaborTotal = row.LaborTotal.Add(labor)
		row.Earnings = row.Earnings.Add(earned)
		report.Total = report.Total.Add(earned)
	}
	sort.Slice(report.Technicians, func(i, j int) bool {
		return report.Technicians[i].Name < report.Technicians[j].Name
	})
	return report, nil
}

func (s *service) LowStock(ctx context.Context, companyID uuid.UUID) ([]inventory.LowStockItem, error) {
	return s.stock.LowStock(ctx, companyID)
}

// laborOf returns the stored labor cost, or derives it from the total for
// records that only kept a combined figure. ok is false when the stored
// total cannot cover the parts.
func laborOf(rec *CompletedRecord) (labor decimal.Decimal, ok bool) {
	if rec.LaborCost.Valid {
		return rec.LaborCost.Decimal, true
	}
	labor, err := costing.DeriveLaborCost(rec.TotalCost, rec.LineItems)
	if err != nil {
		return decimal.Zero, false
	}
	return labor, true
}
