package costing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/georgemunganga/autoservice-backend/internal/platform/apperr"
)

// Round2 rounds half away from zero to 2 decimal places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ValidateLine checks quantity >= 1 and unit price >= 0. pos is the 1-based
// line number used in the error.
func ValidateLine(pos int, item LineItem) error {
	if item.Quantity < 1 {
		return apperr.Validation("line %d: quantity must be >= 1", pos)
	}
	if item.UnitPrice.IsNegative() {
		return apperr.Validation("line %d: unit_price must be >= 0", pos)
	}
	return nil
}

// LineCost is quantity × unit price, rounded to 2 places.
func LineCost(item LineItem) decimal.Decimal {
	return Round2(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
}

// PartsCost sums the rounded line costs.
func PartsCost(items []LineItem) (decimal.Decimal, error) {
	sum := decimal.Zero
	for i, item := range items {
		if err := ValidateLine(i+1, item); err != nil {
			return decimal.Zero, err
		}
		sum = sum.Add(LineCost(item))
	}
	return Round2(sum), nil
}

// TotalCost is parts cost plus labor cost. Negative labor is rejected.
func TotalCost(items []LineItem, labor decimal.Decimal) (decimal.Decimal, error) {
	if labor.IsNegative() {
		return decimal.Zero, apperr.Validation("labor_cost must be >= 0")
	}
	parts, err := PartsCost(items)
	if err != nil {
		return decimal.Zero, err
	}
	return Round2(parts.Add(labor)), nil
}

// DeriveLaborCost recovers the labor portion of a record that only stored a
// combined total. The result is only exact if line prices are unchanged
// since the total was saved; a negative result is reported, not clamped.
func DeriveLaborCost(storedTotal decimal.Decimal, items []LineItem) (decimal.Decimal, error) {
	parts, err := PartsCost(items)
	if err != nil {
		return decimal.Zero, err
	}
	labor := Round2(storedTotal.Sub(parts))
	if labor.IsNegative() {
		return decimal.Zero, apperr.Validation("stored total %s is below parts cost %s", storedTotal.StringFixed(2), parts.StringFixed(2))
	}
	return labor, nil
}

// Earnings is the technician's share of the labor cost. Parts are never
// part of the base. No technician or non-positive labor earns 0.
func Earnings(labor decimal.Decimal, tech *Technician) decimal.Decimal {
	if tech == nil || !labor.IsPositive() {
		return decimal.Zero
	}
	pct := DefaultEarningsPercentage
	if tech.EarningsPercentage.Valid {
		pct = tech.EarningsPercentage.Decimal
	}
	return Round2(labor.Mul(pct).Div(hundred))
}

// Compute validates req and returns the full cost breakdown.
func Compute(req CostRequest) (CostBreakdown, error) {
	if req.LaborCost.IsNegative() {
		return CostBreakdown{}, apperr.Validation("labor_cost must be >= 0")
	}
	if t := req.Technician; t != nil && req.CompanyID != uuid.Nil {
		if err := t.BelongsTo(req.CompanyID); err != nil {
			return CostBreakdown{}, err
		}
	}
	if t := req.Technician; t != nil && t.EarningsPercentage.Valid {
		if p := t.EarningsPercentage.Decimal; p.IsNegative() || p.GreaterThan(hundred) {
			return CostBreakdown{}, apperr.Validation("earnings_percentage must be between 0 and 100")
		}
	}
	parts, err := PartsCost(req.LineItems)
	if err != nil {
		return CostBreakdown{}, err
	}
	labor := Round2(req.LaborCost)
	return CostBreakdown{
		PartsCost:          parts,
		LaborCost:          labor,
		TotalCost:          Round2(parts.Add(labor)),
		TechnicianEarnings: Earnings(labor, req.Technician),
	}, nil
}
