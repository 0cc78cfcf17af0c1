package costing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/georgemunganga/autoservice-backend/internal/platform/apperr"
)

// SelectComponent applies a catalog selection to a line. A new line, or a
// line switching to a different component, takes the entry's current price
// and loses any custom price. Re-selecting the same component is a no-op.
func SelectComponent(item LineItem, entry CatalogEntry) LineItem {
	if item.ComponentID != uuid.Nil && item.ComponentID == entry.ComponentID {
		return item
	}
	item.ComponentID = entry.ComponentID
	item.UnitPrice = entry.Price
	item.CustomPrice = false
	return item
}

// OverridePrice records a user-entered unit price verbatim.
func OverridePrice(item LineItem, price decimal.Decimal) (LineItem, error) {
	if item.ComponentID == uuid.Nil {
		return item, apperr.Validation("select a component before setting its price")
	}
	if price.IsNegative() {
		return item, apperr.Validation("unit_price must be >= 0")
	}
	item.UnitPrice = price
	item.CustomPrice = true
	return item, nil
}

// ResetPrice restores the entry's current price on a line that references it.
func ResetPrice(item LineItem, entry CatalogEntry) (LineItem, error) {
	if item.ComponentID != entry.ComponentID {
		return item, apperr.Validation("line references component %s, not %s", item.ComponentID, entry.ComponentID)
	}
	item.UnitPrice = entry.Price
	item.CustomPrice = false
	return item, nil
}

// Drift is the stored unit price minus the entry's current price. Catalog
// changes never rewrite stored prices; Drift only reports the gap.
func Drift(item LineItem, entry CatalogEntry) decimal.Decimal {
	if item.ComponentID != entry.ComponentID {
		return decimal.Zero
	}
	return item.UnitPrice.Sub(entry.Price)
}
