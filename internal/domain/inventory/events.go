package inventory

import (
	"github.com/inventory/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AggregateTypeStockLevel is the aggregate type of stock level events
const AggregateTypeStockLevel = "StockLevel"

// EventTypeStockBelowThreshold is raised when stock drops under its threshold
const EventTypeStockBelowThreshold = "StockBelowThreshold"

// StockBelowThresholdEvent is raised after a stock write leaves an item
// under its minimum stock (or the global low stock threshold)
type StockBelowThresholdEvent struct {
	shared.BaseDomainEvent
	ItemID     int64           `json:"item_id"`
	ItemSKU    string          `json:"item_sku"`
	LocationID int64           `json:"location_id"`
	QtyOnHand  decimal.Decimal `json:"qty_on_hand"`
	Threshold  decimal.Decimal `json:"threshold"`
}

// NewStockBelowThresholdEvent creates a new StockBelowThresholdEvent
func NewStockBelowThresholdEvent(level *StockLevel, sku string, threshold decimal.Decimal) *StockBelowThresholdEvent {
	return &StockBelowThresholdEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockBelowThreshold, AggregateTypeStockLevel, level.ID),
		ItemID:          level.ItemID,
		ItemSKU:         sku,
		LocationID:      level.LocationID,
		QtyOnHand:       level.QtyOnHand,
		Threshold:       threshold,
	}
}

// EffectiveThreshold picks the item minimum when set, otherwise the global threshold
func EffectiveThreshold(minStock decimal.Decimal, globalThreshold int) decimal.Decimal {
	if minStock.IsPositive() {
		return minStock
	}
	return decimal.NewFromInt(int64(globalThreshold))
}

// IsBelowThreshold reports whether qty is strictly under a positive threshold
func IsBelowThreshold(qty, threshold decimal.Decimal) bool {
	return threshold.IsPositive() && qty.LessThan(threshold)
}
