package inventory

import (
	"time"

	"github.com/inventory/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StockLevel is the quantity on hand of one item at one location
type StockLevel struct {
	ID         int64           `gorm:"primaryKey;autoIncrement"`
	ItemID     int64           `gorm:"not null;uniqueIndex:idx_stock_levels_item_location,priority:1"`
	LocationID int64           `gorm:"not null;uniqueIndex:idx_stock_levels_item_location,priority:2;index"`
	QtyOnHand  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UpdatedAt  time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StockLevel) TableName() string {
	return "stock_levels"
}

// NewStockLevel creates an empty stock level row
func NewStockLevel(itemID, locationID int64) *StockLevel {
	return &StockLevel{
		ItemID:     itemID,
		LocationID: locationID,
		QtyOnHand:  decimal.Zero,
		UpdatedAt:  time.Now(),
	}
}

// Apply adds a signed delta. With allowNegative false a result below zero
// leaves the level unchanged and returns ErrInsufficientStock.
func (s *StockLevel) Apply(delta decimal.Decimal, allowNegative bool) error {
	next := s.QtyOnHand.Add(delta)
	if !allowNegative && next.IsNegative() {
		return shared.ErrInsufficientStock
	}
	s.QtyOnHand = next
	s.UpdatedAt = time.Now()
	return nil
}

// StockLevelView is a stock level joined with its item and location labels
type StockLevelView struct {
	ID           int64           `json:"id"`
	ItemID       int64           `json:"item_id"`
	ItemSKU      string          `json:"item_sku"`
	ItemName     string          `json:"item_name"`
	MinStock     decimal.Decimal `json:"min_stock"`
	LocationID   int64           `json:"location_id"`
	LocationName string          `json:"location_name"`
	LocationCode string          `json:"location_code"`
	QtyOnHand    decimal.Decimal `json:"qty_on_hand"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// BelowMinimum reports whether the row is under the item's minimum stock
func (v StockLevelView) BelowMinimum() bool {
	return v.MinStock.IsPositive() && v.QtyOnHand.LessThan(v.MinStock)
}
