package inventory

import (
	"time"

	"github.com/inventory/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// CreateLocationRequest represents a request to create a location
type CreateLocationRequest struct {
	Name   string `json:"name" binding:"required,min=1,max=120"`
	Code   string `json:"code" binding:"required,min=1,max=30"`
	Active *bool  `json:"active"`
}

// UpdateLocationRequest represents a request to update a location; nil fields keep their value
type UpdateLocationRequest struct {
	Name   *string `json:"name" binding:"omitempty,min=1,max=120"`
	Code   *string `json:"code" binding:"omitempty,min=1,max=30"`
	Active *bool   `json:"active"`
}

// LocationResponse represents a location in API responses
type LocationResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToLocationResponse converts a domain Location to LocationResponse
func ToLocationResponse(l *inventory.Location) LocationResponse {
	return LocationResponse{
		ID:        l.ID,
		Name:      l.Name,
		Code:      l.Code,
		Active:    l.Active,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

// CreateTransactionRequest represents a request to record a stock transaction
type CreateTransactionRequest struct {
	ItemID       int64           `json:"item_id" binding:"required,gt=0"`
	LocationID   int64           `json:"location_id" binding:"required,gt=0"`
	ToLocationID *int64          `json:"to_location_id" binding:"omitempty,gt=0"`
	TxType       string          `json:"tx_type" binding:"required,oneof=IN OUT ADJ XFER"`
	Qty          decimal.Decimal `json:"qty"`
	Ref          string          `json:"ref" binding:"max=100"`
	Note         string          `json:"note" binding:"max=500"`
	TxAt         *time.Time      `json:"tx_at"`
}

// UpdateTransactionRequest represents a request to change a stock transaction.
// Nil fields keep their current value.
type UpdateTransactionRequest struct {
	ItemID       *int64           `json:"item_id" binding:"omitempty,gt=0"`
	LocationID   *int64           `json:"location_id" binding:"omitempty,gt=0"`
	ToLocationID *int64           `json:"to_location_id" binding:"omitempty,gte=0"`
	TxType       *string          `json:"tx_type" binding:"omitempty,oneof=IN OUT ADJ XFER"`
	Qty          *decimal.Decimal `json:"qty"`
	Ref          *string          `json:"ref" binding:"omitempty,max=100"`
	Note         *string          `json:"note" binding:"omitempty,max=500"`
	TxAt         *time.Time       `json:"tx_at"`
}

// TransactionResponse represents a stock transaction in API responses.
// QtyOnHand is the resulting quantity at the source location and is only set on writes.
type TransactionResponse struct {
	ID           int64            `json:"id"`
	ItemID       int64            `json:"item_id"`
	LocationID   int64            `json:"location_id"`
	ToLocationID *int64           `json:"to_location_id,omitempty"`
	TxType       string           `json:"tx_type"`
	Qty          decimal.Decimal  `json:"qty"`
	Ref          string           `json:"ref"`
	Note         string           `json:"note"`
	TxAt         time.Time        `json:"tx_at"`
	UserID       *int64           `json:"user_id"`
	QtyOnHand    *decimal.Decimal `json:"qty_on_hand,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// ToTransactionResponse converts a domain StockTransaction to TransactionResponse
func ToTransactionResponse(t *inventory.StockTransaction) TransactionResponse {
	return TransactionResponse{
		ID:           t.ID,
		ItemID:       t.ItemID,
		LocationID:   t.LocationID,
		ToLocationID: t.ToLocationID,
		TxType:       t.TxType.String(),
		Qty:          t.Qty,
		Ref:          t.Ref,
		Note:         t.Note,
		TxAt:         t.TxAt,
		UserID:       t.UserID,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// DeleteTransactionResult is returned after a transaction is removed
type DeleteTransactionResult struct {
	Message string `json:"message"`
}

// StockLevelResponse is a stock level row with item and location labels
type StockLevelResponse struct {
	inventory.StockLevelView
	Threshold decimal.Decimal `json:"threshold"`
	BelowMin  bool            `json:"below_min"`
}
