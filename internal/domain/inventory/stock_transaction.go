package inventory

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/inventory/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TransactionType is the kind of stock movement
type TransactionType string

const (
	// TransactionTypeIn receives stock
	TransactionTypeIn TransactionType = "IN"
	// TransactionTypeOut removes stock
	TransactionTypeOut TransactionType = "OUT"
	// TransactionTypeAdjust corrects stock by a signed quantity
	TransactionTypeAdjust TransactionType = "ADJ"
	// TransactionTypeTransfer moves stock out of a location, optionally into another
	TransactionTypeTransfer TransactionType = "XFER"
)

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// IsValid returns true if the transaction type is valid
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeIn, TransactionTypeOut, TransactionTypeAdjust, TransactionTypeTransfer:
		return true
	}
	return false
}

// AllTransactionTypes lists the valid transaction types
func AllTransactionTypes() []TransactionType {
	return []TransactionType{TransactionTypeIn, TransactionTypeOut, TransactionTypeAdjust, TransactionTypeTransfer}
}

// StockEffect is a signed quantity change at one location
type StockEffect struct {
	LocationID int64
	Delta      decimal.Decimal
}

// StockTransaction records a stock movement of one item
type StockTransaction struct {
	shared.BaseEntity
	ItemID       int64           `gorm:"not null;index:idx_stock_tx_item"`
	LocationID   int64           `gorm:"not null;index:idx_stock_tx_location"`
	ToLocationID *int64          `gorm:"index"`
	TxType       TransactionType `gorm:"type:varchar(10);not null;index:idx_stock_tx_type"`
	Qty          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Ref          string          `gorm:"type:varchar(100)"`
	Note         string          `gorm:"type:varchar(500)"`
	TxAt         time.Time       `gorm:"not null;index:idx_stock_tx_at"`
	UserID       *int64          `gorm:"index"`
}

// TableName returns the table name for GORM
func (StockTransaction) TableName() string {
	return "stock_transactions"
}

// TransactionInput carries the caller supplied attributes of a transaction
type TransactionInput struct {
	ItemID       int64
	LocationID   int64
	ToLocationID *int64
	TxType       TransactionType
	Qty          decimal.Decimal
	Ref          string
	Note         string
	TxAt         *time.Time
	UserID       *int64
}

// NewStockTransaction validates the input and builds a transaction
func NewStockTransaction(in TransactionInput) (*StockTransaction, error) {
	tx := &StockTransaction{BaseEntity: shared.NewBaseEntity()}
	if err := tx.apply(in); err != nil {
		return nil, err
	}
	return tx, nil
}

// Update replaces the attributes of the transaction. The actor is kept.
func (t *StockTransaction) Update(in TransactionInput) error {
	in.UserID = t.UserID
	if in.TxAt == nil {
		at := t.TxAt
		in.TxAt = &at
	}
	if err := t.apply(in); err != nil {
		return err
	}
	t.Touch()
	return nil
}

// Effects returns the signed stock changes the transaction causes
func (t *StockTransaction) Effects() []StockEffect {
	switch t.TxType {
	case TransactionTypeIn, TransactionTypeAdjust:
		return []StockEffect{{LocationID: t.LocationID, Delta: t.Qty}}
	case TransactionTypeOut:
		return []StockEffect{{LocationID: t.LocationID, Delta: t.Qty.Neg()}}
	case TransactionTypeTransfer:
		effects := []StockEffect{{LocationID: t.LocationID, Delta: t.Qty.Neg()}}
		if t.ToLocationID != nil {
			effects = append(effects, StockEffect{LocationID: *t.ToLocationID, Delta: t.Qty})
		}
		return effects
	}
	return nil
}

// ReverseEffects returns the changes that undo Effects
func (t *StockTransaction) ReverseEffects() []StockEffect {
	effects := t.Effects()
	for i := range effects {
		effects[i].Delta = effects[i].Delta.Neg()
	}
	return effects
}

// LocationIDs returns every location the transaction touches
func (t *StockTransaction) LocationIDs() []int64 {
	ids := []int64{t.LocationID}
	if t.TxType == TransactionTypeTransfer && t.ToLocationID != nil {
		ids = append(ids, *t.ToLocationID)
	}
	return ids
}

func (t *StockTransaction) apply(in TransactionInput) error {
	if in.ItemID <= 0 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Item ID must be positive")
	}
	if in.LocationID <= 0 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Location ID must be positive")
	}
	if !in.TxType.IsValid() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Transaction type must be one of IN, OUT, ADJ, XFER")
	}
	if in.Qty.IsZero() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Quantity cannot be zero")
	}
	if in.TxType != TransactionTypeAdjust && in.Qty.IsNegative() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Quantity must be positive for IN, OUT and XFER")
	}

	var toLocation *int64
	if in.TxType == TransactionTypeTransfer && in.ToLocationID != nil {
		if *in.ToLocationID <= 0 {
			return shared.NewDomainError(shared.CodeInvalidInput, "Destination location ID must be positive")
		}
		if *in.ToLocationID == in.LocationID {
			return shared.NewDomainError(shared.CodeInvalidInput, "Destination location must differ from source location")
		}
		id := *in.ToLocationID
		toLocation = &id
	}

	ref := strings.TrimSpace(in.Ref)
	note := strings.TrimSpace(in.Note)
	if utf8.RuneCountInString(ref) > 100 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Reference cannot exceed 100 characters")
	}
	if utf8.RuneCountInString(note) > 500 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Note cannot exceed 500 characters")
	}

	txAt := time.Now()
	if in.TxAt != nil && !in.TxAt.IsZero() {
		txAt = *in.TxAt
	}

	t.ItemID = in.ItemID
	t.LocationID = in.LocationID
	t.ToLocationID = toLocation
	t.TxType = in.TxType
	t.Qty = in.Qty
	t.Ref = ref
	t.Note = note
	t.TxAt = txAt
	t.UserID = in.UserID
	return nil
}
