package issuance

import (
	"github.com/inventory/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// IssueItem is one line of an issue
type IssueItem struct {
	shared.BaseEntity
	IssueID int64           `gorm:"not null;uniqueIndex:idx_issue_items_issue_item,priority:1"`
	ItemID  int64           `gorm:"not null;uniqueIndex:idx_issue_items_issue_item,priority:2;index"`
	Qty     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (IssueItem) TableName() string {
	return "issue_items"
}

// NewIssueItem creates a new issue line
func NewIssueItem(issueID, itemID int64, qty decimal.Decimal) (*IssueItem, error) {
	if issueID <= 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Issue ID must be positive")
	}
	if itemID <= 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Item ID must be positive")
	}
	if err := validateQty(qty); err != nil {
		return nil, err
	}
	return &IssueItem{
		BaseEntity: shared.NewBaseEntity(),
		IssueID:    issueID,
		ItemID:     itemID,
		Qty:        qty,
	}, nil
}

// SetQty changes the requested quantity
func (l *IssueItem) SetQty(qty decimal.Decimal) error {
	if err := validateQty(qty); err != nil {
		return err
	}
	l.Qty = qty
	l.Touch()
	return nil
}

func validateQty(qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Quantity must be greater than zero")
	}
	return nil
}

// IssueItemView is an issue line enriched with item catalog labels
type IssueItemView struct {
	ID           int64           `json:"id"`
	IssueID      int64           `json:"issue_id"`
	ItemID       int64           `json:"item_id"`
	Qty          decimal.Decimal `json:"qty"`
	ItemSKU      string          `json:"item_sku"`
	ItemName     string          `json:"item_name"`
	CategoryName string          `json:"category_name"`
	UnitName     string          `json:"unit_name"`
	UnitSymbol   string          `json:"unit_symbol"`
}
