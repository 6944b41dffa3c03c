package issuance

import (
	"time"

	appinv "github.com/inventory/backend/internal/application/inventory"
	"github.com/inventory/backend/internal/domain/issuance"
	"github.com/shopspring/decimal"
)

// CreateIssueRequest represents a request to open a draft issue.
// RequestedBy defaults to the caller.
type CreateIssueRequest struct {
	Code        string `json:"code" binding:"required,min=1,max=50"`
	RequestedBy *int64 `json:"requested_by" binding:"omitempty,gt=0"`
	Note        string `json:"note" binding:"max=1000"`
}

// UpdateIssueRequest represents a request to edit a draft issue; nil fields keep their value
type UpdateIssueRequest struct {
	Code        *string `json:"code" binding:"omitempty,min=1,max=50"`
	RequestedBy *int64  `json:"requested_by" binding:"omitempty,gt=0"`
	Note        *string `json:"note" binding:"omitempty,max=1000"`
}

// ChangeStatusRequest moves an issue through its lifecycle.
// LocationID is required when the target status is ISSUED.
type ChangeStatusRequest struct {
	Status     string `json:"status" binding:"required,oneof=DRAFT APPROVED ISSUED CANCELLED"`
	LocationID *int64 `json:"location_id" binding:"omitempty,gt=0"`
}

// IssueResponse represents an issue in API responses
type IssueResponse struct {
	ID          int64      `json:"id"`
	Code        string     `json:"code"`
	Status      string     `json:"status"`
	RequestedBy *int64     `json:"requested_by"`
	ApprovedBy  *int64     `json:"approved_by"`
	IssuedAt    *time.Time `json:"issued_at"`
	Note        string     `json:"note"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToIssueResponse converts a domain Issue to IssueResponse
func ToIssueResponse(i *issuance.Issue) IssueResponse {
	return IssueResponse{
		ID:          i.ID,
		Code:        i.Code,
		Status:      i.Status.String(),
		RequestedBy: i.RequestedBy,
		ApprovedBy:  i.ApprovedBy,
		IssuedAt:    i.IssuedAt,
		Note:        i.Note,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

// StatusChangeResponse is the issue after a status change.
// Transactions lists the stock movements posted when the issue was issued.
type StatusChangeResponse struct {
	IssueResponse
	Transactions []appinv.TransactionResponse `json:"transactions,omitempty"`
}

// IssueItemsResponse is an issue header with its enriched lines
type IssueItemsResponse struct {
	Issue      IssueResponse            `json:"issue"`
	Items      []issuance.IssueItemView `json:"items"`
	TotalQty   decimal.Decimal          `json:"total_qty"`
	TotalItems int                      `json:"total_items"`
}

// CreateIssueItemRequest represents a request to add a line to a draft issue
type CreateIssueItemRequest struct {
	IssueID int64           `json:"issue_id" binding:"required,gt=0"`
	ItemID  int64           `json:"item_id" binding:"required,gt=0"`
	Qty     decimal.Decimal `json:"qty"`
}

// UpdateIssueItemRequest represents a request to change a line; nil fields keep their value
type UpdateIssueItemRequest struct {
	ItemID *int64           `json:"item_id" binding:"omitempty,gt=0"`
	Qty    *decimal.Decimal `json:"qty"`
}

// BulkIssueItemLine is one line of a bulk create request
type BulkIssueItemLine struct {
	ItemID int64           `json:"item_id" binding:"required,gt=0"`
	Qty    decimal.Decimal `json:"qty"`
}

// BulkCreateIssueItemsRequest adds several lines to a draft issue at once
type BulkCreateIssueItemsRequest struct {
	IssueID int64               `json:"issue_id" binding:"required,gt=0"`
	Items   []BulkIssueItemLine `json:"items" binding:"required,min=1,dive"`
}

// IssueItemResponse represents an issue line in API responses
type IssueItemResponse struct {
	ID        int64           `json:"id"`
	IssueID   int64           `json:"issue_id"`
	ItemID    int64           `json:"item_id"`
	Qty       decimal.Decimal `json:"qty"`
	ItemSKU   string          `json:"item_sku"`
	ItemName  string          `json:"item_name"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToIssueItemResponse converts a line and its item labels to IssueItemResponse
func ToIssueItemResponse(l *issuance.IssueItem, sku, name string) IssueItemResponse {
	return IssueItemResponse{
		ID:        l.ID,
		IssueID:   l.IssueID,
		ItemID:    l.ItemID,
		Qty:       l.Qty,
		ItemSKU:   sku,
		ItemName:  name,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

// DeleteResult is returned after an issue or a line is removed
type DeleteResult struct {
	Message string `json:"message"`
}
