package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns defaultOrder (upper-cased) if the input is invalid or empty.
func ValidateSortOrder(orderDir, defaultOrder string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" || normalized == "DESC" {
		return normalized
	}
	if strings.EqualFold(defaultOrder, "ASC") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]string, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return allowedFields[defaultField]
	}
	if column, ok := allowedFields[trimmed]; ok {
		return column
	}
	return allowedFields[defaultField]
}

// Whitelists map the sort_by value accepted by the API to a SQL column expression.

// CategorySortFields contains allowed sort fields for categories
var CategorySortFields = map[string]string{
	"id":         "id",
	"name":       "name",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// UnitSortFields contains allowed sort fields for units
var UnitSortFields = map[string]string{
	"id":         "id",
	"name":       "name",
	"symbol":     "symbol",
	"multiplier": "multiplier",
	"created_at": "created_at",
}

// ItemSortFields contains allowed sort fields for items
var ItemSortFields = map[string]string{
	"id":          "id",
	"sku":         "sku",
	"name":        "name",
	"category_id": "category_id",
	"unit_id":     "unit_id",
	"barcode":     "barcode",
	"min_stock":   "min_stock",
	"active":      "active",
	"created_at":  "created_at",
	"updated_at":  "updated_at",
}

// LocationSortFields contains allowed sort fields for locations
var LocationSortFields = map[string]string{
	"id":         "id",
	"name":       "name",
	"code":       "code",
	"active":     "active",
	"created_at": "created_at",
}

// StockLevelSortFields contains allowed sort fields for stock levels
var StockLevelSortFields = map[string]string{
	"id":            "stock_levels.id",
	"item_sku":      "items.sku",
	"item_name":     "items.name",
	"location_name": "locations.name",
	"location_code": "locations.code",
	"qty_on_hand":   "stock_levels.qty_on_hand",
	"updated_at":    "stock_levels.updated_at",
}

// StockTransactionSortFields contains allowed sort fields for stock transactions
var StockTransactionSortFields = map[string]string{
	"id":          "stock_transactions.id",
	"tx_at":       "stock_transactions.tx_at",
	"tx_type":     "stock_transactions.tx_type",
	"qty":         "stock_transactions.qty",
	"item_id":     "stock_transactions.item_id",
	"location_id": "stock_transactions.location_id",
	"ref":         "stock_transactions.ref",
	"created_at":  "stock_transactions.created_at",
}

// IssueSortFields contains allowed sort fields for issues
var IssueSortFields = map[string]string{
	"id":           "id",
	"code":         "code",
	"status":       "status",
	"requested_by": "requested_by",
	"issued_at":    "issued_at",
	"created_at":   "created_at",
	"updated_at":   "updated_at",
}

// IssueItemSortFields contains allowed sort fields for issue lines
var IssueItemSortFields = map[string]string{
	"id":        "issue_items.id",
	"issue_id":  "issue_items.issue_id",
	"item_id":   "issue_items.item_id",
	"qty":       "issue_items.qty",
	"item_sku":  "items.sku",
	"item_name": "items.name",
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]string{
	"id":            "id",
	"name":          "name",
	"email":         "email",
	"role":          "role",
	"active":        "active",
	"last_login_at": "last_login_at",
	"created_at":    "created_at",
}
