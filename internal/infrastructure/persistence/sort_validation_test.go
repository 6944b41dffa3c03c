package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		defaultOrder string
		expected     string
	}{
		{"empty string returns default DESC", "", "desc", "DESC"},
		{"empty string returns default ASC", "", "asc", "ASC"},
		{"ASC uppercase returns ASC", "ASC", "desc", "ASC"},
		{"asc lowercase returns ASC", "asc", "desc", "ASC"},
		{"desc lowercase returns DESC", "desc", "asc", "DESC"},
		{"invalid value returns default", "INVALID", "asc", "ASC"},
		{"sql injection attempt returns default", "ASC; DROP TABLE users;--", "desc", "DESC"},
		{"whitespace around ASC returns ASC", "  asc  ", "desc", "ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortOrder(tt.input, tt.defaultOrder))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		defaultField string
		expected     string
	}{
		{"empty string returns default", "", "name", "name"},
		{"valid field returns column", "sku", "name", "sku"},
		{"invalid field returns default", "invalid_field", "name", "name"},
		{"sql injection attempt returns default", "id; DROP TABLE items;--", "name", "name"},
		{"case sensitive - uppercase invalid", "NAME", "id", "id"},
		{"whitespace around valid field returns field", "  name  ", "id", "name"},
		{"field with quotes injection returns default", "name'--", "id", "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortField(tt.input, ItemSortFields, tt.defaultField))
		})
	}

	t.Run("qualified columns for joined lists", func(t *testing.T) {
		assert.Equal(t, "items.sku", ValidateSortField("item_sku", StockLevelSortFields, "id"))
		assert.Equal(t, "stock_transactions.tx_at", ValidateSortField("bogus", StockTransactionSortFields, "tx_at"))
	})
}

func TestSortFieldsWhitelists(t *testing.T) {
	whitelists := map[string]map[string]string{
		"CategorySortFields":         CategorySortFields,
		"UnitSortFields":             UnitSortFields,
		"ItemSortFields":             ItemSortFields,
		"LocationSortFields":         LocationSortFields,
		"StockLevelSortFields":       StockLevelSortFields,
		"StockTransactionSortFields": StockTransactionSortFields,
		"IssueSortFields":            IssueSortFields,
		"IssueItemSortFields":        IssueItemSortFields,
		"UserSortFields":             UserSortFields,
	}

	for name, whitelist := range whitelists {
		t.Run(name+" has id", func(t *testing.T) {
			assert.NotEmpty(t, whitelist["id"], "%s should contain 'id'", name)
		})
		t.Run(name+" has no unsafe columns", func(t *testing.T) {
			for key, column := range whitelist {
				assert.NotContains(t, column, " ", "%s[%s]", name, key)
				assert.NotContains(t, column, ";", "%s[%s]", name, key)
			}
		})
	}
}
