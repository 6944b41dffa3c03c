package catalog

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/inventory/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	skuPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9._-]*$`)
	upper      = cases.Upper(language.Und)
)

// Item is a stock keeping unit tracked by the inventory
type Item struct {
	shared.BaseAggregateRoot
	SKU         string          `gorm:"column:sku;type:varchar(50);not null;uniqueIndex:idx_items_sku"`
	Name        string          `gorm:"type:varchar(200);not null"`
	CategoryID  int64           `gorm:"not null;index"`
	UnitID      int64           `gorm:"not null;index"`
	OwnerUserID *int64          `gorm:"index"`
	Barcode     *string         `gorm:"type:varchar(64);uniqueIndex:idx_items_barcode"`
	MinStock    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ImageURL    string          `gorm:"type:varchar(500)"`
	Active      bool            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// NormalizeSKU trims and uppercases a SKU
func NormalizeSKU(sku string) string {
	return upper.String(strings.TrimSpace(sku))
}

// NewItem creates a new active item
func NewItem(sku, name string, categoryID, unitID int64) (*Item, error) {
	sku = NormalizeSKU(sku)
	name = strings.TrimSpace(name)

	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if err := validateItemName(name); err != nil {
		return nil, err
	}
	if err := validateReferences(categoryID, unitID); err != nil {
		return nil, err
	}

	return &Item{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               sku,
		Name:              name,
		CategoryID:        categoryID,
		UnitID:            unitID,
		MinStock:          decimal.Zero,
		Active:            true,
	}, nil
}

// Update changes the core attributes of an item
func (i *Item) Update(sku, name string, categoryID, unitID int64) error {
	sku = NormalizeSKU(sku)
	name = strings.TrimSpace(name)

	if err := validateSKU(sku); err != nil {
		return err
	}
	if err := validateItemName(name); err != nil {
		return err
	}
	if err := validateReferences(categoryID, unitID); err != nil {
		return err
	}

	i.SKU = sku
	i.Name = name
	i.CategoryID = categoryID
	i.UnitID = unitID
	i.MarkChanged()
	return nil
}

// SetMinStock sets the reorder threshold
func (i *Item) SetMinStock(minStock decimal.Decimal) error {
	if minStock.IsNegative() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Minimum stock cannot be negative")
	}
	i.MinStock = minStock
	i.Touch()
	return nil
}

// SetBarcode sets or clears the barcode. An empty value clears it.
func (i *Item) SetBarcode(barcode string) error {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		i.Barcode = nil
		i.Touch()
		return nil
	}
	if utf8.RuneCountInString(barcode) > 64 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Barcode cannot exceed 64 characters")
	}
	i.Barcode = &barcode
	i.Touch()
	return nil
}

// SetOwner assigns the responsible user. Nil clears it.
func (i *Item) SetOwner(userID *int64) error {
	if userID != nil && *userID <= 0 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Owner user ID must be positive")
	}
	i.OwnerUserID = userID
	i.Touch()
	return nil
}

// SetImageURL sets the image location
func (i *Item) SetImageURL(url string) error {
	url = strings.TrimSpace(url)
	if utf8.RuneCountInString(url) > 500 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Image URL cannot exceed 500 characters")
	}
	i.ImageURL = url
	i.Touch()
	return nil
}

// Activate marks the item as active
func (i *Item) Activate() {
	i.Active = true
	i.MarkChanged()
}

// Deactivate marks the item as inactive. Inactive items keep their history.
func (i *Item) Deactivate() {
	i.Active = false
	i.MarkChanged()
}

// BarcodeValue returns the barcode or an empty string
func (i *Item) BarcodeValue() string {
	if i.Barcode == nil {
		return ""
	}
	return *i.Barcode
}

// IsBelowMinimum reports whether qty is under the item's minimum stock
func (i *Item) IsBelowMinimum(qty decimal.Decimal) bool {
	return i.MinStock.IsPositive() && qty.LessThan(i.MinStock)
}

func validateSKU(sku string) error {
	if sku == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "SKU cannot be empty")
	}
	if utf8.RuneCountInString(sku) > 50 {
		return shared.NewDomainError(shared.CodeInvalidInput, "SKU cannot exceed 50 characters")
	}
	if !skuPattern.MatchString(sku) {
		return shared.NewDomainError(shared.CodeInvalidInput, "SKU may only contain letters, digits, '.', '_' and '-'")
	}
	return nil
}

func validateItemName(name string) error {
	if name == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Item name cannot be empty")
	}
	if utf8.RuneCountInString(name) > 200 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Item name cannot exceed 200 characters")
	}
	return nil
}

func validateReferences(categoryID, unitID int64) error {
	if categoryID <= 0 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Category ID must be positive")
	}
	if unitID <= 0 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Unit ID must be positive")
	}
	return nil
}
