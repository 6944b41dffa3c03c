package catalog

import (
	"context"

	"github.com/inventory/backend/internal/domain/shared"
)

// CategoryRepository defines persistence for categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id int64) (*Category, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, int64, error)
	// ExistsByName is case-insensitive; excludeID skips the category being renamed
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
	Save(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id int64) error
}

// UnitRepository defines persistence for units of measure
type UnitRepository interface {
	FindByID(ctx context.Context, id int64) (*Unit, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Unit, int64, error)
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
	ExistsBySymbol(ctx context.Context, symbol string, excludeID int64) (bool, error)
	Save(ctx context.Context, unit *Unit) error
	Delete(ctx context.Context, id int64) error
}

// ItemRepository defines persistence for items
type ItemRepository interface {
	FindByID(ctx context.Context, id int64) (*Item, error)
	FindByIDs(ctx context.Context, ids []int64) ([]Item, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Item, int64, error)
	// FindActive returns every active item ordered by SKU
	FindActive(ctx context.Context) ([]Item, error)
	ExistsBySKU(ctx context.Context, sku string, excludeID int64) (bool, error)
	ExistsByBarcode(ctx context.Context, barcode string, excludeID int64) (bool, error)
	CountByCategory(ctx context.Context, categoryID int64) (int64, error)
	CountByUnit(ctx context.Context, unitID int64) (int64, error)
	Count(ctx context.Context, activeOnly bool) (int64, error)
	Save(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id int64) error
}
