package persistence

import (
	"context"
	"errors"

	"github.com/inventory/backend/internal/domain/inventory"
	"github.com/inventory/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const stockLevelViewColumns = `stock_levels.id, stock_levels.item_id, items.sku AS item_sku, items.name AS item_name,
items.min_stock AS min_stock, stock_levels.location_id, locations.name AS location_name,
locations.code AS location_code, stock_levels.qty_on_hand, stock_levels.updated_at`

// belowThresholdCondition matches rows under the item minimum, or under the
// global threshold when the item has no minimum of its own.
const belowThresholdCondition = `((items.min_stock > 0 AND stock_levels.qty_on_hand < items.min_stock)
OR (items.min_stock <= 0 AND stock_levels.qty_on_hand < ?))`

// GormStockLevelRepository implements StockLevelRepository using GORM
type GormStockLevelRepository struct {
	db *gorm.DB
}

// NewGormStockLevelRepository creates a new GormStockLevelRepository
func NewGormStockLevelRepository(db *gorm.DB) *GormStockLevelRepository {
	return &GormStockLevelRepository{db: db}
}

// GetForUpdate locks the (item, location) row, inserting it at zero first when missing.
// Must run inside a transaction for the lock to be held until commit.
// SQLite has no row locks; its single writer connection serializes instead.
func (r *GormStockLevelRepository) GetForUpdate(ctx context.Context, itemID, locationID int64) (*inventory.StockLevel, error) {
	level, err := r.lockRow(ctx, itemID, locationID)
	if err == nil {
		return level, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh := inventory.NewStockLevel(itemID, locationID)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(fresh).Error; err != nil {
		return nil, translateError(err)
	}

	// Another writer may have inserted the row between the two statements
	level, err = r.lockRow(ctx, itemID, locationID)
	if err != nil {
		return nil, translateError(err)
	}
	return level, nil
}

func (r *GormStockLevelRepository) lockRow(ctx context.Context, itemID, locationID int64) (*inventory.StockLevel, error) {
	query := r.db.WithContext(ctx)
	if dialectName(r.db) == DriverPostgres {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var level inventory.StockLevel
	if err := query.
		Where("item_id = ? AND location_id = ?", itemID, locationID).
		First(&level).Error; err != nil {
		return nil, err
	}
	return &level, nil
}

// Save writes the quantity back
func (r *GormStockLevelRepository) Save(ctx context.Context, level *inventory.StockLevel) error {
	return r.db.WithContext(ctx).Save(level).Error
}

// FindAll lists stock levels joined with item and location labels.
// Supported filters: item_id, location_id, below_min (bool), threshold (int).
func (r *GormStockLevelRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockLevelView, int64, error) {
	query := r.db.WithContext(ctx).Table("stock_levels").
		Joins("JOIN items ON items.id = stock_levels.item_id").
		Joins("JOIN locations ON locations.id = stock_levels.location_id")
	query = applySearch(query, filter.Search, "items.sku", "items.name", "locations.name", "locations.code")

	if id, ok := filterInt64(filter, "item_id"); ok {
		query = query.Where("stock_levels.item_id = ?", id)
	}
	if id, ok := filterInt64(filter, "location_id"); ok {
		query = query.Where("stock_levels.location_id = ?", id)
	}
	if belowMin, ok := filterBool(filter, "below_min"); ok && belowMin {
		threshold, _ := filterInt64(filter, "threshold")
		query = query.Where(belowThresholdCondition, threshold)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var views []inventory.StockLevelView
	query = applyOrderAndPage(query.Select(stockLevelViewColumns), filter, StockLevelSortFields, "item_sku", shared.SortOrderAsc, "stock_levels.id")
	if err := query.Scan(&views).Error; err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// CountBelowMinimum counts rows under their effective threshold
func (r *GormStockLevelRepository) CountBelowMinimum(ctx context.Context, globalThreshold int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("stock_levels").
		Joins("JOIN items ON items.id = stock_levels.item_id").
		Where("items.active = ?", true).
		Where(belowThresholdCondition, globalThreshold).
		Count(&count).Error
	return count, err
}

// ExistsForItem reports whether any stock level references the item
func (r *GormStockLevelRepository) ExistsForItem(ctx context.Context, itemID int64) (bool, error) {
	return r.exists(ctx, "item_id = ?", itemID)
}

// ExistsForLocation reports whether any stock level references the location
func (r *GormStockLevelRepository) ExistsForLocation(ctx context.Context, locationID int64) (bool, error) {
	return r.exists(ctx, "location_id = ?", locationID)
}

func (r *GormStockLevelRepository) exists(ctx context.Context, cond string, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&inventory.StockLevel{}).Where(cond, id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormStockLevelRepository implements StockLevelRepository
var _ inventory.StockLevelRepository = (*GormStockLevelRepository)(nil)
