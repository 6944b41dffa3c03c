package persistence

import (
	"context"
	"time"

	"github.com/inventory/backend/internal/domain/inventory"
	"github.com/inventory/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStockTransactionRepository implements StockTransactionRepository using GORM
type GormStockTransactionRepository struct {
	db *gorm.DB
}

// NewGormStockTransactionRepository creates a new GormStockTransactionRepository
func NewGormStockTransactionRepository(db *gorm.DB) *GormStockTransactionRepository {
	return &GormStockTransactionRepository{db: db}
}

// FindByID finds a stock transaction by its ID
func (r *GormStockTransactionRepository) FindByID(ctx context.Context, id int64) (*inventory.StockTransaction, error) {
	return firstByID[inventory.StockTransaction](ctx, r.db, id)
}

// FindAll lists transactions newest first by default.
// Supported filters: item_id, location_id (source or destination), tx_type, user_id, from, to.
func (r *GormStockTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockTransaction, int64, error) {
	query := r.db.WithContext(ctx).Model(&inventory.StockTransaction{})
	if filter.Search != "" {
		query = query.
			Joins("LEFT JOIN items ON items.id = stock_transactions.item_id").
			Joins("LEFT JOIN locations ON locations.id = stock_transactions.location_id")
		query = applySearch(query, filter.Search,
			"items.sku", "items.name", "locations.name", "locations.code",
			"stock_transactions.ref", "stock_transactions.note")
	}
	query = r.applyFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var txs []inventory.StockTransaction
	query = applyOrderAndPage(query.Select("stock_transactions.*"), filter,
		StockTransactionSortFields, "tx_at", shared.SortOrderDesc, "stock_transactions.id")
	if err := query.Find(&txs).Error; err != nil {
		return nil, 0, err
	}
	return txs, total, nil
}

func (r *GormStockTransactionRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if id, ok := filterInt64(filter, "item_id"); ok {
		query = query.Where("stock_transactions.item_id = ?", id)
	}
	if id, ok := filterInt64(filter, "location_id"); ok {
		query = query.Where("(stock_transactions.location_id = ? OR stock_transactions.to_location_id = ?)", id, id)
	}
	if id, ok := filterInt64(filter, "user_id"); ok {
		query = query.Where("stock_transactions.user_id = ?", id)
	}
	if txType, ok := filterString(filter, "tx_type"); ok {
		query = query.Where("stock_transactions.tx_type = ?", txType)
	}
	if from, ok := filter.Filters["from"].(time.Time); ok && !from.IsZero() {
		query = query.Where("stock_transactions.tx_at >= ?", from)
	}
	if to, ok := filter.Filters["to"].(time.Time); ok && !to.IsZero() {
		query = query.Where("stock_transactions.tx_at <= ?", to)
	}
	return query
}

// ExistsForItem reports whether the item has stock history
func (r *GormStockTransactionRepository) ExistsForItem(ctx context.Context, itemID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&inventory.StockTransaction{}).
		Where("item_id = ?", itemID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsForLocation reports whether the location appears as source or destination
func (r *GormStockTransactionRepository) ExistsForLocation(ctx context.Context, locationID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&inventory.StockTransaction{}).
		Where("location_id = ? OR to_location_id = ?", locationID, locationID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountSince counts transactions dated at or after since
func (r *GormStockTransactionRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&inventory.StockTransaction{}).
		Where("tx_at >= ?", since).Count(&count).Error
	return count, err
}

// Save creates or updates a stock transaction
func (r *GormStockTransactionRepository) Save(ctx context.Context, tx *inventory.StockTransaction) error {
	return translateError(r.db.WithContext(ctx).Save(tx).Error)
}

// Delete deletes a stock transaction
func (r *GormStockTransactionRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID[inventory.StockTransaction](ctx, r.db, id)
}

// Ensure GormStockTransactionRepository implements StockTransactionRepository
var _ inventory.StockTransactionRepository = (*GormStockTransactionRepository)(nil)
