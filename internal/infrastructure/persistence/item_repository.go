package persistence

import (
	"context"
	"strings"

	"github.com/inventory/backend/internal/domain/catalog"
	"github.com/inventory/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormItemRepository implements ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID finds an item by its ID
func (r *GormItemRepository) FindByID(ctx context.Context, id int64) (*catalog.Item, error) {
	return firstByID[catalog.Item](ctx, r.db, id)
}

// FindByIDs returns the items with the given ids ordered by SKU; missing ids are skipped
func (r *GormItemRepository) FindByIDs(ctx context.Context, ids []int64) ([]catalog.Item, error) {
	if len(ids) == 0 {
		return []catalog.Item{}, nil
	}
	var items []catalog.Item
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("sku ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindAll finds all items matching the filter.
// Supported filters: active_only (bool), category_id, unit_id, owner_user_id.
func (r *GormItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Item, int64, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Item{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []catalog.Item
	query = applyOrderAndPage(query, filter, ItemSortFields, "name", shared.SortOrderAsc, "id")
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *GormItemRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search, "sku", "name", "barcode")
	if activeOnly, ok := filterBool(filter, "active_only"); ok && activeOnly {
		query = query.Where("active = ?", true)
	}
	if id, ok := filterInt64(filter, "category_id"); ok {
		query = query.Where("category_id = ?", id)
	}
	if id, ok := filterInt64(filter, "unit_id"); ok {
		query = query.Where("unit_id = ?", id)
	}
	if id, ok := filterInt64(filter, "owner_user_id"); ok {
		query = query.Where("owner_user_id = ?", id)
	}
	return query
}

// FindActive returns every active item ordered by SKU
func (r *GormItemRepository) FindActive(ctx context.Context) ([]catalog.Item, error) {
	var items []catalog.Item
	if err := r.db.WithContext(ctx).Where("active = ?", true).Order("sku ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ExistsBySKU checks for another item with the same SKU
func (r *GormItemRepository) ExistsBySKU(ctx context.Context, sku string, excludeID int64) (bool, error) {
	return r.exists(ctx, "sku = ?", catalog.NormalizeSKU(sku), excludeID)
}

// ExistsByBarcode checks for another item with the same barcode
func (r *GormItemRepository) ExistsByBarcode(ctx context.Context, barcode string, excludeID int64) (bool, error) {
	return r.exists(ctx, "barcode = ?", strings.TrimSpace(barcode), excludeID)
}

func (r *GormItemRepository) exists(ctx context.Context, cond string, value string, excludeID int64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&catalog.Item{}).Where(cond, value)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByCategory counts items referencing a category
func (r *GormItemRepository) CountByCategory(ctx context.Context, categoryID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&catalog.Item{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

// CountByUnit counts items referencing a unit
func (r *GormItemRepository) CountByUnit(ctx context.Context, unitID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&catalog.Item{}).Where("unit_id = ?", unitID).Count(&count).Error
	return count, err
}

// Count counts items, optionally only the active ones
func (r *GormItemRepository) Count(ctx context.Context, activeOnly bool) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&catalog.Item{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	err := query.Count(&count).Error
	return count, err
}

// Save creates or updates an item
func (r *GormItemRepository) Save(ctx context.Context, item *catalog.Item) error {
	return translateError(r.db.WithContext(ctx).Save(item).Error)
}

// Delete hard-deletes an item
func (r *GormItemRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID[catalog.Item](ctx, r.db, id)
}

// Ensure GormItemRepository implements ItemRepository
var _ catalog.ItemRepository = (*GormItemRepository)(nil)
