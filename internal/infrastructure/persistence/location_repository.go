package persistence

import (
	"context"

	"github.com/inventory/backend/internal/domain/inventory"
	"github.com/inventory/backend/internal/domain/shared"
	"gorm.io/gorm"
)

var locationList = listSpec{
	searchColumns: []string{"name", "code"},
	sortable:      LocationSortFields,
	defaultSort:   "name",
	defaultDir:    shared.SortOrderAsc,
}

type GormLocationRepository struct {
	db *gorm.DB
}

func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

func (r *GormLocationRepository) FindByID(ctx context.Context, id int64) (*inventory.Location, error) {
	return firstByID[inventory.Location](ctx, r.db, id)
}

// FindAll honours the active_only filter used by the stock entry pickers
func (r *GormLocationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Location, int64, error) {
	query := r.db.WithContext(ctx).Model(&inventory.Location{})
	if activeOnly, ok := filterBool(filter, "active_only"); ok && activeOnly {
		query = query.Where("active = ?", true)
	}
	return findPage[inventory.Location](query, filter, locationList)
}

// ExistsByCode normalises code the same way NewLocation does
func (r *GormLocationRepository) ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error) {
	return existsOther[inventory.Location](ctx, r.db, excludeID, "code = ?", inventory.NormalizeLocationCode(code))
}

func (r *GormLocationRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&inventory.Location{}).Count(&n).Error
	return n, err
}

func (r *GormLocationRepository) Save(ctx context.Context, location *inventory.Location) error {
	return translateError(r.db.WithContext(ctx).Save(location).Error)
}

func (r *GormLocationRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID[inventory.Location](ctx, r.db, id)
}

var _ inventory.LocationRepository = (*GormLocationRepository)(nil)
