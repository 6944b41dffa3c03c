package persistence

import (
	"context"
	"strings"

	"github.com/inventory/backend/internal/domain/catalog"
	"github.com/inventory/backend/internal/domain/shared"
	"gorm.io/gorm"
)

var unitList = listSpec{
	searchColumns: []string{"name", "symbol"},
	sortable:      UnitSortFields,
	defaultSort:   "name",
	defaultDir:    shared.SortOrderAsc,
}

// GormUnitRepository stores units of measure. Names are unique ignoring case,
// symbols are unique as written.
type GormUnitRepository struct {
	db *gorm.DB
}

func NewGormUnitRepository(db *gorm.DB) *GormUnitRepository {
	return &GormUnitRepository{db: db}
}

func (r *GormUnitRepository) FindByID(ctx context.Context, id int64) (*catalog.Unit, error) {
	return firstByID[catalog.Unit](ctx, r.db, id)
}

func (r *GormUnitRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Unit, int64, error) {
	return findPage[catalog.Unit](r.db.WithContext(ctx).Model(&catalog.Unit{}), filter, unitList)
}

func (r *GormUnitRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	return existsOther[catalog.Unit](ctx, r.db, excludeID,
		"LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))
}

func (r *GormUnitRepository) ExistsBySymbol(ctx context.Context, symbol string, excludeID int64) (bool, error) {
	return existsOther[catalog.Unit](ctx, r.db, excludeID, "symbol = ?", strings.TrimSpace(symbol))
}

func (r *GormUnitRepository) Save(ctx context.Context, unit *catalog.Unit) error {
	return translateError(r.db.WithContext(ctx).Save(unit).Error)
}

func (r *GormUnitRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID[catalog.Unit](ctx, r.db, id)
}

var _ catalog.UnitRepository = (*GormUnitRepository)(nil)
