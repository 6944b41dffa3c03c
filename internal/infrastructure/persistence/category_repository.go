package persistence

import (
	"context"
	"strings"

	"github.com/inventory/backend/internal/domain/catalog"
	"github.com/inventory/backend/internal/domain/shared"
	"gorm.io/gorm"
)

var categoryList = listSpec{
	searchColumns: []string{"name"},
	sortable:      CategorySortFields,
	defaultSort:   "name",
	defaultDir:    shared.SortOrderAsc,
}

type GormCategoryRepository struct {
	db *gorm.DB
}

func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

func (r *GormCategoryRepository) FindByID(ctx context.Context, id int64) (*catalog.Category, error) {
	return firstByID[catalog.Category](ctx, r.db, id)
}

func (r *GormCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Category, int64, error) {
	return findPage[catalog.Category](r.db.WithContext(ctx).Model(&catalog.Category{}), filter, categoryList)
}

// ExistsByName compares names case-insensitively
func (r *GormCategoryRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	return existsOther[catalog.Category](ctx, r.db, excludeID,
		"LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))
}

func (r *GormCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	return translateError(r.db.WithContext(ctx).Save(category).Error)
}

func (r *GormCategoryRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID[catalog.Category](ctx, r.db, id)
}

var _ catalog.CategoryRepository = (*GormCategoryRepository)(nil)
