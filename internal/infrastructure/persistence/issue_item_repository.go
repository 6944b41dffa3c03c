package persistence

import (
	"context"

	"github.com/inventory/backend/internal/domain/issuance"
	"github.com/inventory/backend/internal/domain/shared"
	"gorm.io/gorm"
)

const issueItemViewColumns = `issue_items.id, issue_items.issue_id, issue_items.item_id, issue_items.qty,
items.sku AS item_sku, items.name AS item_name, categories.name AS category_name,
units.name AS unit_name, units.symbol AS unit_symbol`

// GormIssueItemRepository implements IssueItemRepository using GORM
type GormIssueItemRepository struct {
	db *gorm.DB
}

// NewGormIssueItemRepository creates a new GormIssueItemRepository
func NewGormIssueItemRepository(db *gorm.DB) *GormIssueItemRepository {
	return &GormIssueItemRepository{db: db}
}

// FindByID finds an issue line by its ID
func (r *GormIssueItemRepository) FindByID(ctx context.Context, id int64) (*issuance.IssueItem, error) {
	return firstByID[issuance.IssueItem](ctx, r.db, id)
}

func (r *GormIssueItemRepository) viewQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("issue_items").
		Joins("JOIN items ON items.id = issue_items.item_id").
		Joins("LEFT JOIN categories ON categories.id = items.category_id").
		Joins("LEFT JOIN units ON units.id = items.unit_id")
}

// FindAll lists enriched issue lines. Supported filters: issue_id, item_id.
func (r *GormIssueItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]issuance.IssueItemView, int64, error) {
	query := applySearch(r.viewQuery(ctx), filter.Search, "items.sku", "items.name")
	if id, ok := filterInt64(filter, "issue_id"); ok {
		query = query.Where("issue_items.issue_id = ?", id)
	}
	if id, ok := filterInt64(filter, "item_id"); ok {
		query = query.Where("issue_items.item_id = ?", id)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var views []issuance.IssueItemView
	query = applyOrderAndPage(query.Select(issueItemViewColumns), filter, IssueItemSortFields, "id", shared.SortOrderAsc, "issue_items.id")
	if err := query.Scan(&views).Error; err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// FindViewsByIssue returns every enriched line of an issue in insertion order
func (r *GormIssueItemRepository) FindViewsByIssue(ctx context.Context, issueID int64) ([]issuance.IssueItemView, error) {
	var views []issuance.IssueItemView
	if err := r.viewQuery(ctx).
		Select(issueItemViewColumns).
		Where("issue_items.issue_id = ?", issueID).
		Order("issue_items.id ASC").
		Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

// FindByIssue returns the raw lines of an issue
func (r *GormIssueItemRepository) FindByIssue(ctx context.Context, issueID int64) ([]issuance.IssueItem, error) {
	var lines []issuance.IssueItem
	if err := r.db.WithContext(ctx).Where("issue_id = ?", issueID).Order("id ASC").Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// ExistsByIssueAndItem checks whether the item is already on the issue
func (r *GormIssueItemRepository) ExistsByIssueAndItem(ctx context.Context, issueID, itemID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&issuance.IssueItem{}).
		Where("issue_id = ? AND item_id = ?", issueID, itemID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsForItem reports whether any issue line references the item
func (r *GormIssueItemRepository) ExistsForItem(ctx context.Context, itemID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&issuance.IssueItem{}).
		Where("item_id = ?", itemID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count counts all issue lines
func (r *GormIssueItemRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&issuance.IssueItem{}).Count(&count).Error
	return count, err
}

// Save creates or updates an issue line
func (r *GormIssueItemRepository) Save(ctx context.Context, line *issuance.IssueItem) error {
	return translateError(r.db.WithContext(ctx).Save(line).Error)
}

// SaveBatch inserts several lines in one statement
func (r *GormIssueItemRepository) SaveBatch(ctx context.Context, lines []*issuance.IssueItem) error {
	if len(lines) == 0 {
		return nil
	}
	return translateError(r.db.WithContext(ctx).Create(&lines).Error)
}

// Delete deletes an issue line
func (r *GormIssueItemRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID[issuance.IssueItem](ctx, r.db, id)
}

// DeleteByIssue removes every line of an issue
func (r *GormIssueItemRepository) DeleteByIssue(ctx context.Context, issueID int64) error {
	return r.db.WithContext(ctx).Where("issue_id = ?", issueID).Delete(&issuance.IssueItem{}).Error
}

// Ensure GormIssueItemRepository implements IssueItemRepository
var _ issuance.IssueItemRepository = (*GormIssueItemRepository)(nil)
