package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/inventory/backend/internal/domain/issuance"
	"github.com/inventory/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormIssueRepository implements IssueRepository using GORM
type GormIssueRepository struct {
	db *gorm.DB
}

// NewGormIssueRepository creates a new GormIssueRepository
func NewGormIssueRepository(db *gorm.DB) *GormIssueRepository {
	return &GormIssueRepository{db: db}
}

// FindByID finds an issue by its ID
func (r *GormIssueRepository) FindByID(ctx context.Context, id int64) (*issuance.Issue, error) {
	return firstByID[issuance.Issue](ctx, r.db, id)
}

// FindByCode finds an issue by its code
func (r *GormIssueRepository) FindByCode(ctx context.Context, code string) (*issuance.Issue, error) {
	var issue issuance.Issue
	if err := r.db.WithContext(ctx).Where("code = ?", strings.TrimSpace(code)).First(&issue).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &issue, nil
}

// FindAll lists issues newest first by default
func (r *GormIssueRepository) FindAll(ctx context.Context, filter shared.Filter) ([]issuance.Issue, int64, error) {
	query := applySearch(r.db.WithContext(ctx).Model(&issuance.Issue{}), filter.Search, "code", "note")
	if status, ok := filterString(filter, "status"); ok {
		query = query.Where("status = ?", strings.ToUpper(status))
	}
	if id, ok := filterInt64(filter, "requested_by"); ok {
		query = query.Where("requested_by = ?", id)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var issues []issuance.Issue
	query = applyOrderAndPage(query, filter, IssueSortFields, "created_at", shared.SortOrderDesc, "id")
	if err := query.Find(&issues).Error; err != nil {
		return nil, 0, err
	}
	return issues, total, nil
}

// ExistsByCode checks for another issue with the same code
func (r *GormIssueRepository) ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&issuance.Issue{}).Where("code = ?", strings.TrimSpace(code))
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

type statusCountRow struct {
	Status string
	Count  int64
}

// CountByStatus groups issues by status. Statuses without issues are absent from the map.
func (r *GormIssueRepository) CountByStatus(ctx context.Context) (map[issuance.IssueStatus]int64, error) {
	var rows []statusCountRow
	if err := r.db.WithContext(ctx).Model(&issuance.Issue{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[issuance.IssueStatus]int64, len(rows))
	for _, row := range rows {
		counts[issuance.IssueStatus(row.Status)] = row.Count
	}
	return counts, nil
}

// Save inserts a new issue or writes a changed one back. Every Issue
// mutation bumps Version once, so the write only lands while the row still
// holds Version-1. A request that loaded the issue before another one
// committed gets shared.ErrConcurrentUpdate.
func (r *GormIssueRepository) Save(ctx context.Context, issue *issuance.Issue) error {
	db := r.db.WithContext(ctx)
	if issue.ID == 0 {
		return translateError(db.Create(issue).Error)
	}

	result := db.Model(&issuance.Issue{}).
		Where("id = ? AND version = ?", issue.ID, issue.Version-1).
		Updates(map[string]interface{}{
			"code":         issue.Code,
			"status":       issue.Status.String(),
			"requested_by": issue.RequestedBy,
			"approved_by":  issue.ApprovedBy,
			"issued_at":    issue.IssuedAt,
			"note":         issue.Note,
			"version":      issue.Version,
			"updated_at":   issue.UpdatedAt,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError(shared.CodeConcurrentUpdate,
			fmt.Sprintf("Issue %d was changed by another request, reload it and retry", issue.ID))
	}
	return nil
}

// Delete deletes an issue. Callers remove its lines first.
func (r *GormIssueRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID[issuance.Issue](ctx, r.db, id)
}

// Ensure GormIssueRepository implements IssueRepository
var _ issuance.IssueRepository = (*GormIssueRepository)(nil)
