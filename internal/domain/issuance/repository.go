package issuance

import (
	"context"

	"github.com/inventory/backend/internal/domain/shared"
)

// IssueRepository defines persistence for issues
type IssueRepository interface {
	FindByID(ctx context.Context, id int64) (*Issue, error)
	FindByCode(ctx context.Context, code string) (*Issue, error)
	// FindAll supports the filters status and requested_by
	FindAll(ctx context.Context, filter shared.Filter) ([]Issue, int64, error)
	ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error)
	CountByStatus(ctx context.Context) (map[IssueStatus]int64, error)
	Save(ctx context.Context, issue *Issue) error
	Delete(ctx context.Context, id int64) error
}

// IssueItemRepository defines persistence for issue lines
type IssueItemRepository interface {
	FindByID(ctx context.Context, id int64) (*IssueItem, error)
	// FindAll supports the filters issue_id and item_id
	FindAll(ctx context.Context, filter shared.Filter) ([]IssueItemView, int64, error)
	FindViewsByIssue(ctx context.Context, issueID int64) ([]IssueItemView, error)
	FindByIssue(ctx context.Context, issueID int64) ([]IssueItem, error)
	ExistsByIssueAndItem(ctx context.Context, issueID, itemID int64) (bool, error)
	ExistsForItem(ctx context.Context, itemID int64) (bool, error)
	Count(ctx context.Context) (int64, error)
	Save(ctx context.Context, line *IssueItem) error
	SaveBatch(ctx context.Context, lines []*IssueItem) error
	Delete(ctx context.Context, id int64) error
	DeleteByIssue(ctx context.Context, issueID int64) error
}
