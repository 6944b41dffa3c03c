package issuance

import (
	"context"
	"fmt"

	"github.com/inventory/backend/internal/domain/catalog"
	"github.com/inventory/backend/internal/domain/issuance"
	"github.com/inventory/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// IssueItemService manages the lines of draft issues
type IssueItemService struct {
	issueRepo issuance.IssueRepository
	lineRepo  issuance.IssueItemRepository
	itemRepo  catalog.ItemRepository
	scope     TransactionScope
	logger    *zap.Logger
}

// NewIssueItemService creates a new IssueItemService
func NewIssueItemService(
	issueRepo issuance.IssueRepository,
	lineRepo issuance.IssueItemRepository,
	itemRepo catalog.ItemRepository,
	scope TransactionScope,
	logger *zap.Logger,
) *IssueItemService {
	return &IssueItemService{
		issueRepo: issueRepo,
		lineRepo:  lineRepo,
		itemRepo:  itemRepo,
		scope:     scope,
		logger:    logger,
	}
}

// List retrieves a page of issue lines. Supported filters: issue_id, item_id.
func (s *IssueItemService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[issuance.IssueItemView], error) {
	filter = filter.Normalize("id", shared.SortOrderAsc)
	views, total, err := s.lineRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	if views == nil {
		views = []issuance.IssueItemView{}
	}
	page := shared.NewPaginated(views, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ListByIssue returns every line of one issue
func (s *IssueItemService) ListByIssue(ctx context.Context, issueID int64) ([]issuance.IssueItemView, error) {
	if _, err := s.findIssue(ctx, issueID); err != nil {
		return nil, err
	}
	views, err := s.lineRepo.FindViewsByIssue(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if views == nil {
		views = []issuance.IssueItemView{}
	}
	return views, nil
}

// GetByID retrieves a line by ID
func (s *IssueItemService) GetByID(ctx context.Context, id int64) (*IssueItemResponse, error) {
	line, err := s.findLine(ctx, id)
	if err != nil {
		return nil, err
	}
	item, err := s.findItem(ctx, line.ItemID)
	if err != nil {
		return nil, err
	}
	resp := ToIssueItemResponse(line, item.SKU, item.Name)
	return &resp, nil
}

// Create adds a line to a draft issue
func (s *IssueItemService) Create(ctx context.Context, req CreateIssueItemRequest) (*IssueItemResponse, error) {
	issue, err := s.draftIssue(ctx, req.IssueID)
	if err != nil {
		return nil, err
	}
	item, err := s.findItem(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	line, err := issuance.NewIssueItem(req.IssueID, req.ItemID, req.Qty)
	if err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, req.IssueID, req.ItemID); err != nil {
		return nil, err
	}

	err = s.writeLines(ctx, issue, func(lines issuance.IssueItemRepository) error {
		return lines.Save(ctx, line)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("issue item added",
		zap.Int64("issue_id", line.IssueID),
		zap.Int64("item_id", line.ItemID),
		zap.String("qty", line.Qty.String()),
	)
	resp := ToIssueItemResponse(line, item.SKU, item.Name)
	return &resp, nil
}

// BulkCreate adds several lines to a draft issue in one transaction
func (s *IssueItemService) BulkCreate(ctx context.Context, req BulkCreateIssueItemsRequest) ([]IssueItemResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "At least one item is required")
	}
	issue, err := s.draftIssue(ctx, req.IssueID)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]bool, len(req.Items))
	ids := make([]int64, 0, len(req.Items))
	lines := make([]*issuance.IssueItem, 0, len(req.Items))
	for _, in := range req.Items {
		if seen[in.ItemID] {
			return nil, shared.NewDomainError(shared.CodeInvalidInput,
				fmt.Sprintf("Item %d appears more than once in the request", in.ItemID))
		}
		seen[in.ItemID] = true
		ids = append(ids, in.ItemID)

		line, err := issuance.NewIssueItem(req.IssueID, in.ItemID, in.Qty)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	items, err := s.itemRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*catalog.Item, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, shared.NewNotFoundError("Item", id)
		}
		if err := s.checkUnique(ctx, req.IssueID, id); err != nil {
			return nil, err
		}
	}

	err = s.writeLines(ctx, issue, func(repo issuance.IssueItemRepository) error {
		return repo.SaveBatch(ctx, lines)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("issue items added",
		zap.Int64("issue_id", req.IssueID),
		zap.Int("count", len(lines)),
	)
	responses := make([]IssueItemResponse, len(lines))
	for i, line := range lines {
		item := byID[line.ItemID]
		responses[i] = ToIssueItemResponse(line, item.SKU, item.Name)
	}
	return responses, nil
}

// Update changes the item or quantity of a line on a draft issue
func (s *IssueItemService) Update(ctx context.Context, id int64, req UpdateIssueItemRequest) (*IssueItemResponse, error) {
	line, err := s.findLine(ctx, id)
	if err != nil {
		return nil, err
	}
	issue, err := s.draftIssue(ctx, line.IssueID)
	if err != nil {
		return nil, err
	}

	if req.ItemID != nil && *req.ItemID != line.ItemID {
		if _, err := s.findItem(ctx, *req.ItemID); err != nil {
			return nil, err
		}
		if err := s.checkUnique(ctx, line.IssueID, *req.ItemID); err != nil {
			return nil, err
		}
		line.ItemID = *req.ItemID
		line.Touch()
	}
	if req.Qty != nil {
		if err := line.SetQty(*req.Qty); err != nil {
			return nil, err
		}
	}

	item, err := s.findItem(ctx, line.ItemID)
	if err != nil {
		return nil, err
	}
	err = s.writeLines(ctx, issue, func(lines issuance.IssueItemRepository) error {
		return lines.Save(ctx, line)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("issue item updated", zap.Int64("issue_item_id", id))
	resp := ToIssueItemResponse(line, item.SKU, item.Name)
	return &resp, nil
}

// Delete removes a line from a draft issue
func (s *IssueItemService) Delete(ctx context.Context, id int64) (*DeleteResult, error) {
	line, err := s.findLine(ctx, id)
	if err != nil {
		return nil, err
	}
	issue, err := s.draftIssue(ctx, line.IssueID)
	if err != nil {
		return nil, err
	}
	err = s.writeLines(ctx, issue, func(lines issuance.IssueItemRepository) error {
		return lines.Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("issue item deleted", zap.Int64("issue_item_id", id), zap.Int64("issue_id", line.IssueID))
	return &DeleteResult{Message: fmt.Sprintf("Issue item %d deleted", id)}, nil
}

// writeLines runs write in one transaction with the issue's version bump, so
// a line change cannot commit after the issue left DRAFT.
func (s *IssueItemService) writeLines(ctx context.Context, issue *issuance.Issue, write func(lines issuance.IssueItemRepository) error) error {
	if err := issue.MarkLinesChanged(); err != nil {
		return err
	}
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.IssueRepo().Save(ctx, issue); err != nil {
			return err
		}
		return write(repos.IssueItemRepo())
	})
}

func (s *IssueItemService) draftIssue(ctx context.Context, issueID int64) (*issuance.Issue, error) {
	issue, err := s.findIssue(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if !issue.IsDraft() {
		return nil, shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Issue items can only be changed while the issue is DRAFT (issue %d is %s)", issue.ID, issue.Status))
	}
	return issue, nil
}

func (s *IssueItemService) checkUnique(ctx context.Context, issueID, itemID int64) error {
	exists, err := s.lineRepo.ExistsByIssueAndItem(ctx, issueID, itemID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError(shared.CodeAlreadyExists,
			fmt.Sprintf("Item %d is already on issue %d", itemID, issueID))
	}
	return nil
}

func (s *IssueItemService) findIssue(ctx context.Context, id int64) (*issuance.Issue, error) {
	issue, err := s.issueRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NameNotFound(err, "Issue", id)
	}
	return issue, nil
}

func (s *IssueItemService) findLine(ctx context.Context, id int64) (*issuance.IssueItem, error) {
	line, err := s.lineRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NameNotFound(err, "Issue item", id)
	}
	return line, nil
}

func (s *IssueItemService) findItem(ctx context.Context, id int64) (*catalog.Item, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NameNotFound(err, "Item", id)
	}
	return item, nil
}
