package issuance

import (
	"context"
	"errors"
	"fmt"
	"strings"

	appinv "github.com/inventory/backend/internal/application/inventory"
	"github.com/inventory/backend/internal/domain/catalog"
	"github.com/inventory/backend/internal/domain/identity"
	"github.com/inventory/backend/internal/domain/inventory"
	"github.com/inventory/backend/internal/domain/issuance"
	"github.com/inventory/backend/internal/domain/shared"
	"github.com/inventory/backend/internal/domain/system"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// IssueMetrics records issue lifecycle and stock movement counters
type IssueMetrics interface {
	appinv.TransactionMetrics
	RecordIssueTransition(ctx context.Context, from, to string)
}

// IssueService manages issues and posts their stock movements when they are issued
type IssueService struct {
	issueRepo      issuance.IssueRepository
	lineRepo       issuance.IssueItemRepository
	userRepo       identity.UserRepository
	itemRepo       catalog.ItemRepository
	locationRepo   inventory.LocationRepository
	scope          TransactionScope
	settings       system.SettingsProvider
	eventPublisher shared.EventPublisher
	metrics        IssueMetrics
	logger         *zap.Logger
}

// NewIssueService creates a new IssueService
func NewIssueService(
	issueRepo issuance.IssueRepository,
	lineRepo issuance.IssueItemRepository,
	userRepo identity.UserRepository,
	itemRepo catalog.ItemRepository,
	locationRepo inventory.LocationRepository,
	scope TransactionScope,
	settings system.SettingsProvider,
	logger *zap.Logger,
) *IssueService {
	return &IssueService{
		issueRepo:    issueRepo,
		lineRepo:     lineRepo,
		userRepo:     userRepo,
		itemRepo:     itemRepo,
		locationRepo: locationRepo,
		scope:        scope,
		settings:     settings,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *IssueService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetMetrics sets the telemetry recorder
func (s *IssueService) SetMetrics(metrics IssueMetrics) {
	s.metrics = metrics
}

// List retrieves a page of issues, newest first by default
func (s *IssueService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[IssueResponse], error) {
	filter = filter.Normalize("created_at", shared.SortOrderDesc)
	if raw, ok := filter.Filters["status"].(string); ok {
		status := issuance.IssueStatus(strings.ToUpper(strings.TrimSpace(raw)))
		if !status.IsValid() {
			return nil, shared.NewDomainError(shared.CodeInvalidInput, "Status must be one of DRAFT, APPROVED, ISSUED, CANCELLED")
		}
		filter.Filters["status"] = status.String()
	}

	issues, total, err := s.issueRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]IssueResponse, len(issues))
	for i := range issues {
		responses[i] = ToIssueResponse(&issues[i])
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// GetByID retrieves an issue by ID
func (s *IssueService) GetByID(ctx context.Context, id int64) (*IssueResponse, error) {
	issue, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToIssueResponse(issue)
	return &resp, nil
}

// GetByCode retrieves an issue by its code
func (s *IssueService) GetByCode(ctx context.Context, code string) (*IssueResponse, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Code must be a non-empty string")
	}
	issue, err := s.issueRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, fmt.Sprintf("Issue with code '%s' not found", code))
		}
		return nil, err
	}
	resp := ToIssueResponse(issue)
	return &resp, nil
}

// Create opens a draft issue
func (s *IssueService) Create(ctx context.Context, req CreateIssueRequest, actorID int64) (*IssueResponse, error) {
	requestedBy := req.RequestedBy
	if requestedBy == nil && actorID > 0 {
		requestedBy = &actorID
	}

	issue, err := issuance.NewIssue(req.Code, requestedBy, req.Note)
	if err != nil {
		return nil, err
	}
	if err := s.checkCode(ctx, issue.Code, 0); err != nil {
		return nil, err
	}
	if err := s.checkRequester(ctx, issue.RequestedBy); err != nil {
		return nil, err
	}

	if err := s.issueRepo.Save(ctx, issue); err != nil {
		return nil, err
	}

	s.logger.Info("issue created",
		zap.Int64("issue_id", issue.ID),
		zap.String("code", issue.Code),
	)
	resp := ToIssueResponse(issue)
	return &resp, nil
}

// Update edits the header of a draft issue
func (s *IssueService) Update(ctx context.Context, id int64, req UpdateIssueRequest) (*IssueResponse, error) {
	issue, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	code, requestedBy, note := issue.Code, issue.RequestedBy, issue.Note
	if req.Code != nil {
		code = *req.Code
	}
	if req.RequestedBy != nil {
		requestedBy = req.RequestedBy
	}
	if req.Note != nil {
		note = *req.Note
	}
	if err := issue.Update(code, requestedBy, note); err != nil {
		return nil, err
	}
	if err := s.checkCode(ctx, issue.Code, id); err != nil {
		return nil, err
	}
	if req.RequestedBy != nil {
		if err := s.checkRequester(ctx, issue.RequestedBy); err != nil {
			return nil, err
		}
	}

	if err := s.issueRepo.Save(ctx, issue); err != nil {
		return nil, err
	}
	s.logger.Info("issue updated", zap.Int64("issue_id", id))
	resp := ToIssueResponse(issue)
	return &resp, nil
}

// Approve moves a draft issue to APPROVED on behalf of approverID
func (s *IssueService) Approve(ctx context.Context, id int64, approverID int64) (*IssueResponse, error) {
	issue, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	from := issue.Status
	if err := issue.Approve(approverID); err != nil {
		return nil, err
	}
	if err := s.issueRepo.Save(ctx, issue); err != nil {
		return nil, err
	}

	s.afterTransition(ctx, issue, from, nil, nil)
	resp := ToIssueResponse(issue)
	return &resp, nil
}

// ChangeStatus moves an issue to a new status. Moving to ISSUED posts one OUT
// transaction per line at the given location; either all of them are posted
// together with the status change or none are.
func (s *IssueService) ChangeStatus(ctx context.Context, id int64, req ChangeStatusRequest, actorID int64) (*StatusChangeResponse, error) {
	issue, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	next := issuance.IssueStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	from := issue.Status
	if err := issue.TransitionTo(next, actorID); err != nil {
		return nil, err
	}

	if next != issuance.IssueStatusIssued {
		if err := s.issueRepo.Save(ctx, issue); err != nil {
			return nil, err
		}
		s.afterTransition(ctx, issue, from, nil, nil)
		return &StatusChangeResponse{IssueResponse: ToIssueResponse(issue)}, nil
	}

	txs, err := s.buildIssueTransactions(ctx, issue, req.LocationID, actorID)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	var changes []appinv.StockChange
	for _, tx := range txs {
		changes = append(changes, appinv.ChangesFor(tx, false)...)
	}

	var touched []*inventory.StockLevel
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		// the versioned write fails when another request moved the issue first
		if err := repos.IssueRepo().Save(ctx, issue); err != nil {
			return err
		}
		levels, err := appinv.PostStockChanges(ctx, repos.StockLevelRepo(), changes, settings.AllowNegativeStock)
		if err != nil {
			return err
		}
		touched = levels
		for _, tx := range txs {
			if err := repos.TransactionRepo().Save(ctx, tx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("issue issued",
		zap.Int64("issue_id", issue.ID),
		zap.String("code", issue.Code),
		zap.Int("transactions", len(txs)),
	)
	s.afterTransition(ctx, issue, from, txs, touched)

	resp := &StatusChangeResponse{
		IssueResponse: ToIssueResponse(issue),
		Transactions:  make([]appinv.TransactionResponse, len(txs)),
	}
	for i, tx := range txs {
		resp.Transactions[i] = appinv.ToTransactionResponse(tx)
	}
	return resp, nil
}

// Delete removes a draft or cancelled issue together with its lines
func (s *IssueService) Delete(ctx context.Context, id int64) (*DeleteResult, error) {
	issue, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !issue.CanDelete() {
		return nil, shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Cannot delete issue in status %s", issue.Status))
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.IssueItemRepo().DeleteByIssue(ctx, id); err != nil {
			return err
		}
		return repos.IssueRepo().Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("issue deleted", zap.Int64("issue_id", id), zap.String("code", issue.Code))
	return &DeleteResult{Message: fmt.Sprintf("Issue %d deleted", id)}, nil
}

// Stats returns the number of issues per status
func (s *IssueService) Stats(ctx context.Context) (*issuance.IssueStats, error) {
	counts, err := s.issueRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	stats := issuance.BuildIssueStats(counts)
	return &stats, nil
}

// AdvancedStats extends Stats with line totals and the completion rate
func (s *IssueService) AdvancedStats(ctx context.Context) (*issuance.AdvancedIssueStats, error) {
	counts, err := s.issueRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	lines, err := s.lineRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	stats := issuance.BuildAdvancedIssueStats(counts, lines)
	return &stats, nil
}

// Items returns the issue header with its lines and totals
func (s *IssueService) Items(ctx context.Context, id int64) (*IssueItemsResponse, error) {
	issue, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := s.lineRepo.FindViewsByIssue(ctx, id)
	if err != nil {
		return nil, err
	}
	if views == nil {
		views = []issuance.IssueItemView{}
	}

	total := decimal.Zero
	for _, v := range views {
		total = total.Add(v.Qty)
	}
	return &IssueItemsResponse{
		Issue:      ToIssueResponse(issue),
		Items:      views,
		TotalQty:   total,
		TotalItems: len(views),
	}, nil
}

// buildIssueTransactions creates the OUT transactions for every line of the issue
func (s *IssueService) buildIssueTransactions(
	ctx context.Context,
	issue *issuance.Issue,
	locationID *int64,
	actorID int64,
) ([]*inventory.StockTransaction, error) {
	if locationID == nil || *locationID <= 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "location_id is required to issue stock")
	}
	location, err := s.locationRepo.FindByID(ctx, *locationID)
	if err != nil {
		return nil, shared.NameNotFound(err, "Location", *locationID)
	}
	if !location.Active {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Location %d is inactive", location.ID))
	}

	lines, err := s.lineRepo.FindByIssue(ctx, issue.ID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidState, "Issue has no items to issue")
	}

	var userID *int64
	if actorID > 0 {
		userID = &actorID
	}
	txAt := *issue.IssuedAt
	txs := make([]*inventory.StockTransaction, 0, len(lines))
	for _, line := range lines {
		tx, err := inventory.NewStockTransaction(inventory.TransactionInput{
			ItemID:     line.ItemID,
			LocationID: location.ID,
			TxType:     inventory.TransactionTypeOut,
			Qty:        line.Qty,
			Ref:        issue.Code,
			Note:       fmt.Sprintf("Issue %s", issue.Code),
			TxAt:       &txAt,
			UserID:     userID,
		})
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// afterTransition publishes the issue events and low stock events once the change is committed
func (s *IssueService) afterTransition(
	ctx context.Context,
	issue *issuance.Issue,
	from issuance.IssueStatus,
	txs []*inventory.StockTransaction,
	touched []*inventory.StockLevel,
) {
	s.logger.Info("issue status changed",
		zap.Int64("issue_id", issue.ID),
		zap.String("from", from.String()),
		zap.String("to", issue.Status.String()),
	)

	if s.metrics != nil {
		s.metrics.RecordIssueTransition(ctx, from.String(), issue.Status.String())
		for _, tx := range txs {
			s.metrics.RecordStockTransaction(ctx, tx.TxType.String(), "issue")
		}
	}

	events := issue.PullEvents()
	if s.eventPublisher == nil {
		return
	}
	if len(touched) > 0 {
		settings, err := s.settings.Current(ctx)
		if err == nil {
			lowStock, err := appinv.LowStockEvents(ctx, s.itemRepo, touched, settings.LowStockThreshold)
			if err != nil {
				s.logger.Warn("failed to evaluate stock thresholds", zap.Error(err))
			}
			events = append(events, lowStock...)
		}
	}
	if len(events) == 0 {
		return
	}
	// Publish errors are logged by the event bus
	_ = s.eventPublisher.Publish(ctx, events...)
}

func (s *IssueService) checkCode(ctx context.Context, code string, excludeID int64) error {
	exists, err := s.issueRepo.ExistsByCode(ctx, code, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError(shared.CodeAlreadyExists, fmt.Sprintf("Issue with code '%s' already exists", code))
	}
	return nil
}

func (s *IssueService) checkRequester(ctx context.Context, userID *int64) error {
	if userID == nil {
		return nil
	}
	exists, err := s.userRepo.ExistsByID(ctx, *userID)
	if err != nil {
		return err
	}
	if !exists {
		return shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Requested by user ID %d does not exist", *userID))
	}
	return nil
}

func (s *IssueService) find(ctx context.Context, id int64) (*issuance.Issue, error) {
	issue, err := s.issueRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NameNotFound(err, "Issue", id)
	}
	return issue, nil
}
