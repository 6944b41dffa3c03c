package issuance

import (
	"context"

	appinv "github.com/inventory/backend/internal/application/inventory"
	"github.com/inventory/backend/internal/domain/inventory"
	"github.com/inventory/backend/internal/domain/issuance"
)

// TransactionScope runs issue writes and the stock movements they cause in one transaction
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories extends the stock repositories with the issue repositories,
// all bound to the same transaction.
type TransactionalRepositories interface {
	appinv.TransactionalRepositories
	IssueRepo() issuance.IssueRepository
	IssueItemRepo() issuance.IssueItemRepository
}

// NoOpTransactionScope runs fn directly against the given repositories
type NoOpTransactionScope struct {
	*appinv.NoOpTransactionScope
	issueRepo     issuance.IssueRepository
	issueItemRepo issuance.IssueItemRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(
	levelRepo inventory.StockLevelRepository,
	transactionRepo inventory.StockTransactionRepository,
	issueRepo issuance.IssueRepository,
	issueItemRepo issuance.IssueItemRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		NoOpTransactionScope: appinv.NewNoOpTransactionScope(levelRepo, transactionRepo),
		issueRepo:            issueRepo,
		issueItemRepo:        issueItemRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// IssueRepo returns the issue repository
func (s *NoOpTransactionScope) IssueRepo() issuance.IssueRepository {
	return s.issueRepo
}

// IssueItemRepo returns the issue line repository
func (s *NoOpTransactionScope) IssueItemRepo() issuance.IssueItemRepository {
	return s.issueItemRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
