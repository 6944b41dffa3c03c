package inventory

import (
	"context"

	"github.com/inventory/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to stock repositories.
// All repository operations run inside fn share one database transaction
// and are committed or rolled back together.
type TransactionScope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the stock repositories bound to the current transaction.
//
// A stock transaction record and the stock levels it moves are always written together:
// the level rows are locked through StockLevelRepo().GetForUpdate before the record is saved.
type TransactionalRepositories interface {
	// StockLevelRepo returns the stock level repository scoped to the current transaction
	StockLevelRepo() inventory.StockLevelRepository
	// TransactionRepo returns the stock transaction repository scoped to the current transaction
	TransactionRepo() inventory.StockTransactionRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use transactions.
// This is useful for testing or when transaction support is not required.
type NoOpTransactionScope struct {
	levelRepo       inventory.StockLevelRepository
	transactionRepo inventory.StockTransactionRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	levelRepo inventory.StockLevelRepository,
	transactionRepo inventory.StockTransactionRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		levelRepo:       levelRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// StockLevelRepo returns the stock level repository.
func (s *NoOpTransactionScope) StockLevelRepo() inventory.StockLevelRepository {
	return s.levelRepo
}

// TransactionRepo returns the stock transaction repository.
func (s *NoOpTransactionScope) TransactionRepo() inventory.StockTransactionRepository {
	return s.transactionRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
