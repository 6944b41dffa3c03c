package persistence

import (
	"context"

	appinv "github.com/inventory/backend/internal/application/inventory"
	appissuance "github.com/inventory/backend/internal/application/issuance"
	"github.com/inventory/backend/internal/domain/inventory"
	"github.com/inventory/backend/internal/domain/issuance"
	"gorm.io/gorm"
)

// GormTransactionScope implements the inventory TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// GormIssueTransactionScope implements the issuance TransactionScope using GORM transactions.
type GormIssueTransactionScope struct {
	db *gorm.DB
}

// NewGormIssueTransactionScope creates a new GormIssueTransactionScope.
func NewGormIssueTransactionScope(db *gorm.DB) *GormIssueTransactionScope {
	return &GormIssueTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
func (s *GormIssueTransactionScope) Execute(ctx context.Context, fn func(repos appissuance.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// StockLevelRepo returns the stock level repository scoped to the current transaction.
func (r *gormTransactionalRepositories) StockLevelRepo() inventory.StockLevelRepository {
	return NewGormStockLevelRepository(r.tx)
}

// TransactionRepo returns the stock transaction repository scoped to the current transaction.
func (r *gormTransactionalRepositories) TransactionRepo() inventory.StockTransactionRepository {
	return NewGormStockTransactionRepository(r.tx)
}

// IssueRepo returns the issue repository scoped to the current transaction.
func (r *gormTransactionalRepositories) IssueRepo() issuance.IssueRepository {
	return NewGormIssueRepository(r.tx)
}

// IssueItemRepo returns the issue line repository scoped to the current transaction.
func (r *gormTransactionalRepositories) IssueItemRepo() issuance.IssueItemRepository {
	return NewGormIssueItemRepository(r.tx)
}

// Ensure the scopes implement their application ports
var (
	_ appinv.TransactionScope               = (*GormTransactionScope)(nil)
	_ appissuance.TransactionScope          = (*GormIssueTransactionScope)(nil)
	_ appissuance.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
)
