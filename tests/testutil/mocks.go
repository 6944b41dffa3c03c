package testutil

import (
	"context"
	"time"

	"github.com/inventory/backend/internal/domain/catalog"
	"github.com/inventory/backend/internal/domain/identity"
	"github.com/inventory/backend/internal/domain/inventory"
	"github.com/inventory/backend/internal/domain/issuance"
	"github.com/inventory/backend/internal/domain/shared"
	"github.com/inventory/backend/internal/domain/system"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Catalog
// =============================================================================

// MockCategoryRepository is a mock implementation of catalog.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id int64) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Category, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Category), args.Get(1).(int64), args.Error(2)
}

func (m *MockCategoryRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUnitRepository is a mock implementation of catalog.UnitRepository
type MockUnitRepository struct {
	mock.Mock
}

func (m *MockUnitRepository) FindByID(ctx context.Context, id int64) (*catalog.Unit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Unit, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Unit), args.Get(1).(int64), args.Error(2)
}

func (m *MockUnitRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUnitRepository) ExistsBySymbol(ctx context.Context, symbol string, excludeID int64) (bool, error) {
	args := m.Called(ctx, symbol, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUnitRepository) Save(ctx context.Context, unit *catalog.Unit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *MockUnitRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockItemRepository is a mock implementation of catalog.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByID(ctx context.Context, id int64) (*catalog.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindByIDs(ctx context.Context, ids []int64) ([]catalog.Item, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Item, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Item), args.Get(1).(int64), args.Error(2)
}

func (m *MockItemRepository) FindActive(ctx context.Context) ([]catalog.Item, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Item), args.Error(1)
}

func (m *MockItemRepository) ExistsBySKU(ctx context.Context, sku string, excludeID int64) (bool, error) {
	args := m.Called(ctx, sku, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockItemRepository) ExistsByBarcode(ctx context.Context, barcode string, excludeID int64) (bool, error) {
	args := m.Called(ctx, barcode, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockItemRepository) CountByCategory(ctx context.Context, categoryID int64) (int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) CountByUnit(ctx context.Context, unitID int64) (int64, error) {
	args := m.Called(ctx, unitID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) Count(ctx context.Context, activeOnly bool) (int64, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) Save(ctx context.Context, item *catalog.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// =============================================================================
// Inventory
// =============================================================================

// MockLocationRepository is a mock implementation of inventory.LocationRepository
type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) FindByID(ctx context.Context, id int64) (*inventory.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Location), args.Error(1)
}

func (m *MockLocationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Location, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.Location), args.Get(1).(int64), args.Error(2)
}

func (m *MockLocationRepository) ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error) {
	args := m.Called(ctx, code, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLocationRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLocationRepository) Save(ctx context.Context, location *inventory.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockLocationRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockStockLevelRepository is a mock implementation of inventory.StockLevelRepository
type MockStockLevelRepository struct {
	mock.Mock
}

func (m *MockStockLevelRepository) GetForUpdate(ctx context.Context, itemID, locationID int64) (*inventory.StockLevel, error) {
	args := m.Called(ctx, itemID, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockLevel), args.Error(1)
}

func (m *MockStockLevelRepository) Save(ctx context.Context, level *inventory.StockLevel) error {
	args := m.Called(ctx, level)
	return args.Error(0)
}

func (m *MockStockLevelRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockLevelView, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.StockLevelView), args.Get(1).(int64), args.Error(2)
}

func (m *MockStockLevelRepository) CountBelowMinimum(ctx context.Context, globalThreshold int) (int64, error) {
	args := m.Called(ctx, globalThreshold)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStockLevelRepository) ExistsForItem(ctx context.Context, itemID int64) (bool, error) {
	args := m.Called(ctx, itemID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStockLevelRepository) ExistsForLocation(ctx context.Context, locationID int64) (bool, error) {
	args := m.Called(ctx, locationID)
	return args.Bool(0), args.Error(1)
}

// MockStockTransactionRepository is a mock implementation of inventory.StockTransactionRepository
type MockStockTransactionRepository struct {
	mock.Mock
}

func (m *MockStockTransactionRepository) FindByID(ctx context.Context, id int64) (*inventory.StockTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockTransaction), args.Error(1)
}

func (m *MockStockTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockTransaction, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.StockTransaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockStockTransactionRepository) ExistsForItem(ctx context.Context, itemID int64) (bool, error) {
	args := m.Called(ctx, itemID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStockTransactionRepository) ExistsForLocation(ctx context.Context, locationID int64) (bool, error) {
	args := m.Called(ctx, locationID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStockTransactionRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStockTransactionRepository) Save(ctx context.Context, tx *inventory.StockTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockStockTransactionRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// =============================================================================
// Issuance
// =============================================================================

// MockIssueRepository is a mock implementation of issuance.IssueRepository
type MockIssueRepository struct {
	mock.Mock
}

func (m *MockIssueRepository) FindByID(ctx context.Context, id int64) (*issuance.Issue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*issuance.Issue), args.Error(1)
}

func (m *MockIssueRepository) FindByCode(ctx context.Context, code string) (*issuance.Issue, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*issuance.Issue), args.Error(1)
}

func (m *MockIssueRepository) FindAll(ctx context.Context, filter shared.Filter) ([]issuance.Issue, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]issuance.Issue), args.Get(1).(int64), args.Error(2)
}

func (m *MockIssueRepository) ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error) {
	args := m.Called(ctx, code, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockIssueRepository) CountByStatus(ctx context.Context) (map[issuance.IssueStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[issuance.IssueStatus]int64), args.Error(1)
}

func (m *MockIssueRepository) Save(ctx context.Context, issue *issuance.Issue) error {
	args := m.Called(ctx, issue)
	return args.Error(0)
}

func (m *MockIssueRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockIssueItemRepository is a mock implementation of issuance.IssueItemRepository
type MockIssueItemRepository struct {
	mock.Mock
}

func (m *MockIssueItemRepository) FindByID(ctx context.Context, id int64) (*issuance.IssueItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*issuance.IssueItem), args.Error(1)
}

func (m *MockIssueItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]issuance.IssueItemView, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]issuance.IssueItemView), args.Get(1).(int64), args.Error(2)
}

func (m *MockIssueItemRepository) FindViewsByIssue(ctx context.Context, issueID int64) ([]issuance.IssueItemView, error) {
	args := m.Called(ctx, issueID)
	return args.Get(0).([]issuance.IssueItemView), args.Error(1)
}

func (m *MockIssueItemRepository) FindByIssue(ctx context.Context, issueID int64) ([]issuance.IssueItem, error) {
	args := m.Called(ctx, issueID)
	return args.Get(0).([]issuance.IssueItem), args.Error(1)
}

func (m *MockIssueItemRepository) ExistsByIssueAndItem(ctx context.Context, issueID, itemID int64) (bool, error) {
	args := m.Called(ctx, issueID, itemID)
	return args.Bool(0), args.Error(1)
}

func (m *MockIssueItemRepository) ExistsForItem(ctx context.Context, itemID int64) (bool, error) {
	args := m.Called(ctx, itemID)
	return args.Bool(0), args.Error(1)
}

func (m *MockIssueItemRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockIssueItemRepository) Save(ctx context.Context, line *issuance.IssueItem) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockIssueItemRepository) SaveBatch(ctx context.Context, lines []*issuance.IssueItem) error {
	args := m.Called(ctx, lines)
	return args.Error(0)
}

func (m *MockIssueItemRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockIssueItemRepository) DeleteByIssue(ctx context.Context, issueID int64) error {
	args := m.Called(ctx, issueID)
	return args.Error(0)
}

// =============================================================================
// Identity
// =============================================================================

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByDirectoryID(ctx context.Context, oid string) (*identity.User, error) {
	args := m.Called(ctx, oid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistingEmails(ctx context.Context, emails []string) ([]string, error) {
	args := m.Called(ctx, emails)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SaveBatch(ctx context.Context, users []*identity.User) error {
	args := m.Called(ctx, users)
	return args.Error(0)
}

// =============================================================================
// Events
// =============================================================================

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// =============================================================================
// Settings
// =============================================================================

// StaticSettings is a system.SettingsProvider returning fixed settings
type StaticSettings struct {
	Settings *system.Settings
	Err      error
}

// NewStaticSettings returns a provider serving the default settings changed by mutate
func NewStaticSettings(mutate func(s *system.Settings)) *StaticSettings {
	s := system.DefaultSettings()
	if mutate != nil {
		mutate(s)
	}
	return &StaticSettings{Settings: s}
}

func (p *StaticSettings) Current(_ context.Context) (*system.Settings, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	copied := *p.Settings
	return &copied, nil
}
