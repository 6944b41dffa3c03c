package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/inventory/backend/internal/domain/issuance"
	"github.com/inventory/backend/internal/domain/system"
	"github.com/inventory/backend/internal/infrastructure/cache"
	"github.com/inventory/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type dashboardFixture struct {
	svc          *DashboardService
	items        *testutil.MockItemRepository
	locations    *testutil.MockLocationRepository
	levels       *testutil.MockStockLevelRepository
	transactions *testutil.MockStockTransactionRepository
	users        *testutil.MockUserRepository
	issues       *testutil.MockIssueRepository
	cache        *cache.InMemoryCache
	now          time.Time
}

func newDashboardFixture(t *testing.T) *dashboardFixture {
	t.Helper()
	f := &dashboardFixture{
		items:        new(testutil.MockItemRepository),
		locations:    new(testutil.MockLocationRepository),
		levels:       new(testutil.MockStockLevelRepository),
		transactions: new(testutil.MockStockTransactionRepository),
		users:        new(testutil.MockUserRepository),
		issues:       new(testutil.MockIssueRepository),
		cache:        cache.NewInMemoryCache(),
		now:          time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC),
	}
	t.Cleanup(func() { _ = f.cache.Close() })

	settings := testutil.NewStaticSettings(func(s *system.Settings) { s.LowStockThreshold = 5 })
	f.svc = NewDashboardService(f.items, f.locations, f.levels, f.transactions, f.users, f.issues,
		settings, f.cache, 0, zap.NewNop())
	f.svc.now = func() time.Time { return f.now }
	return f
}

func (f *dashboardFixture) expectCounts() {
	f.items.On("Count", mock.Anything, false).Return(int64(12), nil)
	f.items.On("Count", mock.Anything, true).Return(int64(10), nil)
	f.locations.On("Count", mock.Anything).Return(int64(3), nil)
	f.users.On("Count", mock.Anything).Return(int64(4), nil)
	f.issues.On("CountByStatus", mock.Anything).Return(map[issuance.IssueStatus]int64{
		issuance.IssueStatusDraft:  2,
		issuance.IssueStatusIssued: 5,
	}, nil)
	f.transactions.On("CountSince", mock.Anything, f.now.Add(-7*24*time.Hour)).Return(int64(31), nil)
	f.levels.On("CountBelowMinimum", mock.Anything, 5).Return(int64(2), nil)
}

func TestDashboardService_Summary(t *testing.T) {
	ctx := context.Background()
	f := newDashboardFixture(t)
	f.expectCounts()

	summary, err := f.svc.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(12), summary.Items)
	assert.Equal(t, int64(10), summary.ActiveItems)
	assert.Equal(t, int64(3), summary.Locations)
	assert.Equal(t, int64(4), summary.Users)
	assert.Equal(t, int64(7), summary.Issues)
	assert.Equal(t, map[string]int64{"DRAFT": 2, "APPROVED": 0, "ISSUED": 5, "CANCELLED": 0}, summary.IssuesByStatus)
	assert.Equal(t, int64(31), summary.RecentTransactions)
	assert.Equal(t, int64(2), summary.LowStock)
	assert.Equal(t, f.now, summary.GeneratedAt)
}

func TestDashboardService_SummaryIsCached(t *testing.T) {
	ctx := context.Background()
	f := newDashboardFixture(t)
	f.expectCounts()

	first, err := f.svc.Summary(ctx)
	require.NoError(t, err)
	second, err := f.svc.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, first.Items, second.Items)
	f.users.AssertNumberOfCalls(t, "Count", 1)

	require.NoError(t, f.cache.Delete(ctx, SummaryCacheKey))
	_, err = f.svc.Summary(ctx)
	require.NoError(t, err)
	f.users.AssertNumberOfCalls(t, "Count", 2)
}

func TestDashboardService_SummaryError(t *testing.T) {
	ctx := context.Background()
	f := newDashboardFixture(t)
	boom := errors.New("database is down")
	f.items.On("Count", mock.Anything, mock.Anything).Return(int64(0), boom)
	f.locations.On("Count", mock.Anything).Return(int64(3), nil)
	f.users.On("Count", mock.Anything).Return(int64(4), nil)
	f.issues.On("CountByStatus", mock.Anything).Return(map[issuance.IssueStatus]int64{}, nil)
	f.transactions.On("CountSince", mock.Anything, mock.Anything).Return(int64(0), nil)
	f.levels.On("CountBelowMinimum", mock.Anything, mock.Anything).Return(int64(0), nil)

	_, err := f.svc.Summary(ctx)
	require.ErrorIs(t, err, boom)

	_, found, err := f.cache.Get(ctx, SummaryCacheKey)
	require.NoError(t, err)
	assert.False(t, found)
}
