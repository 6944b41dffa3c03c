package dashboard

import (
	"context"
	"time"

	"github.com/inventory/backend/internal/domain/catalog"
	"github.com/inventory/backend/internal/domain/identity"
	"github.com/inventory/backend/internal/domain/inventory"
	"github.com/inventory/backend/internal/domain/issuance"
	"github.com/inventory/backend/internal/domain/shared"
	"github.com/inventory/backend/internal/domain/system"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SummaryCacheKey is the cache entry holding the dashboard summary. Stock
// writes that cross a threshold delete it.
const SummaryCacheKey = "dashboard:summary"

// DefaultSummaryTTL is how long a computed summary is served from cache
const DefaultSummaryTTL = 60 * time.Second

// RecentTransactionsWindow is the look-back for the recent transaction count
const RecentTransactionsWindow = 7 * 24 * time.Hour

// Summary holds the console dashboard counters
type Summary struct {
	Items              int64            `json:"items"`
	ActiveItems        int64            `json:"active_items"`
	Locations          int64            `json:"locations"`
	Users              int64            `json:"users"`
	Issues             int64            `json:"issues"`
	IssuesByStatus     map[string]int64 `json:"issues_by_status"`
	RecentTransactions int64            `json:"recent_transactions"`
	LowStock           int64            `json:"low_stock"`
	GeneratedAt        time.Time        `json:"generated_at"`
}

// DashboardService computes the dashboard summary
type DashboardService struct {
	itemRepo        catalog.ItemRepository
	locationRepo    inventory.LocationRepository
	levelRepo       inventory.StockLevelRepository
	transactionRepo inventory.StockTransactionRepository
	userRepo        identity.UserRepository
	issueRepo       issuance.IssueRepository
	settings        system.SettingsProvider
	cache           shared.Cache
	ttl             time.Duration
	logger          *zap.Logger
	now             func() time.Time
}

// NewDashboardService creates a new DashboardService. A nil cache disables caching.
func NewDashboardService(
	itemRepo catalog.ItemRepository,
	locationRepo inventory.LocationRepository,
	levelRepo inventory.StockLevelRepository,
	transactionRepo inventory.StockTransactionRepository,
	userRepo identity.UserRepository,
	issueRepo issuance.IssueRepository,
	settings system.SettingsProvider,
	cache shared.Cache,
	ttl time.Duration,
	logger *zap.Logger,
) *DashboardService {
	if ttl <= 0 {
		ttl = DefaultSummaryTTL
	}
	return &DashboardService{
		itemRepo:        itemRepo,
		locationRepo:    locationRepo,
		levelRepo:       levelRepo,
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		issueRepo:       issueRepo,
		settings:        settings,
		cache:           cache,
		ttl:             ttl,
		logger:          logger,
		now:             time.Now,
	}
}

// Summary returns the cached summary or computes a fresh one
func (s *DashboardService) Summary(ctx context.Context) (*Summary, error) {
	if s.cache != nil {
		var cached Summary
		found, err := shared.GetJSON(ctx, s.cache, SummaryCacheKey, &cached)
		if err != nil {
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		} else if found {
			return &cached, nil
		}
	}

	summary, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := shared.SetJSON(ctx, s.cache, SummaryCacheKey, summary, s.ttl); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}
	return summary, nil
}

func (s *DashboardService) compute(ctx context.Context) (*Summary, error) {
	now := s.now()
	settings, err := s.settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{GeneratedAt: now}
	var byStatus map[issuance.IssueStatus]int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		summary.Items, err = s.itemRepo.Count(gctx, false)
		return err
	})
	g.Go(func() (err error) {
		summary.ActiveItems, err = s.itemRepo.Count(gctx, true)
		return err
	})
	g.Go(func() (err error) {
		summary.Locations, err = s.locationRepo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		summary.Users, err = s.userRepo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		byStatus, err = s.issueRepo.CountByStatus(gctx)
		return err
	})
	g.Go(func() (err error) {
		summary.RecentTransactions, err = s.transactionRepo.CountSince(gctx, now.Add(-RecentTransactionsWindow))
		return err
	})
	g.Go(func() (err error) {
		summary.LowStock, err = s.levelRepo.CountBelowMinimum(gctx, settings.LowStockThreshold)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary.IssuesByStatus = make(map[string]int64, len(issuance.AllIssueStatuses()))
	for _, status := range issuance.AllIssueStatuses() {
		count := byStatus[status]
		summary.IssuesByStatus[status.String()] = count
		summary.Issues += count
	}
	return summary, nil
}
