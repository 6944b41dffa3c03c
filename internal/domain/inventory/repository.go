package inventory

import (
	"context"
	"time"

	"github.com/inventory/backend/internal/domain/shared"
)

// LocationRepository defines persistence for locations
type LocationRepository interface {
	FindByID(ctx context.Context, id int64) (*Location, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Location, int64, error)
	ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error)
	Count(ctx context.Context) (int64, error)
	Save(ctx context.Context, location *Location) error
	Delete(ctx context.Context, id int64) error
}

// StockLevelRepository defines persistence for stock levels
type StockLevelRepository interface {
	// GetForUpdate locks the (item, location) row, creating it at zero when missing
	GetForUpdate(ctx context.Context, itemID, locationID int64) (*StockLevel, error)
	Save(ctx context.Context, level *StockLevel) error
	// FindAll supports the filters item_id, location_id and below_min
	FindAll(ctx context.Context, filter shared.Filter) ([]StockLevelView, int64, error)
	CountBelowMinimum(ctx context.Context, globalThreshold int) (int64, error)
	ExistsForItem(ctx context.Context, itemID int64) (bool, error)
	ExistsForLocation(ctx context.Context, locationID int64) (bool, error)
}

// StockTransactionRepository defines persistence for stock transactions
type StockTransactionRepository interface {
	FindByID(ctx context.Context, id int64) (*StockTransaction, error)
	// FindAll supports the filters item_id, location_id, tx_type, from and to
	FindAll(ctx context.Context, filter shared.Filter) ([]StockTransaction, int64, error)
	ExistsForItem(ctx context.Context, itemID int64) (bool, error)
	ExistsForLocation(ctx context.Context, locationID int64) (bool, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	Save(ctx context.Context, tx *StockTransaction) error
	Delete(ctx context.Context, id int64) error
}
