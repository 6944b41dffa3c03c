package inventory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/inventory/backend/internal/domain/catalog"
	"github.com/inventory/backend/internal/domain/inventory"
	"github.com/inventory/backend/internal/domain/shared"
	"github.com/inventory/backend/internal/domain/system"
	"go.uber.org/zap"
)

// TransactionMetrics records stock movements for telemetry
type TransactionMetrics interface {
	RecordStockTransaction(ctx context.Context, txType, operation string)
}

// StockService records stock transactions and keeps stock levels in step with them
type StockService struct {
	itemRepo       catalog.ItemRepository
	locationRepo   inventory.LocationRepository
	levelRepo      inventory.StockLevelRepository
	txRepo         inventory.StockTransactionRepository
	scope          TransactionScope
	settings       system.SettingsProvider
	eventPublisher shared.EventPublisher
	metrics        TransactionMetrics
	logger         *zap.Logger
}

// NewStockService creates a new StockService
func NewStockService(
	itemRepo catalog.ItemRepository,
	locationRepo inventory.LocationRepository,
	levelRepo inventory.StockLevelRepository,
	txRepo inventory.StockTransactionRepository,
	scope TransactionScope,
	settings system.SettingsProvider,
	logger *zap.Logger,
) *StockService {
	return &StockService{
		itemRepo:     itemRepo,
		locationRepo: locationRepo,
		levelRepo:    levelRepo,
		txRepo:       txRepo,
		scope:        scope,
		settings:     settings,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *StockService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetMetrics sets the telemetry recorder
func (s *StockService) SetMetrics(metrics TransactionMetrics) {
	s.metrics = metrics
}

// CreateTransaction records a transaction and applies its effect to stock levels
func (s *StockService) CreateTransaction(ctx context.Context, req CreateTransactionRequest, actorID int64) (*TransactionResponse, error) {
	in := inventory.TransactionInput{
		ItemID:       req.ItemID,
		LocationID:   req.LocationID,
		ToLocationID: req.ToLocationID,
		TxType:       inventory.TransactionType(strings.ToUpper(strings.TrimSpace(req.TxType))),
		Qty:          req.Qty,
		Ref:          req.Ref,
		Note:         req.Note,
		TxAt:         req.TxAt,
	}
	if actorID > 0 {
		in.UserID = &actorID
	}

	tx, err := inventory.NewStockTransaction(in)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, tx, nil); err != nil {
		return nil, err
	}
	settings, err := s.settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	var touched []*inventory.StockLevel
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		levels, err := PostStockChanges(ctx, repos.StockLevelRepo(), ChangesFor(tx, false), settings.AllowNegativeStock)
		if err != nil {
			return err
		}
		touched = levels
		return repos.TransactionRepo().Save(ctx, tx)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock transaction recorded",
		zap.Int64("transaction_id", tx.ID),
		zap.String("tx_type", tx.TxType.String()),
		zap.Int64("item_id", tx.ItemID),
		zap.Int64("location_id", tx.LocationID),
		zap.String("qty", tx.Qty.String()),
	)
	s.afterWrite(ctx, tx.TxType, "create", touched, settings)

	resp := ToTransactionResponse(tx)
	resp.QtyOnHand = levelAt(touched, tx.ItemID, tx.LocationID)
	return &resp, nil
}

// GetTransaction retrieves a transaction by ID
func (s *StockService) GetTransaction(ctx context.Context, id int64) (*TransactionResponse, error) {
	tx, err := s.findTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToTransactionResponse(tx)
	return &resp, nil
}

// ListTransactions retrieves a page of transactions, newest first by default
func (s *StockService) ListTransactions(ctx context.Context, filter shared.Filter) (*shared.Paginated[TransactionResponse], error) {
	filter = filter.Normalize("tx_at", shared.SortOrderDesc)
	if raw, ok := filter.Filters["tx_type"].(string); ok {
		txType := inventory.TransactionType(strings.ToUpper(strings.TrimSpace(raw)))
		if !txType.IsValid() {
			return nil, shared.NewDomainError(shared.CodeInvalidInput, "Transaction type must be one of IN, OUT, ADJ, XFER")
		}
		filter.Filters["tx_type"] = txType.String()
	}

	txs, total, err := s.txRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]TransactionResponse, len(txs))
	for i := range txs {
		responses[i] = ToTransactionResponse(&txs[i])
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// UpdateTransaction reverses the old effect and applies the new one in a single database transaction
func (s *StockService) UpdateTransaction(ctx context.Context, id int64, req UpdateTransactionRequest) (*TransactionResponse, error) {
	tx, err := s.findTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := *tx
	reversal := ChangesFor(tx, true)

	in := inventory.TransactionInput{
		ItemID:       tx.ItemID,
		LocationID:   tx.LocationID,
		ToLocationID: tx.ToLocationID,
		TxType:       tx.TxType,
		Qty:          tx.Qty,
		Ref:          tx.Ref,
		Note:         tx.Note,
		TxAt:         req.TxAt,
	}
	if req.ItemID != nil {
		in.ItemID = *req.ItemID
	}
	if req.LocationID != nil {
		in.LocationID = *req.LocationID
	}
	if req.ToLocationID != nil {
		in.ToLocationID = req.ToLocationID
		if *req.ToLocationID == 0 {
			in.ToLocationID = nil
		}
	}
	if req.TxType != nil {
		in.TxType = inventory.TransactionType(strings.ToUpper(strings.TrimSpace(*req.TxType)))
	}
	if req.Qty != nil {
		in.Qty = *req.Qty
	}
	if req.Ref != nil {
		in.Ref = *req.Ref
	}
	if req.Note != nil {
		in.Note = *req.Note
	}

	if err := tx.Update(in); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, tx, &previous); err != nil {
		return nil, err
	}
	settings, err := s.settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	changes := append(reversal, ChangesFor(tx, false)...)
	var touched []*inventory.StockLevel
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		levels, err := PostStockChanges(ctx, repos.StockLevelRepo(), changes, settings.AllowNegativeStock)
		if err != nil {
			return err
		}
		touched = levels
		return repos.TransactionRepo().Save(ctx, tx)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock transaction updated", zap.Int64("transaction_id", id))
	s.afterWrite(ctx, tx.TxType, "update", touched, settings)

	resp := ToTransactionResponse(tx)
	resp.QtyOnHand = levelAt(touched, tx.ItemID, tx.LocationID)
	return &resp, nil
}

// DeleteTransaction reverses the effect of a transaction and removes it
func (s *StockService) DeleteTransaction(ctx context.Context, id int64) (*DeleteTransactionResult, error) {
	tx, err := s.findTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	var touched []*inventory.StockLevel
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		levels, err := PostStockChanges(ctx, repos.StockLevelRepo(), ChangesFor(tx, true), settings.AllowNegativeStock)
		if err != nil {
			return err
		}
		touched = levels
		return repos.TransactionRepo().Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock transaction deleted", zap.Int64("transaction_id", id))
	s.afterWrite(ctx, tx.TxType, "delete", touched, settings)
	return &DeleteTransactionResult{Message: fmt.Sprintf("Transaction %d deleted", id)}, nil
}

// ListStockLevels retrieves a page of stock levels.
// The below_min filter compares against the item minimum or the global low stock threshold.
func (s *StockService) ListStockLevels(ctx context.Context, filter shared.Filter) (*shared.Paginated[StockLevelResponse], error) {
	filter = filter.Normalize("item_sku", shared.SortOrderAsc)
	settings, err := s.settings.Current(ctx)
	if err != nil {
		return nil, err
	}
	filter.Filters["threshold"] = settings.LowStockThreshold

	views, total, err := s.levelRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]StockLevelResponse, len(views))
	for i, v := range views {
		threshold := inventory.EffectiveThreshold(v.MinStock, settings.LowStockThreshold)
		responses[i] = StockLevelResponse{
			StockLevelView: v,
			Threshold:      threshold,
			BelowMin:       inventory.IsBelowThreshold(v.QtyOnHand, threshold),
		}
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// checkReferences verifies the item and locations exist. References that
// changed since previous (or all of them on create) must also be active.
func (s *StockService) checkReferences(ctx context.Context, tx *inventory.StockTransaction, previous *inventory.StockTransaction) error {
	item, err := s.itemRepo.FindByID(ctx, tx.ItemID)
	if err != nil {
		return shared.NameNotFound(err, "Item", tx.ItemID)
	}
	if !item.Active && (previous == nil || previous.ItemID != tx.ItemID) {
		return shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Item %d is inactive", tx.ItemID))
	}

	var previousLocations []int64
	if previous != nil {
		previousLocations = previous.LocationIDs()
	}
	for _, locationID := range tx.LocationIDs() {
		location, err := s.locationRepo.FindByID(ctx, locationID)
		if err != nil {
			return shared.NameNotFound(err, "Location", locationID)
		}
		if !location.Active && !slices.Contains(previousLocations, locationID) {
			return shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Location %d is inactive", locationID))
		}
	}
	return nil
}

// afterWrite records metrics and publishes low stock events once the write is committed
func (s *StockService) afterWrite(ctx context.Context, txType inventory.TransactionType, operation string, touched []*inventory.StockLevel, settings *system.Settings) {
	if s.metrics != nil {
		s.metrics.RecordStockTransaction(ctx, txType.String(), operation)
	}
	if s.eventPublisher == nil {
		return
	}
	events, err := LowStockEvents(ctx, s.itemRepo, touched, settings.LowStockThreshold)
	if err != nil {
		s.logger.Warn("failed to evaluate stock thresholds", zap.Error(err))
		return
	}
	if len(events) == 0 {
		return
	}
	// Publish errors are logged by the event bus
	_ = s.eventPublisher.Publish(ctx, events...)
}

func (s *StockService) findTransaction(ctx context.Context, id int64) (*inventory.StockTransaction, error) {
	tx, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NameNotFound(err, "Transaction", id)
	}
	return tx, nil
}

