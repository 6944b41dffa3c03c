package inventory

import (
	"context"
	"fmt"

	"github.com/inventory/backend/internal/domain/inventory"
	"github.com/inventory/backend/internal/domain/shared"
	"github.com/inventory/backend/internal/domain/system"
	"go.uber.org/zap"
)

// StockBelowThresholdHandler handles StockBelowThreshold events.
// It drops cached aggregates that count low stock rows and, when notifications
// are enabled in the settings, raises a stock alert.
type StockBelowThresholdHandler struct {
	cache          shared.Cache
	settings       system.SettingsProvider
	notifier       StockAlertNotifier
	invalidateKeys []string
	logger         *zap.Logger
}

// StockAlertNotifier sends stock alerts
type StockAlertNotifier interface {
	SendAlert(ctx context.Context, alert StockAlert) error
}

// StockAlert represents a stock level alert
type StockAlert struct {
	ItemID     int64  `json:"item_id"`
	ItemSKU    string `json:"item_sku"`
	LocationID int64  `json:"location_id"`
	QtyOnHand  string `json:"qty_on_hand"`
	Threshold  string `json:"threshold"`
	AlertType  string `json:"alert_type"` // "low_stock", "out_of_stock"
}

// NewStockBelowThresholdHandler creates a new handler. invalidateKeys are
// deleted from cache on every event; a nil cache skips invalidation.
func NewStockBelowThresholdHandler(
	cache shared.Cache,
	settings system.SettingsProvider,
	logger *zap.Logger,
	invalidateKeys ...string,
) *StockBelowThresholdHandler {
	return &StockBelowThresholdHandler{
		cache:          cache,
		settings:       settings,
		notifier:       NewLoggingStockAlertNotifier(logger),
		invalidateKeys: invalidateKeys,
		logger:         logger,
	}
}

// WithNotifier replaces the default logging notifier
func (h *StockBelowThresholdHandler) WithNotifier(notifier StockAlertNotifier) *StockBelowThresholdHandler {
	h.notifier = notifier
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *StockBelowThresholdHandler) EventTypes() []string {
	return []string{inventory.EventTypeStockBelowThreshold}
}

// Handle processes a StockBelowThresholdEvent
func (h *StockBelowThresholdHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	thresholdEvent, ok := event.(*inventory.StockBelowThresholdEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", inventory.EventTypeStockBelowThreshold),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			inventory.EventTypeStockBelowThreshold, event.EventType())
	}

	if h.cache != nil && len(h.invalidateKeys) > 0 {
		if err := h.cache.Delete(ctx, h.invalidateKeys...); err != nil {
			h.logger.Warn("failed to invalidate cached stock aggregates",
				zap.Strings("keys", h.invalidateKeys),
				zap.Error(err),
			)
		}
	}

	settings, err := h.settings.Current(ctx)
	if err != nil {
		h.logger.Debug("failed to load settings, skipping stock alert", zap.Error(err))
		return nil
	}
	if !settings.EnableNotifications || h.notifier == nil {
		return nil
	}

	alertType := "low_stock"
	if !thresholdEvent.QtyOnHand.IsPositive() {
		alertType = "out_of_stock"
	}
	alert := StockAlert{
		ItemID:     thresholdEvent.ItemID,
		ItemSKU:    thresholdEvent.ItemSKU,
		LocationID: thresholdEvent.LocationID,
		QtyOnHand:  thresholdEvent.QtyOnHand.String(),
		Threshold:  thresholdEvent.Threshold.String(),
		AlertType:  alertType,
	}

	// Notification failure does not fail the event handling
	if err := h.notifier.SendAlert(ctx, alert); err != nil {
		h.logger.Error("failed to send stock alert notification",
			zap.Int64("item_id", alert.ItemID),
			zap.Error(err),
		)
	}
	return nil
}

// Ensure StockBelowThresholdHandler implements shared.EventHandler
var _ shared.EventHandler = (*StockBelowThresholdHandler)(nil)

// LoggingStockAlertNotifier writes alerts to the log
type LoggingStockAlertNotifier struct {
	logger *zap.Logger
}

// NewLoggingStockAlertNotifier creates a new logging notifier
func NewLoggingStockAlertNotifier(logger *zap.Logger) *LoggingStockAlertNotifier {
	return &LoggingStockAlertNotifier{
		logger: logger,
	}
}

// SendAlert logs the stock alert
func (n *LoggingStockAlertNotifier) SendAlert(_ context.Context, alert StockAlert) error {
	n.logger.Warn("stock below threshold",
		zap.String("type", alert.AlertType),
		zap.Int64("item_id", alert.ItemID),
		zap.String("item_sku", alert.ItemSKU),
		zap.Int64("location_id", alert.LocationID),
		zap.String("qty_on_hand", alert.QtyOnHand),
		zap.String("threshold", alert.Threshold),
	)
	return nil
}

var _ StockAlertNotifier = (*LoggingStockAlertNotifier)(nil)
