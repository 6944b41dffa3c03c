package inventory

import (
	"context"
	"sort"

	"github.com/inventory/backend/internal/domain/catalog"
	"github.com/inventory/backend/internal/domain/inventory"
	"github.com/inventory/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StockChange is a signed quantity change of one item at one location
type StockChange struct {
	ItemID     int64
	LocationID int64
	Delta      decimal.Decimal
}

// ChangesFor expands the effects of a transaction into stock changes.
// With reverse set the changes undo the transaction.
func ChangesFor(tx *inventory.StockTransaction, reverse bool) []StockChange {
	effects := tx.Effects()
	if reverse {
		effects = tx.ReverseEffects()
	}
	changes := make([]StockChange, len(effects))
	for i, e := range effects {
		changes[i] = StockChange{ItemID: tx.ItemID, LocationID: e.LocationID, Delta: e.Delta}
	}
	return changes
}

type stockKey struct {
	itemID     int64
	locationID int64
}

// PostStockChanges nets the changes per (item, location), locks the affected
// stock level rows in (item, location) order and applies the net deltas.
// Rows whose net delta is zero are not touched. It must run inside a TransactionScope.
func PostStockChanges(
	ctx context.Context,
	levels inventory.StockLevelRepository,
	changes []StockChange,
	allowNegative bool,
) ([]*inventory.StockLevel, error) {
	net := make(map[stockKey]decimal.Decimal, len(changes))
	for _, c := range changes {
		k := stockKey{c.ItemID, c.LocationID}
		net[k] = net[k].Add(c.Delta)
	}

	keys := make([]stockKey, 0, len(net))
	for k, delta := range net {
		if !delta.IsZero() {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].itemID != keys[j].itemID {
			return keys[i].itemID < keys[j].itemID
		}
		return keys[i].locationID < keys[j].locationID
	})

	touched := make([]*inventory.StockLevel, 0, len(keys))
	for _, k := range keys {
		level, err := levels.GetForUpdate(ctx, k.itemID, k.locationID)
		if err != nil {
			return nil, err
		}
		if err := level.Apply(net[k], allowNegative); err != nil {
			return nil, err
		}
		if err := levels.Save(ctx, level); err != nil {
			return nil, err
		}
		touched = append(touched, level)
	}
	return touched, nil
}

// LowStockEvents builds a StockBelowThreshold event for every level under the
// threshold of its item. Items without a minimum use globalThreshold.
func LowStockEvents(
	ctx context.Context,
	items catalog.ItemRepository,
	levels []*inventory.StockLevel,
	globalThreshold int,
) ([]shared.DomainEvent, error) {
	if len(levels) == 0 {
		return nil, nil
	}

	seen := make(map[int64]bool, len(levels))
	ids := make([]int64, 0, len(levels))
	for _, l := range levels {
		if !seen[l.ItemID] {
			seen[l.ItemID] = true
			ids = append(ids, l.ItemID)
		}
	}
	found, err := items.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*catalog.Item, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}

	var events []shared.DomainEvent
	for _, l := range levels {
		item, ok := byID[l.ItemID]
		if !ok {
			continue
		}
		threshold := inventory.EffectiveThreshold(item.MinStock, globalThreshold)
		if inventory.IsBelowThreshold(l.QtyOnHand, threshold) {
			events = append(events, inventory.NewStockBelowThresholdEvent(l, item.SKU, threshold))
		}
	}
	return events, nil
}

// levelAt returns the quantity of the touched level for (item, location), if any
func levelAt(levels []*inventory.StockLevel, itemID, locationID int64) *decimal.Decimal {
	for _, l := range levels {
		if l.ItemID == itemID && l.LocationID == locationID {
			qty := l.QtyOnHand
			return &qty
		}
	}
	return nil
}
