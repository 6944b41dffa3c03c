package inventory

import (
	"errors"
	"testing"
	"time"

	"github.com/inventory/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func TestNewStockTransaction_Validation(t *testing.T) {
	base := TransactionInput{ItemID: 1, LocationID: 2, TxType: TransactionTypeIn, Qty: decimal.NewFromInt(5)}

	tests := []struct {
		name   string
		mutate func(in *TransactionInput)
	}{
		{"missing item", func(in *TransactionInput) { in.ItemID = 0 }},
		{"missing location", func(in *TransactionInput) { in.LocationID = -1 }},
		{"unknown type", func(in *TransactionInput) { in.TxType = "MOVE" }},
		{"zero qty", func(in *TransactionInput) { in.Qty = decimal.Zero }},
		{"negative IN", func(in *TransactionInput) { in.Qty = decimal.NewFromInt(-1) }},
		{"negative OUT", func(in *TransactionInput) { in.TxType = TransactionTypeOut; in.Qty = decimal.NewFromInt(-1) }},
		{"negative XFER", func(in *TransactionInput) { in.TxType = TransactionTypeTransfer; in.Qty = decimal.NewFromInt(-1) }},
		{"transfer to same location", func(in *TransactionInput) {
			in.TxType = TransactionTypeTransfer
			in.ToLocationID = int64Ptr(2)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.mutate(&in)
			_, err := NewStockTransaction(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, shared.ErrInvalidInput))
		})
	}

	t.Run("negative ADJ allowed", func(t *testing.T) {
		in := base
		in.TxType = TransactionTypeAdjust
		in.Qty = decimal.NewFromInt(-3)
		tx, err := NewStockTransaction(in)
		require.NoError(t, err)
		assert.True(t, tx.Qty.Equal(decimal.NewFromInt(-3)))
	})

	t.Run("defaults tx_at to now", func(t *testing.T) {
		tx, err := NewStockTransaction(base)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now(), tx.TxAt, time.Second)
	})

	t.Run("drops destination for non transfer", func(t *testing.T) {
		in := base
		in.ToLocationID = int64Ptr(9)
		tx, err := NewStockTransaction(in)
		require.NoError(t, err)
		assert.Nil(t, tx.ToLocationID)
	})
}

func TestStockTransaction_Effects(t *testing.T) {
	five := decimal.NewFromInt(5)

	tests := []struct {
		name     string
		txType   TransactionType
		qty      decimal.Decimal
		to       *int64
		expected []StockEffect
	}{
		{"IN", TransactionTypeIn, five, nil, []StockEffect{{2, five}}},
		{"OUT", TransactionTypeOut, five, nil, []StockEffect{{2, five.Neg()}}},
		{"ADJ negative", TransactionTypeAdjust, five.Neg(), nil, []StockEffect{{2, five.Neg()}}},
		{"XFER without destination", TransactionTypeTransfer, five, nil, []StockEffect{{2, five.Neg()}}},
		{"XFER with destination", TransactionTypeTransfer, five, int64Ptr(3), []StockEffect{{2, five.Neg()}, {3, five}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := NewStockTransaction(TransactionInput{ItemID: 1, LocationID: 2, ToLocationID: tt.to, TxType: tt.txType, Qty: tt.qty})
			require.NoError(t, err)

			effects := tx.Effects()
			require.Len(t, effects, len(tt.expected))
			for i, e := range tt.expected {
				assert.Equal(t, e.LocationID, effects[i].LocationID)
				assert.True(t, e.Delta.Equal(effects[i].Delta), "delta %s != %s", e.Delta, effects[i].Delta)
			}

			reversed := tx.ReverseEffects()
			for i := range reversed {
				assert.True(t, reversed[i].Delta.Equal(effects[i].Delta.Neg()))
			}
		})
	}
}

func TestStockTransaction_UpdateKeepsActor(t *testing.T) {
	tx, err := NewStockTransaction(TransactionInput{ItemID: 1, LocationID: 2, TxType: TransactionTypeIn, Qty: decimal.NewFromInt(1), UserID: int64Ptr(4)})
	require.NoError(t, err)
	originalAt := tx.TxAt

	require.NoError(t, tx.Update(TransactionInput{ItemID: 1, LocationID: 2, TxType: TransactionTypeOut, Qty: decimal.NewFromInt(2), UserID: int64Ptr(99)}))
	assert.Equal(t, int64(4), *tx.UserID)
	assert.Equal(t, TransactionTypeOut, tx.TxType)
	assert.Equal(t, originalAt, tx.TxAt)
}

func TestStockLevel_Apply(t *testing.T) {
	level := NewStockLevel(1, 2)

	require.NoError(t, level.Apply(decimal.NewFromInt(3), false))
	err := level.Apply(decimal.NewFromInt(-4), false)
	assert.True(t, errors.Is(err, shared.ErrInsufficientStock))
	assert.True(t, level.QtyOnHand.Equal(decimal.NewFromInt(3)))

	require.NoError(t, level.Apply(decimal.NewFromInt(-4), true))
	assert.True(t, level.QtyOnHand.Equal(decimal.NewFromInt(-1)))
}

func TestThreshold(t *testing.T) {
	assert.True(t, EffectiveThreshold(decimal.NewFromInt(4), 10).Equal(decimal.NewFromInt(4)))
	assert.True(t, EffectiveThreshold(decimal.Zero, 10).Equal(decimal.NewFromInt(10)))
	assert.True(t, IsBelowThreshold(decimal.NewFromInt(3), decimal.NewFromInt(4)))
	assert.False(t, IsBelowThreshold(decimal.NewFromInt(4), decimal.NewFromInt(4)))
	assert.False(t, IsBelowThreshold(decimal.NewFromInt(-1), decimal.Zero))
}

func TestLocation(t *testing.T) {
	l, err := NewLocation(" Main store ", " ms-01 ")
	require.NoError(t, err)
	assert.Equal(t, "MS-01", l.Code)
	assert.True(t, l.Active)

	_, err = NewLocation("Main", "")
	assert.Error(t, err)
	_, err = NewLocation("Main", "A B")
	assert.Error(t, err)

	l.SetActive(false)
	assert.False(t, l.Active)
	assert.Equal(t, 2, l.GetVersion())
}
