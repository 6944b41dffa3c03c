package inventory

import (
	"context"
	"testing"

	"github.com/inventory/backend/internal/domain/inventory"
	"github.com/inventory/backend/internal/domain/shared"
	"github.com/inventory/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newLocationService() (*LocationService, *testutil.MockLocationRepository, *testutil.MockStockLevelRepository, *testutil.MockStockTransactionRepository) {
	locations := new(testutil.MockLocationRepository)
	levels := new(testutil.MockStockLevelRepository)
	txs := new(testutil.MockStockTransactionRepository)
	return NewLocationService(locations, levels, txs, zap.NewNop()), locations, levels, txs
}

func TestLocationService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes code", func(t *testing.T) {
		svc, locations, _, _ := newLocationService()
		locations.On("ExistsByCode", ctx, "WH-A", int64(0)).Return(false, nil)
		locations.On("Save", ctx, mock.AnythingOfType("*inventory.Location")).Return(nil)

		resp, err := svc.Create(ctx, CreateLocationRequest{Name: "Warehouse A", Code: " wh-a "})
		require.NoError(t, err)
		assert.Equal(t, "WH-A", resp.Code)
		assert.True(t, resp.Active)
	})

	t.Run("created inactive", func(t *testing.T) {
		svc, locations, _, _ := newLocationService()
		locations.On("ExistsByCode", ctx, "VAN", int64(0)).Return(false, nil)
		locations.On("Save", ctx, mock.Anything).Return(nil)

		inactive := false
		resp, err := svc.Create(ctx, CreateLocationRequest{Name: "Van", Code: "van", Active: &inactive})
		require.NoError(t, err)
		assert.False(t, resp.Active)
	})

	t.Run("duplicate code", func(t *testing.T) {
		svc, locations, _, _ := newLocationService()
		locations.On("ExistsByCode", ctx, "WH-A", int64(0)).Return(true, nil)

		_, err := svc.Create(ctx, CreateLocationRequest{Name: "Warehouse A", Code: "WH-A"})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("invalid code", func(t *testing.T) {
		svc, _, _, _ := newLocationService()
		_, err := svc.Create(ctx, CreateLocationRequest{Name: "Shelf", Code: "A 1"})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestLocationService_Update(t *testing.T) {
	ctx := context.Background()
	svc, locations, _, _ := newLocationService()
	location := testLocation(4, true)
	locations.On("FindByID", ctx, int64(4)).Return(location, nil)
	locations.On("ExistsByCode", ctx, "MAIN", int64(4)).Return(false, nil)
	locations.On("Save", ctx, location).Return(nil)

	name := "Main store"
	inactive := false
	resp, err := svc.Update(ctx, 4, UpdateLocationRequest{Name: &name, Active: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "Main store", resp.Name)
	assert.Equal(t, "MAIN", resp.Code)
	assert.False(t, resp.Active)
}

func TestLocationService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("refused with history", func(t *testing.T) {
		svc, locations, _, txs := newLocationService()
		locations.On("FindByID", ctx, int64(4)).Return(testLocation(4, true), nil)
		txs.On("ExistsForLocation", ctx, int64(4)).Return(true, nil)

		err := svc.Delete(ctx, 4)
		assert.ErrorIs(t, err, shared.ErrConflict)
		locations.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("refused with stock levels", func(t *testing.T) {
		svc, locations, levels, txs := newLocationService()
		locations.On("FindByID", ctx, int64(4)).Return(testLocation(4, true), nil)
		txs.On("ExistsForLocation", ctx, int64(4)).Return(false, nil)
		levels.On("ExistsForLocation", ctx, int64(4)).Return(true, nil)

		assert.ErrorIs(t, svc.Delete(ctx, 4), shared.ErrConflict)
	})

	t.Run("unused", func(t *testing.T) {
		svc, locations, levels, txs := newLocationService()
		locations.On("FindByID", ctx, int64(4)).Return(testLocation(4, true), nil)
		txs.On("ExistsForLocation", ctx, int64(4)).Return(false, nil)
		levels.On("ExistsForLocation", ctx, int64(4)).Return(false, nil)
		locations.On("Delete", ctx, int64(4)).Return(nil)

		require.NoError(t, svc.Delete(ctx, 4))
	})

	t.Run("not found", func(t *testing.T) {
		svc, locations, _, _ := newLocationService()
		locations.On("FindByID", ctx, int64(5)).Return(nil, shared.ErrNotFound)
		err := svc.Delete(ctx, 5)
		require.ErrorIs(t, err, shared.ErrNotFound)
		assert.Equal(t, "Location 5 not found", err.Error())
	})
}

func TestLocationService_List(t *testing.T) {
	ctx := context.Background()
	svc, locations, _, _ := newLocationService()
	locations.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
		return f.OrderBy == "name" && f.Filters["active_only"] == true
	})).Return([]inventory.Location{*testLocation(1, true)}, int64(1), nil)

	page, err := svc.List(ctx, shared.Filter{Filters: map[string]interface{}{"active_only": true}})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, "MAIN", page.Items[0].Code)
}
