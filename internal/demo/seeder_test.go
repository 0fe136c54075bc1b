package demo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salestracker/salestracker-server/internal/flags"
	itemUC "github.com/salestracker/salestracker-server/internal/item/usecase"
	"github.com/salestracker/salestracker-server/internal/model"
	orderUC "github.com/salestracker/salestracker-server/internal/order/usecase"
	"github.com/salestracker/salestracker-server/internal/store"
)

func newTestSeeder() (*Seeder, store.RecordStore[*model.Item], store.RecordStore[*model.Order], flags.Store) {
	items := store.NewMemoryStore[*model.Item]((*model.Item).Clone)
	orders := store.NewMemoryStore[*model.Order]((*model.Order).Clone)
	flagStore := flags.NewMemoryStore()

	itemUc := itemUC.NewItemUseCase(items, nil)
	orderUc := orderUC.NewOrderUseCase(orders, items, nil)

	return NewSeeder(itemUc, orderUc, flagStore, nil), items, orders, flagStore
}

func TestSeedIfNeededPopulatesCatalog(t *testing.T) {
	s, items, orders, flagStore := newTestSeeder()
	ctx := context.Background()

	require.NoError(t, s.SeedIfNeeded(ctx))

	allItems, err := items.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, allItems, len(productNames))

	allOrders, err := orders.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, allOrders, 25)

	// Every order went through the real lifecycle, so each item's allocated
	// quantity accounts for its undelivered orders exactly once.
	undeliveredQty := make(map[int64]int)
	for _, o := range allOrders {
		if !o.Delivered {
			undeliveredQty[o.ItemID] += o.Qty
		}
	}
	for _, it := range allItems {
		assert.Equal(t, undeliveredQty[it.ID], it.AllocatedQty, "item %d", it.ID)
	}

	loaded, err := flagStore.Get(ctx, flags.DemoDataLoadedKey)
	require.NoError(t, err)
	assert.True(t, loaded)
}

func TestSeedIfNeededIsFlagGuarded(t *testing.T) {
	s, items, _, _ := newTestSeeder()
	ctx := context.Background()

	require.NoError(t, s.SeedIfNeeded(ctx))
	require.NoError(t, s.SeedIfNeeded(ctx)) // second run must not duplicate

	allItems, err := items.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, allItems, len(productNames))
}

func TestSeededOrdersGetSalePriceDefault(t *testing.T) {
	s, items, orders, _ := newTestSeeder()
	ctx := context.Background()

	require.NoError(t, s.SeedIfNeeded(ctx))

	allItems, err := items.GetAll(ctx)
	require.NoError(t, err)
	lookup := make(map[int64]*model.Item, len(allItems))
	for _, it := range allItems {
		lookup[it.ID] = it
	}

	allOrders, err := orders.GetAll(ctx)
	require.NoError(t, err)
	for _, o := range allOrders {
		it := lookup[o.ItemID]
		require.NotNil(t, it)
		assert.True(t, o.Price.Equal(it.SalePrice.Decimal))
	}
}
