package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salestracker/salestracker-server/internal/apperr"
	"github.com/salestracker/salestracker-server/internal/item/dto"
	"github.com/salestracker/salestracker-server/internal/model"
	"github.com/salestracker/salestracker-server/internal/store"
)

func newTestUseCase() (*itemUseCase, store.RecordStore[*model.Item]) {
	items := store.NewMemoryStore[*model.Item]((*model.Item).Clone)
	uc := NewItemUseCase(items, nil).(*itemUseCase)
	return uc, items
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestCreateItemValidation(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	cases := []struct {
		name  string
		input dto.CreateItemInput
	}{
		{"empty name", dto.CreateItemInput{Name: "", Cost: dec("10")}},
		{"whitespace name", dto.CreateItemInput{Name: "   ", Cost: dec("10")}},
		{"zero cost", dto.CreateItemInput{Name: "widget", Cost: decimal.Zero}},
		{"negative cost", dto.CreateItemInput{Name: "widget", Cost: dec("-1")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateItem(ctx, &tc.input)
			require.Error(t, err)
			assert.True(t, apperr.IsValidation(err))
		})
	}

	// Nothing reached the store.
	all, err := uc.GetAllItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreateItemStampsTimestamps(t *testing.T) {
	uc, _ := newTestUseCase()

	it, err := uc.CreateItem(context.Background(), &dto.CreateItemInput{Name: "widget", Cost: dec("10")})
	require.NoError(t, err)
	assert.False(t, it.CreatedAt.IsZero())
	assert.Equal(t, it.CreatedAt, it.UpdatedAt)
	assert.NotZero(t, it.ID)
}

func TestUpdateItemNotFound(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.UpdateItem(context.Background(), &dto.UpdateItemInput{ID: 7, Name: "x", Cost: dec("1")})
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateItemLeavesInventoryAlone(t *testing.T) {
	uc, items := newTestUseCase()
	ctx := context.Background()

	it, err := uc.CreateItem(ctx, &dto.CreateItemInput{Name: "widget", Cost: dec("10"), CurrentQty: 20})
	require.NoError(t, err)

	// Simulate an unrelated allocation.
	stored, err := items.GetByID(ctx, it.ID)
	require.NoError(t, err)
	stored.AllocatedQty = 5
	require.NoError(t, items.Update(ctx, stored))

	updated, err := uc.UpdateItem(ctx, &dto.UpdateItemInput{ID: it.ID, Name: "widget v2", Cost: dec("12")})
	require.NoError(t, err)
	assert.Equal(t, 20, updated.CurrentQty)
	assert.Equal(t, 5, updated.AllocatedQty)
	assert.Equal(t, "widget v2", updated.Name)
}

func TestAddInventory(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	it, err := uc.CreateItem(ctx, &dto.CreateItemInput{Name: "widget", Cost: dec("10"), CurrentQty: 3})
	require.NoError(t, err)

	updated, err := uc.AddInventory(ctx, it.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 10, updated.CurrentQty)

	_, err = uc.AddInventory(ctx, it.ID, 0)
	assert.True(t, apperr.IsValidation(err))

	_, err = uc.AddInventory(ctx, 999, 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRemoveInventoryStrict(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	it, err := uc.CreateItem(ctx, &dto.CreateItemInput{Name: "widget", Cost: dec("10"), CurrentQty: 5})
	require.NoError(t, err)

	// Removing more than on hand must fail and leave the stock untouched.
	_, err = uc.RemoveInventory(ctx, it.ID, 6)
	require.Error(t, err)
	assert.True(t, apperr.IsInsufficientStock(err))

	unchanged, err := uc.GetItem(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, unchanged.CurrentQty)

	updated, err := uc.RemoveInventory(ctx, it.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.CurrentQty)
}

func TestSetInventory(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	it, err := uc.CreateItem(ctx, &dto.CreateItemInput{Name: "widget", Cost: dec("10"), CurrentQty: 5})
	require.NoError(t, err)

	updated, err := uc.SetInventory(ctx, it.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.CurrentQty)

	_, err = uc.SetInventory(ctx, it.ID, -1)
	assert.True(t, apperr.IsValidation(err))
}

func TestSearchItems(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	desc := "high-quality aluminium stand"
	_, err := uc.CreateItem(ctx, &dto.CreateItemInput{Name: "Laptop Stand", Description: desc, Cost: dec("10")})
	require.NoError(t, err)
	_, err = uc.CreateItem(ctx, &dto.CreateItemInput{Name: "USB Hub", Cost: dec("10")})
	require.NoError(t, err)

	byName, err := uc.SearchItems(ctx, "laptop")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Laptop Stand", byName[0].Name)

	byDesc, err := uc.SearchItems(ctx, "ALUMINIUM")
	require.NoError(t, err)
	assert.Len(t, byDesc, 1)

	// The item ID rendered as text also matches.
	byID, err := uc.SearchItems(ctx, "2")
	require.NoError(t, err)
	require.Len(t, byID, 1)
	assert.Equal(t, "USB Hub", byID[0].Name)
}

func TestLowStockAndBackordered(t *testing.T) {
	uc, items := newTestUseCase()
	ctx := context.Background()

	plenty, err := uc.CreateItem(ctx, &dto.CreateItemInput{Name: "plenty", Cost: dec("1"), CurrentQty: 50})
	require.NoError(t, err)
	low, err := uc.CreateItem(ctx, &dto.CreateItemInput{Name: "low", Cost: dec("1"), CurrentQty: 4})
	require.NoError(t, err)
	back, err := uc.CreateItem(ctx, &dto.CreateItemInput{Name: "back", Cost: dec("1"), CurrentQty: 2})
	require.NoError(t, err)

	stored, err := items.GetByID(ctx, back.ID)
	require.NoError(t, err)
	stored.AllocatedQty = 5
	require.NoError(t, items.Update(ctx, stored))

	lowStock, err := uc.LowStockItems(ctx, 0) // 0 means default threshold of 10
	require.NoError(t, err)
	require.Len(t, lowStock, 2)

	backordered, err := uc.BackorderedItems(ctx)
	require.NoError(t, err)
	require.Len(t, backordered, 1)
	assert.Equal(t, back.ID, backordered[0].ID)
	assert.Equal(t, -3, backordered[0].Available())

	_ = plenty
	_ = low
}
