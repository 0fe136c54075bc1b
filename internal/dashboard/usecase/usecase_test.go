package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salestracker/salestracker-server/internal/model"
	"github.com/salestracker/salestracker-server/internal/store"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

type fixture struct {
	uc     *dashboardUseCase
	items  store.RecordStore[*model.Item]
	orders store.RecordStore[*model.Order]
	now    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	items := store.NewMemoryStore[*model.Item]((*model.Item).Clone)
	orders := store.NewMemoryStore[*model.Order]((*model.Order).Clone)
	uc := NewDashboardUseCase(orders, items, nil).(*dashboardUseCase)

	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return now }

	return &fixture{uc: uc, items: items, orders: orders, now: now}
}

func (f *fixture) addItem(t *testing.T, cost string, current, allocated int) *model.Item {
	t.Helper()
	it := &model.Item{Name: "item", Cost: dec(cost), CurrentQty: current, AllocatedQty: allocated}
	_, err := f.items.Add(context.Background(), it)
	require.NoError(t, err)
	return it
}

func (f *fixture) addOrder(t *testing.T, itemID int64, sellDate time.Time, price string, qty int) *model.Order {
	t.Helper()
	o := &model.Order{CustomerName: "c", ItemID: itemID, SellDate: sellDate, Price: dec(price), Qty: qty}
	_, err := f.orders.Add(context.Background(), o)
	require.NoError(t, err)
	return o
}

func TestPercentChange(t *testing.T) {
	cases := []struct {
		name     string
		current  string
		previous string
		want     string
	}{
		{"previous zero current positive", "150", "0", "100"},
		{"both zero", "0", "0", "0"},
		{"fifty percent up", "150", "100", "50"},
		{"decline", "50", "100", "-50"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := percentChange(dec(tc.current), dec(tc.previous))
			assert.True(t, got.Equal(dec(tc.want)), "got %s", got)
		})
	}
}

func TestMonthSalesWindows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	it := f.addItem(t, "5", 100, 0)

	// Current month (Aug 2026): first and mid-month days count.
	f.addOrder(t, it.ID, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), "10", 2)
	f.addOrder(t, it.ID, time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC), "10", 1)
	// Previous month (Jul 2026), including the last-day boundary.
	f.addOrder(t, it.ID, time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC), "20", 1)
	// Outside both windows.
	f.addOrder(t, it.ID, time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC), "99", 1)

	current, err := f.uc.CurrentMonthSales(ctx)
	require.NoError(t, err)
	assert.True(t, current.Equal(dec("30")), "got %s", current)

	previous, err := f.uc.PreviousMonthSales(ctx)
	require.NoError(t, err)
	assert.True(t, previous.Equal(dec("20")), "got %s", previous)

	change, err := f.uc.MonthlySalesChange(ctx)
	require.NoError(t, err)
	assert.True(t, change.Equal(dec("50")), "got %s", change)
}

func TestNetProfitSkipsDeletedItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	it := f.addItem(t, "10", 100, 0)
	ghost := f.addItem(t, "10", 100, 0)

	f.addOrder(t, it.ID, f.now, "15", 5)    // (15-10)*5 = 25
	f.addOrder(t, ghost.ID, f.now, "50", 3) // dropped once the item goes

	require.NoError(t, f.items.Delete(ctx, ghost.ID))

	profit, err := f.uc.NetProfit(ctx)
	require.NoError(t, err)
	assert.True(t, profit.Equal(dec("25")), "got %s", profit)
}

func TestMonthlyProfitChange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	it := f.addItem(t, "10", 100, 0)

	f.addOrder(t, it.ID, time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC), "20", 3) // +30 current
	f.addOrder(t, it.ID, time.Date(2026, 7, 5, 0, 0, 0, 0, time.UTC), "20", 6) // +60 previous

	change, err := f.uc.MonthlyProfitChange(ctx)
	require.NoError(t, err)
	assert.True(t, change.Equal(dec("-50")), "got %s", change)
}

func TestPendingDeliveriesCount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	it := f.addItem(t, "10", 100, 0)

	f.addOrder(t, it.ID, f.now.AddDate(0, 0, -1), "10", 1)
	f.addOrder(t, it.ID, f.now.AddDate(0, 0, 5), "10", 1) // future sell date, not pending

	delivered := f.addOrder(t, it.ID, f.now.AddDate(0, 0, -2), "10", 1)
	delivered.Delivered = true
	require.NoError(t, f.orders.Update(ctx, delivered))

	count, err := f.uc.PendingDeliveriesCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestBackorderedItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addItem(t, "10", 10, 3)
	back := f.addItem(t, "10", 2, 7)

	count, err := f.uc.BackorderedItemsCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	list, err := f.uc.BackorderedItems(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, back.ID, list[0].Item.ID)
	assert.Equal(t, 5, list[0].QtyNeeded)
}

func TestMonthlySalesSeries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	it := f.addItem(t, "5", 100, 0)

	f.addOrder(t, it.ID, time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC), "10", 1)
	f.addOrder(t, it.ID, time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC), "10", 3)
	f.addOrder(t, it.ID, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), "10", 2)

	buckets, err := f.uc.MonthlySales(ctx, 0) // 0 means the default of 12
	require.NoError(t, err)
	require.Len(t, buckets, 12)

	// Oldest first: Sep 2025 through Aug 2026, empty months present as zero.
	assert.Equal(t, "2025-09", buckets[0].Label)
	assert.Equal(t, "2026-08", buckets[11].Label)
	assert.True(t, buckets[0].Total.Equal(dec("20")))
	assert.True(t, buckets[8].Total.Equal(dec("30"))) // 2026-05
	assert.True(t, buckets[11].Total.Equal(dec("10")))
	assert.True(t, buckets[1].Total.IsZero())

	// Additivity: the bucket totals sum to the revenue of every order in the
	// 12-month window, with nothing double counted or dropped at boundaries.
	sum := decimal.Zero
	for _, b := range buckets {
		sum = sum.Add(b.Total)
	}
	assert.True(t, sum.Equal(dec("60")), "got %s", sum)
}

func TestDailySalesSeriesStopsAtToday(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	it := f.addItem(t, "5", 100, 0)

	f.addOrder(t, it.ID, time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC), "10", 1)
	f.addOrder(t, it.ID, time.Date(2026, 8, 15, 3, 0, 0, 0, time.UTC), "10", 2)

	buckets, err := f.uc.DailySalesForCurrentMonth(ctx)
	require.NoError(t, err)
	require.Len(t, buckets, 15) // Aug 1 through today, Aug 15

	assert.Equal(t, "2026-08-01", buckets[0].Label)
	assert.Equal(t, "2026-08-15", buckets[14].Label)
	assert.True(t, buckets[0].Total.Equal(dec("10")))
	assert.True(t, buckets[14].Total.Equal(dec("20")))
	assert.True(t, buckets[1].Total.IsZero())
}

func TestTopSellingItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	gold := f.addItem(t, "1", 100, 0)
	silver := f.addItem(t, "1", 100, 0)
	ghost := f.addItem(t, "1", 100, 0)

	f.addOrder(t, gold.ID, f.now, "10", 5)   // revenue 50
	f.addOrder(t, gold.ID, f.now, "10", 2)   // +20 => 70
	f.addOrder(t, silver.ID, f.now, "30", 1) // 30
	f.addOrder(t, ghost.ID, f.now, "99", 9)  // dropped, item deleted below

	require.NoError(t, f.items.Delete(ctx, ghost.ID))

	top, err := f.uc.TopSellingItems(ctx, 0)
	require.NoError(t, err)
	require.Len(t, top, 2)

	assert.Equal(t, gold.ID, top[0].Item.ID)
	assert.Equal(t, 7, top[0].TotalQty)
	assert.True(t, top[0].TotalRevenue.Equal(dec("70")))
	assert.Equal(t, silver.ID, top[1].Item.ID)

	top1, err := f.uc.TopSellingItems(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top1, 1)
	assert.Equal(t, gold.ID, top1[0].Item.ID)
}

func TestInventorySummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addItem(t, "1", 50, 0) // healthy
	f.addItem(t, "1", 4, 0)  // low stock
	f.addItem(t, "1", 2, 7)  // low stock and backordered

	summary, err := f.uc.InventorySummary(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalItems)
	assert.Equal(t, 2, summary.LowStockCount)
	assert.Equal(t, 1, summary.BackorderedCount)
}

func TestOrdersCountForCurrentMonth(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	it := f.addItem(t, "1", 100, 0)

	f.addOrder(t, it.ID, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), "10", 1)
	f.addOrder(t, it.ID, time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC), "10", 1)
	f.addOrder(t, it.ID, time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC), "10", 1)

	count, err := f.uc.OrdersCountForCurrentMonth(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSummaryAggregatesHeadlines(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	it := f.addItem(t, "10", 100, 0)

	f.addOrder(t, it.ID, time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC), "15", 2) // revenue 30, profit 10
	f.addOrder(t, it.ID, time.Date(2026, 7, 5, 0, 0, 0, 0, time.UTC), "15", 4) // revenue 60, profit 20

	s, err := f.uc.Summary(ctx)
	require.NoError(t, err)
	assert.True(t, s.CurrentMonthSales.Equal(dec("30")))
	assert.True(t, s.PreviousMonthSales.Equal(dec("60")))
	assert.True(t, s.SalesChangePct.Equal(dec("-50")))
	assert.True(t, s.NetProfit.Equal(dec("30")))
	assert.True(t, s.ProfitChangePct.Equal(dec("-50")))
	assert.Equal(t, 2, s.PendingDeliveries)
	assert.Equal(t, 1, s.CurrentMonthOrders)
	assert.Equal(t, 0, s.BackorderedItems)
}
