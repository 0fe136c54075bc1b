package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/salestracker/salestracker-server/internal/dashboard"
	"github.com/salestracker/salestracker-server/internal/dashboard/dto"
	"github.com/salestracker/salestracker-server/internal/item"
	"github.com/salestracker/salestracker-server/internal/model"
	"github.com/salestracker/salestracker-server/internal/store"
)

var hundred = decimal.NewFromInt(100)

type dashboardUseCase struct {
	orders store.RecordStore[*model.Order]
	items  store.RecordStore[*model.Item]
	logger *zap.Logger
	now    func() time.Time
}

func NewDashboardUseCase(orders store.RecordStore[*model.Order], items store.RecordStore[*model.Item], log *zap.Logger) dashboard.UseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &dashboardUseCase{
		orders: orders,
		items:  items,
		logger: log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// monthWindow returns the inclusive [first day, last day] bounds of the
// calendar month containing t, at midnight UTC.
func monthWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).AddDate(0, 0, -1)
	return start, end
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// percentChange special-cases a zero previous value so the division can never
// blow up: no previous and no current is 0, no previous but some current is
// reported as a flat 100.
func percentChange(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.GreaterThan(decimal.Zero) {
			return hundred
		}
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(hundred)
}

func (uc *dashboardUseCase) salesInWindow(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	orders, err := uc.orders.Query(ctx, func(o *model.Order) bool {
		return within(o.SellDate, start, end)
	})
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Revenue())
	}
	return total, nil
}

func (uc *dashboardUseCase) CurrentMonthSales(ctx context.Context) (decimal.Decimal, error) {
	start, end := monthWindow(uc.now())
	return uc.salesInWindow(ctx, start, end)
}

func (uc *dashboardUseCase) PreviousMonthSales(ctx context.Context) (decimal.Decimal, error) {
	start, end := monthWindow(uc.now().AddDate(0, 0, -uc.now().Day()))
	return uc.salesInWindow(ctx, start, end)
}

func (uc *dashboardUseCase) MonthlySalesChange(ctx context.Context) (decimal.Decimal, error) {
	current, err := uc.CurrentMonthSales(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	previous, err := uc.PreviousMonthSales(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return percentChange(current, previous), nil
}

// itemLookup builds the transient ID-to-item map used by the profit and
// top-seller aggregations. Never used for mutation.
func (uc *dashboardUseCase) itemLookup(ctx context.Context) (map[int64]*model.Item, error) {
	items, err := uc.items.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	lookup := make(map[int64]*model.Item, len(items))
	for _, it := range items {
		lookup[it.ID] = it
	}
	return lookup, nil
}

// profitOf sums (price - cost) * qty across orders. An order whose item no
// longer exists contributes zero rather than erroring.
func profitOf(orders []*model.Order, lookup map[int64]*model.Item) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		it, ok := lookup[o.ItemID]
		if !ok {
			continue
		}
		margin := o.Price.Sub(it.Cost).Mul(decimal.NewFromInt(int64(o.Qty)))
		total = total.Add(margin)
	}
	return total
}

func (uc *dashboardUseCase) NetProfit(ctx context.Context) (decimal.Decimal, error) {
	orders, err := uc.orders.GetAll(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	lookup, err := uc.itemLookup(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return profitOf(orders, lookup), nil
}

func (uc *dashboardUseCase) profitInWindow(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	orders, err := uc.orders.Query(ctx, func(o *model.Order) bool {
		return within(o.SellDate, start, end)
	})
	if err != nil {
		return decimal.Zero, err
	}
	lookup, err := uc.itemLookup(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return profitOf(orders, lookup), nil
}

func (uc *dashboardUseCase) CurrentMonthNetProfit(ctx context.Context) (decimal.Decimal, error) {
	start, end := monthWindow(uc.now())
	return uc.profitInWindow(ctx, start, end)
}

func (uc *dashboardUseCase) PreviousMonthNetProfit(ctx context.Context) (decimal.Decimal, error) {
	start, end := monthWindow(uc.now().AddDate(0, 0, -uc.now().Day()))
	return uc.profitInWindow(ctx, start, end)
}

func (uc *dashboardUseCase) MonthlyProfitChange(ctx context.Context) (decimal.Decimal, error) {
	current, err := uc.CurrentMonthNetProfit(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	previous, err := uc.PreviousMonthNetProfit(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return percentChange(current, previous), nil
}

func (uc *dashboardUseCase) PendingDeliveriesCount(ctx context.Context) (int, error) {
	now := uc.now()
	orders, err := uc.orders.Query(ctx, func(o *model.Order) bool {
		return !o.Delivered && !o.SellDate.After(now)
	})
	if err != nil {
		return 0, err
	}
	return len(orders), nil
}

func (uc *dashboardUseCase) BackorderedItemsCount(ctx context.Context) (int, error) {
	items, err := uc.items.Query(ctx, func(i *model.Item) bool {
		return i.Backordered()
	})
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

func (uc *dashboardUseCase) BackorderedItems(ctx context.Context) ([]dto.BackorderedItem, error) {
	items, err := uc.items.Query(ctx, func(i *model.Item) bool {
		return i.Backordered()
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.BackorderedItem, 0, len(items))
	for _, it := range items {
		out = append(out, dto.BackorderedItem{Item: it, QtyNeeded: it.AllocatedQty - it.CurrentQty})
	}
	return out, nil
}

// MonthlySales returns one bucket per trailing calendar month, oldest first.
func (uc *dashboardUseCase) MonthlySales(ctx context.Context, monthCount int) ([]dto.SalesBucket, error) {
	if monthCount <= 0 {
		monthCount = dashboard.DefaultMonthCount
	}

	orders, err := uc.orders.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	base := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	buckets := make([]dto.SalesBucket, 0, monthCount)
	for i := monthCount - 1; i >= 0; i-- {
		start := base.AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0).AddDate(0, 0, -1)

		total := decimal.Zero
		for _, o := range orders {
			if within(o.SellDate, start, end) {
				total = total.Add(o.Revenue())
			}
		}
		buckets = append(buckets, dto.SalesBucket{Label: start.Format("2006-01"), Total: total})
	}
	return buckets, nil
}

// DailySalesForCurrentMonth returns one bucket per day from the first of the
// month through today (or the month end, whichever is earlier).
func (uc *dashboardUseCase) DailySalesForCurrentMonth(ctx context.Context) ([]dto.SalesBucket, error) {
	now := uc.now()
	start, end := monthWindow(now)

	orders, err := uc.orders.Query(ctx, func(o *model.Order) bool {
		return within(o.SellDate, start, end)
	})
	if err != nil {
		return nil, err
	}

	buckets := make([]dto.SalesBucket, 0)
	for day := start; !day.After(now) && !day.After(end); day = day.AddDate(0, 0, 1) {
		total := decimal.Zero
		for _, o := range orders {
			sy, sm, sd := o.SellDate.UTC().Date()
			dy, dm, dd := day.Date()
			if sy == dy && sm == dm && sd == dd {
				total = total.Add(o.Revenue())
			}
		}
		buckets = append(buckets, dto.SalesBucket{Label: day.Format("2006-01-02"), Total: total})
	}
	return buckets, nil
}

// TopSellingItems groups orders by item, sums quantity and revenue, drops
// groups whose item no longer exists, and returns the topN by revenue.
// Intra-tie order on equal revenue is whatever the stable sort yields.
func (uc *dashboardUseCase) TopSellingItems(ctx context.Context, topN int) ([]dto.TopItem, error) {
	if topN <= 0 {
		topN = dashboard.DefaultTopN
	}

	orders, err := uc.orders.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	lookup, err := uc.itemLookup(ctx)
	if err != nil {
		return nil, err
	}

	type group struct {
		itemID  int64
		qty     int
		revenue decimal.Decimal
	}

	groups := make(map[int64]*group)
	ordered := make([]*group, 0)
	for _, o := range orders {
		g, ok := groups[o.ItemID]
		if !ok {
			g = &group{itemID: o.ItemID, revenue: decimal.Zero}
			groups[o.ItemID] = g
			ordered = append(ordered, g)
		}
		g.qty += o.Qty
		g.revenue = g.revenue.Add(o.Revenue())
	}

	kept := ordered[:0]
	for _, g := range ordered {
		if _, ok := lookup[g.itemID]; ok {
			kept = append(kept, g)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].revenue.GreaterThan(kept[j].revenue)
	})
	if len(kept) > topN {
		kept = kept[:topN]
	}

	out := make([]dto.TopItem, 0, len(kept))
	for _, g := range kept {
		out = append(out, dto.TopItem{Item: lookup[g.itemID], TotalQty: g.qty, TotalRevenue: g.revenue})
	}
	return out, nil
}

func (uc *dashboardUseCase) InventorySummary(ctx context.Context, lowStockThreshold int) (*dto.InventorySummary, error) {
	if lowStockThreshold <= 0 {
		lowStockThreshold = item.DefaultLowStockThreshold
	}

	items, err := uc.items.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	summary := &dto.InventorySummary{TotalItems: len(items)}
	for _, it := range items {
		if it.Available() < lowStockThreshold {
			summary.LowStockCount++
		}
		if it.Backordered() {
			summary.BackorderedCount++
		}
	}
	return summary, nil
}

func (uc *dashboardUseCase) OrdersCountForCurrentMonth(ctx context.Context) (int, error) {
	start, end := monthWindow(uc.now())
	orders, err := uc.orders.Query(ctx, func(o *model.Order) bool {
		return within(o.SellDate, start, end)
	})
	if err != nil {
		return 0, err
	}
	return len(orders), nil
}

// Summary assembles the headline block in one call for the dashboard page.
func (uc *dashboardUseCase) Summary(ctx context.Context) (*dto.Summary, error) {
	currentSales, err := uc.CurrentMonthSales(ctx)
	if err != nil {
		return nil, err
	}
	previousSales, err := uc.PreviousMonthSales(ctx)
	if err != nil {
		return nil, err
	}
	netProfit, err := uc.NetProfit(ctx)
	if err != nil {
		return nil, err
	}
	currentProfit, err := uc.CurrentMonthNetProfit(ctx)
	if err != nil {
		return nil, err
	}
	previousProfit, err := uc.PreviousMonthNetProfit(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := uc.PendingDeliveriesCount(ctx)
	if err != nil {
		return nil, err
	}
	backordered, err := uc.BackorderedItemsCount(ctx)
	if err != nil {
		return nil, err
	}
	orderCount, err := uc.OrdersCountForCurrentMonth(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.Summary{
		CurrentMonthSales:      currentSales,
		PreviousMonthSales:     previousSales,
		SalesChangePct:         percentChange(currentSales, previousSales),
		NetProfit:              netProfit,
		CurrentMonthNetProfit:  currentProfit,
		PreviousMonthNetProfit: previousProfit,
		ProfitChangePct:        percentChange(currentProfit, previousProfit),
		PendingDeliveries:      pending,
		BackorderedItems:       backordered,
		CurrentMonthOrders:     orderCount,
	}, nil
}
