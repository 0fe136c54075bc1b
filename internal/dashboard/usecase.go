package dashboard

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/salestracker/salestracker-server/internal/dashboard/dto"
)

// Defaults applied when a caller passes a non-positive value.
const (
	DefaultMonthCount = 12
	DefaultTopN       = 10
)

// UseCase is the read-only analytics engine. Every operation aggregates over
// the full order and/or item sets; nothing here mutates the stores.
type UseCase interface {
	CurrentMonthSales(ctx context.Context) (decimal.Decimal, error)
	PreviousMonthSales(ctx context.Context) (decimal.Decimal, error)
	MonthlySalesChange(ctx context.Context) (decimal.Decimal, error)
	NetProfit(ctx context.Context) (decimal.Decimal, error)
	CurrentMonthNetProfit(ctx context.Context) (decimal.Decimal, error)
	PreviousMonthNetProfit(ctx context.Context) (decimal.Decimal, error)
	MonthlyProfitChange(ctx context.Context) (decimal.Decimal, error)
	PendingDeliveriesCount(ctx context.Context) (int, error)
	BackorderedItemsCount(ctx context.Context) (int, error)
	BackorderedItems(ctx context.Context) ([]dto.BackorderedItem, error)
	MonthlySales(ctx context.Context, monthCount int) ([]dto.SalesBucket, error)
	DailySalesForCurrentMonth(ctx context.Context) ([]dto.SalesBucket, error)
	TopSellingItems(ctx context.Context, topN int) ([]dto.TopItem, error)
	InventorySummary(ctx context.Context, lowStockThreshold int) (*dto.InventorySummary, error)
	OrdersCountForCurrentMonth(ctx context.Context) (int, error)
	Summary(ctx context.Context) (*dto.Summary, error)
}
