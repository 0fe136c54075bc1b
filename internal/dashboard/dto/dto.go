package dto

import (
	"github.com/shopspring/decimal"

	"github.com/salestracker/salestracker-server/internal/model"
)

// SalesBucket is one point in a sales series. Buckets with no orders are
// present with a zero total, never omitted.
type SalesBucket struct {
	Label string          `json:"label"`
	Total decimal.Decimal `json:"total"`
}

// TopItem is one row of the top-selling ranking.
type TopItem struct {
	Item         *model.Item     `json:"item"`
	TotalQty     int             `json:"total_qty"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// BackorderedItem pairs an item with the quantity needed to cover its
// allocation.
type BackorderedItem struct {
	Item      *model.Item `json:"item"`
	QtyNeeded int         `json:"qty_needed"`
}

// InventorySummary is the headline inventory counts.
type InventorySummary struct {
	TotalItems       int `json:"total_items"`
	LowStockCount    int `json:"low_stock_count"`
	BackorderedCount int `json:"backordered_count"`
}

// Summary is the combined dashboard headline block.
type Summary struct {
	CurrentMonthSales      decimal.Decimal `json:"current_month_sales"`
	PreviousMonthSales     decimal.Decimal `json:"previous_month_sales"`
	SalesChangePct         decimal.Decimal `json:"sales_change_pct"`
	NetProfit              decimal.Decimal `json:"net_profit"`
	CurrentMonthNetProfit  decimal.Decimal `json:"current_month_net_profit"`
	PreviousMonthNetProfit decimal.Decimal `json:"previous_month_net_profit"`
	ProfitChangePct        decimal.Decimal `json:"profit_change_pct"`
	PendingDeliveries      int             `json:"pending_deliveries"`
	BackorderedItems       int             `json:"backordered_items"`
	CurrentMonthOrders     int             `json:"current_month_orders"`
}
