package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateOrderInput struct {
	CustomerName string
	ItemID       int64
	SellDate     time.Time
	Price        decimal.Decimal // zero or negative means "use the item's sale price"
	Qty          int
	Paid         bool
}

type UpdateOrderInput struct {
	ID           int64
	CustomerName string
	ItemID       int64
	SellDate     time.Time
	Price        decimal.Decimal
	Qty          int
}
