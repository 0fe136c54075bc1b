package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a sale of a single item. It references the item by ID only; no
// object graph is kept. While Delivered is false the order's Qty is counted
// in the item's AllocatedQty.
type Order struct {
	ID           int64           `db:"order_id" json:"order_id"`
	CustomerName string          `db:"customer_name" json:"customer_name"`
	ItemID       int64           `db:"item_id" json:"item_id"`
	SellDate     time.Time       `db:"sell_date" json:"sell_date"`
	Price        decimal.Decimal `db:"price" json:"price"`
	Qty          int             `db:"qty" json:"qty"`
	Paid         bool            `db:"paid" json:"paid"`
	Delivered    bool            `db:"delivered" json:"delivered"`
	PaymentDate  *time.Time      `db:"payment_date" json:"payment_date"`
	DeliveryDate *time.Time      `db:"delivery_date" json:"delivery_date"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// Revenue is price times quantity.
func (o *Order) Revenue() decimal.Decimal {
	return o.Price.Mul(decimal.NewFromInt(int64(o.Qty)))
}

func (o *Order) EntityID() int64 {
	return o.ID
}

func (o *Order) SetEntityID(id int64) {
	o.ID = id
}

// Clone returns a deep copy so store-held records never alias caller state.
func (o *Order) Clone() *Order {
	c := *o
	if o.PaymentDate != nil {
		t := *o.PaymentDate
		c.PaymentDate = &t
	}
	if o.DeliveryDate != nil {
		t := *o.DeliveryDate
		c.DeliveryDate = &t
	}
	return &c
}
