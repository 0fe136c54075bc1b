package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a product tracked in inventory. AllocatedQty is the portion of
// CurrentQty reserved against undelivered orders; Available may go negative,
// which is exactly the backorder condition.
type Item struct {
	ID           int64               `db:"item_id" json:"item_id"`
	Name         string              `db:"name" json:"name"`
	Description  *string             `db:"description" json:"description"`
	SalePrice    decimal.NullDecimal `db:"sale_price" json:"sale_price"`
	Cost         decimal.Decimal     `db:"cost" json:"cost"`
	CurrentQty   int                 `db:"current_qty" json:"current_qty"`
	AllocatedQty int                 `db:"allocated_qty" json:"allocated_qty"`
	CreatedAt    time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time           `db:"updated_at" json:"updated_at"`
}

// Available is current minus allocated inventory. Negative means backordered.
func (i *Item) Available() int {
	return i.CurrentQty - i.AllocatedQty
}

// Backordered reports whether more stock is allocated than is on hand.
func (i *Item) Backordered() bool {
	return i.AllocatedQty > i.CurrentQty
}

func (i *Item) EntityID() int64 {
	return i.ID
}

func (i *Item) SetEntityID(id int64) {
	i.ID = id
}

// Clone returns a deep copy so store-held records never alias caller state.
func (i *Item) Clone() *Item {
	c := *i
	if i.Description != nil {
		d := *i.Description
		c.Description = &d
	}
	return &c
}
