package dto

import "github.com/shopspring/decimal"

type CreateItemInput struct {
	Name        string
	Description string
	SalePrice   *decimal.Decimal
	Cost        decimal.Decimal
	CurrentQty  int
}

type UpdateItemInput struct {
	ID          int64
	Name        string
	Description string
	SalePrice   *decimal.Decimal
	Cost        decimal.Decimal
}
