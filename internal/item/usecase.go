package item

import (
	"context"

	"github.com/salestracker/salestracker-server/internal/item/dto"
	"github.com/salestracker/salestracker-server/internal/model"
)

// DefaultLowStockThreshold is used when a caller does not supply one.
const DefaultLowStockThreshold = 10

type UseCase interface {
	GetAllItems(ctx context.Context) ([]*model.Item, error)
	GetItem(ctx context.Context, id int64) (*model.Item, error)
	CreateItem(ctx context.Context, input *dto.CreateItemInput) (*model.Item, error)
	UpdateItem(ctx context.Context, input *dto.UpdateItemInput) (*model.Item, error)
	DeleteItem(ctx context.Context, id int64) error
	SearchItems(ctx context.Context, term string) ([]*model.Item, error)
	LowStockItems(ctx context.Context, threshold int) ([]*model.Item, error)
	BackorderedItems(ctx context.Context) ([]*model.Item, error)
	AddInventory(ctx context.Context, id int64, qty int) (*model.Item, error)
	RemoveInventory(ctx context.Context, id int64, qty int) (*model.Item, error)
	SetInventory(ctx context.Context, id int64, qty int) (*model.Item, error)
}
