package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/salestracker/salestracker-server/internal/apperr"
	"github.com/salestracker/salestracker-server/internal/item"
	"github.com/salestracker/salestracker-server/internal/item/dto"
	"github.com/salestracker/salestracker-server/internal/model"
	"github.com/salestracker/salestracker-server/internal/store"
)

type itemUseCase struct {
	items  store.RecordStore[*model.Item]
	logger *zap.Logger
	now    func() time.Time
}

func NewItemUseCase(items store.RecordStore[*model.Item], log *zap.Logger) item.UseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &itemUseCase{
		items:  items,
		logger: log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (uc *itemUseCase) GetAllItems(ctx context.Context) ([]*model.Item, error) {
	return uc.items.GetAll(ctx)
}

func (uc *itemUseCase) GetItem(ctx context.Context, id int64) (*model.Item, error) {
	return uc.items.GetByID(ctx, id)
}

func validateItemFields(name string, cost decimal.Decimal) error {
	if strings.TrimSpace(name) == "" {
		return apperr.Validation("name", "must not be empty")
	}
	if cost.LessThanOrEqual(decimal.Zero) {
		return apperr.Validation("cost", "must be greater than zero")
	}
	return nil
}

func (uc *itemUseCase) CreateItem(ctx context.Context, input *dto.CreateItemInput) (*model.Item, error) {
	if err := validateItemFields(input.Name, input.Cost); err != nil {
		return nil, err
	}
	if input.CurrentQty < 0 {
		return nil, apperr.Validation("current_qty", "must not be negative")
	}

	now := uc.now()

	it := &model.Item{
		Name:       input.Name,
		Cost:       input.Cost,
		CurrentQty: input.CurrentQty,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if input.Description != "" {
		it.Description = &input.Description
	}
	if input.SalePrice != nil {
		it.SalePrice = decimal.NewNullDecimal(*input.SalePrice)
	}

	id, err := uc.items.Add(ctx, it)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("item created", zap.Int64("item_id", id), zap.String("name", it.Name))
	return it, nil
}

func (uc *itemUseCase) UpdateItem(ctx context.Context, input *dto.UpdateItemInput) (*model.Item, error) {
	if err := validateItemFields(input.Name, input.Cost); err != nil {
		return nil, err
	}

	it, err := uc.items.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, apperr.NotFound("item", input.ID)
	}

	// Inventory quantities are only touched by the inventory verbs and the
	// order lifecycle, never by a plain item update.
	it.Name = input.Name
	it.Cost = input.Cost
	it.Description = nil
	if input.Description != "" {
		it.Description = &input.Description
	}
	it.SalePrice = decimal.NullDecimal{}
	if input.SalePrice != nil {
		it.SalePrice = decimal.NewNullDecimal(*input.SalePrice)
	}
	it.UpdatedAt = uc.now()

	if err := uc.items.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// DeleteItem removes the item record. Orders referencing it survive and are
// excluded from profit and top-seller aggregations from then on.
func (uc *itemUseCase) DeleteItem(ctx context.Context, id int64) error {
	return uc.items.Delete(ctx, id)
}

func (uc *itemUseCase) SearchItems(ctx context.Context, term string) ([]*model.Item, error) {
	needle := strings.ToLower(term)
	return uc.items.Query(ctx, func(i *model.Item) bool {
		if strings.Contains(strings.ToLower(i.Name), needle) {
			return true
		}
		if i.Description != nil && strings.Contains(strings.ToLower(*i.Description), needle) {
			return true
		}
		return strings.Contains(strconv.FormatInt(i.ID, 10), needle)
	})
}

func (uc *itemUseCase) LowStockItems(ctx context.Context, threshold int) ([]*model.Item, error) {
	if threshold <= 0 {
		threshold = item.DefaultLowStockThreshold
	}
	return uc.items.Query(ctx, func(i *model.Item) bool {
		return i.Available() < threshold
	})
}

func (uc *itemUseCase) BackorderedItems(ctx context.Context) ([]*model.Item, error) {
	return uc.items.Query(ctx, func(i *model.Item) bool {
		return i.Backordered()
	})
}

func (uc *itemUseCase) AddInventory(ctx context.Context, id int64, qty int) (*model.Item, error) {
	if qty <= 0 {
		return nil, apperr.Validation("qty", "must be greater than zero")
	}

	it, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, apperr.NotFound("item", id)
	}

	it.CurrentQty += qty
	it.UpdatedAt = uc.now()

	if err := uc.items.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// RemoveInventory is the manual adjustment path. Unlike delivery, which
// clamps at zero, removing more than is on hand is an error and the stock is
// left untouched.
func (uc *itemUseCase) RemoveInventory(ctx context.Context, id int64, qty int) (*model.Item, error) {
	if qty <= 0 {
		return nil, apperr.Validation("qty", "must be greater than zero")
	}

	it, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, apperr.NotFound("item", id)
	}

	if it.CurrentQty < qty {
		return nil, &apperr.InsufficientStockError{ItemID: id, Requested: qty, OnHand: it.CurrentQty}
	}

	it.CurrentQty -= qty
	it.UpdatedAt = uc.now()

	if err := uc.items.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (uc *itemUseCase) SetInventory(ctx context.Context, id int64, qty int) (*model.Item, error) {
	if qty < 0 {
		return nil, apperr.Validation("qty", "must not be negative")
	}

	it, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, apperr.NotFound("item", id)
	}

	it.CurrentQty = qty
	it.UpdatedAt = uc.now()

	if err := uc.items.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}
