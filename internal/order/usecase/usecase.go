package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/salestracker/salestracker-server/internal/apperr"
	"github.com/salestracker/salestracker-server/internal/model"
	"github.com/salestracker/salestracker-server/internal/order"
	"github.com/salestracker/salestracker-server/internal/order/dto"
	"github.com/salestracker/salestracker-server/internal/store"
)

// orderUseCase drives the order lifecycle and the inventory allocation that
// rides along with it. Each operation is a sequence of store calls with no
// cross-call atomicity; a crash between the order write and the item write
// leaves the two inconsistent. Single-user scale, accepted.
type orderUseCase struct {
	orders store.RecordStore[*model.Order]
	items  store.RecordStore[*model.Item]
	logger *zap.Logger
	now    func() time.Time
}

func NewOrderUseCase(orders store.RecordStore[*model.Order], items store.RecordStore[*model.Item], log *zap.Logger) order.UseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &orderUseCase{
		orders: orders,
		items:  items,
		logger: log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (uc *orderUseCase) GetAllOrders(ctx context.Context) ([]*model.Order, error) {
	return uc.orders.GetAll(ctx)
}

func (uc *orderUseCase) GetOrder(ctx context.Context, id int64) (*model.Order, error) {
	return uc.orders.GetByID(ctx, id)
}

// CreateOrder persists the order and allocates its quantity on the item.
// There is no availability check: overselling is allowed and shows up later
// as a backorder on the item.
func (uc *orderUseCase) CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error) {
	if input.Qty <= 0 {
		return nil, apperr.Validation("qty", "must be greater than zero")
	}

	it, err := uc.items.GetByID(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, apperr.NotFound("item", input.ItemID)
	}

	now := uc.now()

	o := &model.Order{
		CustomerName: input.CustomerName,
		ItemID:       input.ItemID,
		SellDate:     input.SellDate,
		Price:        input.Price,
		Qty:          input.Qty,
		Paid:         input.Paid,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if o.SellDate.IsZero() {
		o.SellDate = now
	}
	if o.Paid {
		t := now
		o.PaymentDate = &t
	}
	// Default the price from the item's sale price; the cost is never used
	// as a default here.
	if o.Price.LessThanOrEqual(decimal.Zero) && it.SalePrice.Valid {
		o.Price = it.SalePrice.Decimal
	}

	id, err := uc.orders.Add(ctx, o)
	if err != nil {
		return nil, err
	}

	it.AllocatedQty += o.Qty
	it.UpdatedAt = now
	if err := uc.items.Update(ctx, it); err != nil {
		return nil, err
	}

	uc.logger.Info("order created",
		zap.Int64("order_id", id),
		zap.Int64("item_id", it.ID),
		zap.Int("qty", o.Qty))
	return o, nil
}

// UpdateOrder re-stamps the modified time and persists the new field values
// as-is. It does NOT reconcile inventory allocation: changing Qty or ItemID
// after creation leaves the item's allocated count stale. Known limitation;
// callers who change those fields should delete and recreate instead.
func (uc *orderUseCase) UpdateOrder(ctx context.Context, input *dto.UpdateOrderInput) (*model.Order, error) {
	if input.Qty <= 0 {
		return nil, apperr.Validation("qty", "must be greater than zero")
	}

	o, err := uc.orders.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperr.NotFound("order", input.ID)
	}

	o.CustomerName = input.CustomerName
	o.ItemID = input.ItemID
	o.SellDate = input.SellDate
	o.Price = input.Price
	o.Qty = input.Qty
	o.UpdatedAt = uc.now()

	if err := uc.orders.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// MarkAsDelivered flips the delivery flag and consumes the stock: both the
// allocated and current quantities drop by the order quantity, clamped at
// zero so repeated or inconsistent data can never push stock negative.
func (uc *orderUseCase) MarkAsDelivered(ctx context.Context, id int64) (*model.Order, error) {
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperr.NotFound("order", id)
	}

	it, err := uc.items.GetByID(ctx, o.ItemID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, apperr.NotFound("item", o.ItemID)
	}

	now := uc.now()

	o.Delivered = true
	if o.DeliveryDate == nil {
		t := now
		o.DeliveryDate = &t
	}
	o.UpdatedAt = now
	if err := uc.orders.Update(ctx, o); err != nil {
		return nil, err
	}

	it.AllocatedQty = max(0, it.AllocatedQty-o.Qty)
	it.CurrentQty = max(0, it.CurrentQty-o.Qty)
	it.UpdatedAt = now
	if err := uc.items.Update(ctx, it); err != nil {
		return nil, err
	}

	uc.logger.Info("order delivered", zap.Int64("order_id", id), zap.Int64("item_id", it.ID))
	return o, nil
}

func (uc *orderUseCase) MarkAsPaid(ctx context.Context, id int64) (*model.Order, error) {
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperr.NotFound("order", id)
	}

	now := uc.now()

	o.Paid = true
	if o.PaymentDate == nil {
		t := now
		o.PaymentDate = &t
	}
	o.UpdatedAt = now

	if err := uc.orders.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// DeleteOrder is an idempotent delete: a missing order is a successful no-op.
// An undelivered order gives its allocation back before the record goes; a
// delivered one already consumed the stock, so nothing is touched.
func (uc *orderUseCase) DeleteOrder(ctx context.Context, id int64) error {
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if o == nil {
		return nil
	}

	it, err := uc.items.GetByID(ctx, o.ItemID)
	if err != nil {
		return err
	}
	if it != nil && !o.Delivered {
		it.AllocatedQty = max(0, it.AllocatedQty-o.Qty)
		it.UpdatedAt = uc.now()
		if err := uc.items.Update(ctx, it); err != nil {
			return err
		}
	}

	return uc.orders.Delete(ctx, id)
}

func (uc *orderUseCase) SearchByCustomer(ctx context.Context, customerName string) ([]*model.Order, error) {
	needle := strings.ToLower(customerName)
	return uc.orders.Query(ctx, func(o *model.Order) bool {
		return strings.Contains(strings.ToLower(o.CustomerName), needle)
	})
}

func (uc *orderUseCase) OrdersByDateRange(ctx context.Context, start, end time.Time) ([]*model.Order, error) {
	return uc.orders.Query(ctx, func(o *model.Order) bool {
		return !o.SellDate.Before(start) && !o.SellDate.After(end)
	})
}

// PendingDeliveries are undelivered orders whose sell date has arrived.
func (uc *orderUseCase) PendingDeliveries(ctx context.Context) ([]*model.Order, error) {
	now := uc.now()
	return uc.orders.Query(ctx, func(o *model.Order) bool {
		return !o.Delivered && !o.SellDate.After(now)
	})
}

func (uc *orderUseCase) UnpaidOrders(ctx context.Context) ([]*model.Order, error) {
	return uc.orders.Query(ctx, func(o *model.Order) bool {
		return !o.Paid
	})
}
