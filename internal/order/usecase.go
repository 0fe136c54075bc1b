package order

import (
	"context"
	"time"

	"github.com/salestracker/salestracker-server/internal/model"
	"github.com/salestracker/salestracker-server/internal/order/dto"
)

type UseCase interface {
	GetAllOrders(ctx context.Context) ([]*model.Order, error)
	GetOrder(ctx context.Context, id int64) (*model.Order, error)
	CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error)
	UpdateOrder(ctx context.Context, input *dto.UpdateOrderInput) (*model.Order, error)
	MarkAsDelivered(ctx context.Context, id int64) (*model.Order, error)
	MarkAsPaid(ctx context.Context, id int64) (*model.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
	SearchByCustomer(ctx context.Context, customerName string) ([]*model.Order, error)
	OrdersByDateRange(ctx context.Context, start, end time.Time) ([]*model.Order, error)
	PendingDeliveries(ctx context.Context) ([]*model.Order, error)
	UnpaidOrders(ctx context.Context) ([]*model.Order, error)
}
