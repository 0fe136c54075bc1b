package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/salestracker/salestracker-server/internal/model"
)

// PGOrderStore is the Postgres RecordStore for orders.
type PGOrderStore struct {
	DB *sqlx.DB
}

var _ RecordStore[*model.Order] = (*PGOrderStore)(nil)

func NewPGOrderStore(db *sqlx.DB) *PGOrderStore {
	return &PGOrderStore{DB: db}
}

func (s *PGOrderStore) GetAll(ctx context.Context) ([]*model.Order, error) {
	orders := []*model.Order{}
	query := `SELECT * FROM orders ORDER BY order_id`
	if err := s.DB.SelectContext(ctx, &orders, query); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *PGOrderStore) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	var order model.Order
	query := `SELECT * FROM orders WHERE order_id = $1 LIMIT 1`
	err := s.DB.GetContext(ctx, &order, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (s *PGOrderStore) Add(ctx context.Context, order *model.Order) (int64, error) {
	query := `
        INSERT INTO orders (
            customer_name, item_id, sell_date, price, qty, paid, delivered,
            payment_date, delivery_date, created_at, updated_at
        )
        VALUES (
            :customer_name, :item_id, :sell_date, :price, :qty, :paid, :delivered,
            :payment_date, :delivery_date, :created_at, :updated_at
        )
        RETURNING order_id
    `
	rows, err := s.DB.NamedQueryContext(ctx, query, order)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var id int64
	if rows.Next() {
		if err := rows.Scan(&id); err != nil {
			return 0, err
		}
	}
	order.ID = id
	return id, nil
}

func (s *PGOrderStore) Update(ctx context.Context, order *model.Order) error {
	query := `
        UPDATE orders SET
            customer_name = :customer_name, item_id = :item_id, sell_date = :sell_date,
            price = :price, qty = :qty, paid = :paid, delivered = :delivered,
            payment_date = :payment_date, delivery_date = :delivery_date,
            updated_at = :updated_at
        WHERE order_id = :order_id
    `
	_, err := s.DB.NamedExecContext(ctx, query, order)
	return err
}

func (s *PGOrderStore) Delete(ctx context.Context, id int64) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM orders WHERE order_id = $1`, id)
	return err
}

// Query loads all rows and filters in memory, same trade-off as the item store.
func (s *PGOrderStore) Query(ctx context.Context, predicate func(*model.Order) bool) ([]*model.Order, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*model.Order, 0)
	for _, order := range all {
		if predicate(order) {
			out = append(out, order)
		}
	}
	return out, nil
}
