package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/salestracker/salestracker-server/internal/model"
)

// PGItemStore is the Postgres RecordStore for items.
type PGItemStore struct {
	DB *sqlx.DB
}

var _ RecordStore[*model.Item] = (*PGItemStore)(nil)

func NewPGItemStore(db *sqlx.DB) *PGItemStore {
	return &PGItemStore{DB: db}
}

func (s *PGItemStore) GetAll(ctx context.Context) ([]*model.Item, error) {
	items := []*model.Item{}
	query := `SELECT * FROM items ORDER BY item_id`
	if err := s.DB.SelectContext(ctx, &items, query); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *PGItemStore) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	var item model.Item
	query := `SELECT * FROM items WHERE item_id = $1 LIMIT 1`
	err := s.DB.GetContext(ctx, &item, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (s *PGItemStore) Add(ctx context.Context, item *model.Item) (int64, error) {
	query := `
        INSERT INTO items (
            name, description, sale_price, cost, current_qty, allocated_qty,
            created_at, updated_at
        )
        VALUES (
            :name, :description, :sale_price, :cost, :current_qty, :allocated_qty,
            :created_at, :updated_at
        )
        RETURNING item_id
    `
	rows, err := s.DB.NamedQueryContext(ctx, query, item)
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
	item.ID = id
	return id, nil
}

func (s *PGItemStore) Update(ctx context.Context, item *model.Item) error {
	query := `
        UPDATE items SET
            name = :name, description = :description, sale_price = :sale_price,
            cost = :cost, current_qty = :current_qty, allocated_qty = :allocated_qty,
            updated_at = :updated_at
        WHERE item_id = :item_id
    `
	// A vanished row updates zero rows; the contract treats that as success.
	_, err := s.DB.NamedExecContext(ctx, query, item)
	return err
}

func (s *PGItemStore) Delete(ctx context.Context, id int64) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM items WHERE item_id = $1`, id)
	return err
}

// Query loads all rows and filters in memory. Predicate pushdown would need a
// query builder per filter shape; at this record count the O(n) scan is fine.
func (s *PGItemStore) Query(ctx context.Context, predicate func(*model.Item) bool) ([]*model.Item, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*model.Item, 0)
	for _, item := range all {
		if predicate(item) {
			out = append(out, item)
		}
	}
	return out, nil
}
