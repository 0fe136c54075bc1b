package store

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// PostgresConfig holds the connection settings for the Postgres backend.
type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// NewPostgres opens and pings a pgx-backed sqlx connection pool.
func NewPostgres(cfg *PostgresConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

// Migrate creates the items and orders tables if they do not exist yet.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS items (
			item_id       BIGSERIAL PRIMARY KEY,
			name          TEXT NOT NULL,
			description   TEXT,
			sale_price    NUMERIC(12,2),
			cost          NUMERIC(12,2) NOT NULL,
			current_qty   INTEGER NOT NULL DEFAULT 0,
			allocated_qty INTEGER NOT NULL DEFAULT 0,
			created_at    TIMESTAMPTZ NOT NULL,
			updated_at    TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			order_id      BIGSERIAL PRIMARY KEY,
			customer_name TEXT NOT NULL,
			item_id       BIGINT NOT NULL,
			sell_date     TIMESTAMPTZ NOT NULL,
			price         NUMERIC(12,2) NOT NULL,
			qty           INTEGER NOT NULL,
			paid          BOOLEAN NOT NULL DEFAULT FALSE,
			delivered     BOOLEAN NOT NULL DEFAULT FALSE,
			payment_date  TIMESTAMPTZ,
			delivery_date TIMESTAMPTZ,
			created_at    TIMESTAMPTZ NOT NULL,
			updated_at    TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_item_id ON orders (item_id)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_sell_date ON orders (sell_date)`,
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
