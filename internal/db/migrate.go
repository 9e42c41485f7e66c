package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is applied idempotently at startup. Deleting a customer or product
// that is still referenced is rejected by the RESTRICT foreign keys; an
// order's association rows are removed with it.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id    BIGSERIAL PRIMARY KEY,
		name  VARCHAR(255) NOT NULL CHECK (name <> ''),
		email VARCHAR(320),
		phone VARCHAR(15)
	)`,
	`CREATE INDEX IF NOT EXISTS customers_email_idx ON customers (email)`,
	`CREATE TABLE IF NOT EXISTS customer_accounts (
		id            BIGSERIAL PRIMARY KEY,
		username      VARCHAR(255) NOT NULL UNIQUE CHECK (username <> ''),
		password_hash VARCHAR(255) NOT NULL,
		customer_id   BIGINT NOT NULL REFERENCES customers (id) ON DELETE RESTRICT
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id    BIGSERIAL PRIMARY KEY,
		name  VARCHAR(255) NOT NULL CHECK (name <> ''),
		price DOUBLE PRECISION NOT NULL CHECK (price >= 0)
	)`,
	`CREATE INDEX IF NOT EXISTS products_name_idx ON products (name)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id            BIGSERIAL PRIMARY KEY,
		order_date    TIMESTAMPTZ NOT NULL,
		delivery_date TIMESTAMPTZ NOT NULL,
		delivered     BOOLEAN NOT NULL DEFAULT FALSE,
		customer_id   BIGINT NOT NULL REFERENCES customers (id) ON DELETE RESTRICT
	)`,
	`CREATE TABLE IF NOT EXISTS order_product (
		order_id   BIGINT NOT NULL REFERENCES orders (id) ON DELETE CASCADE,
		product_id BIGINT NOT NULL REFERENCES products (id) ON DELETE RESTRICT,
		PRIMARY KEY (order_id, product_id)
	)`,
}

// Migrate creates the tables and indexes that do not exist yet, in one
// transaction.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer tx.Rollback(ctx)

	for i, stmt := range schema {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration statement %d: %w", i, err)
		}
	}
	return tx.Commit(ctx)
}
