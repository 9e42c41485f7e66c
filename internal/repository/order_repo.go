package repository

import (
	"context"
	"fmt"

	"ECommerceAPI/internal/apperr"
	"ECommerceAPI/internal/model"

	"github.com/jackc/pgx/v5"
)

type OrderRepository struct {
	DB querier
}

func NewOrderRepository(db querier) *OrderRepository {
	return &OrderRepository{DB: db}
}

// orderSelect joins every order with its sorted product ids.
const orderSelect = `
	SELECT o.id, o.order_date, o.delivery_date, o.delivered, o.customer_id,
	       COALESCE(array_agg(op.product_id ORDER BY op.product_id)
	                FILTER (WHERE op.product_id IS NOT NULL), '{}')
	FROM orders o
	LEFT JOIN order_product op ON op.order_id = o.id
`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	if err := row.Scan(&o.ID, &o.OrderDate, &o.DeliveryDate, &o.Delivered, &o.CustomerID, &o.ProductIDs); err != nil {
		return nil, err
	}
	o.OrderDate = o.OrderDate.UTC()
	o.DeliveryDate = o.DeliveryDate.UTC()
	return &o, nil
}

func (r *OrderRepository) List(ctx context.Context) ([]model.Order, error) {
	rows, err := r.DB.Query(ctx, orderSelect+` GROUP BY o.id ORDER BY o.id`)
	if err != nil {
		return nil, translate(err, nil)
	}
	defer rows.Close()

	out := []model.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, translate(err, nil)
		}
		out = append(out, *o)
	}
	return out, translate(rows.Err(), nil)
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	o, err := scanOrder(r.DB.QueryRow(ctx, orderSelect+` WHERE o.id=$1 GROUP BY o.id`, id))
	if err != nil {
		return nil, fmt.Errorf("order %d: %w", id, translate(err, nil))
	}
	return o, nil
}

// Create inserts the order and its order_product rows. It must run inside a
// transaction so a failed association insert leaves no order behind.
func (r *OrderRepository) Create(ctx context.Context, o *model.Order) (int64, error) {
	var id int64
	query := `
		INSERT INTO orders (order_date, delivery_date, delivered, customer_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	if err := r.DB.QueryRow(ctx, query, o.OrderDate, o.DeliveryDate, o.Delivered, o.CustomerID).Scan(&id); err != nil {
		return 0, translate(err, apperr.ErrNotFound)
	}
	if err := r.addProducts(ctx, id, o.ProductIDs); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *OrderRepository) addProducts(ctx context.Context, orderID int64, productIDs []int64) error {
	query := `
		INSERT INTO order_product (order_id, product_id)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT DO NOTHING
	`
	_, err := r.DB.Exec(ctx, query, orderID, productIDs)
	return translate(err, apperr.ErrNotFound)
}

func (r *OrderRepository) Update(ctx context.Context, o *model.Order) error {
	query := `UPDATE orders SET customer_id=$1 WHERE id=$2`
	tag, err := r.DB.Exec(ctx, query, o.CustomerID, o.ID)
	if err != nil {
		return translate(err, apperr.ErrNotFound)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %d: %w", o.ID, apperr.ErrNotFound)
	}
	if _, err := r.DB.Exec(ctx, `DELETE FROM order_product WHERE order_id=$1`, o.ID); err != nil {
		return translate(err, nil)
	}
	return r.addProducts(ctx, o.ID, o.ProductIDs)
}

// SetDelivered moves a pending order to delivered. An order that is already
// delivered yields apperr.ErrConflict.
func (r *OrderRepository) SetDelivered(ctx context.Context, id int64) error {
	var delivered bool
	if err := r.DB.QueryRow(ctx, `SELECT delivered FROM orders WHERE id=$1 FOR UPDATE`, id).Scan(&delivered); err != nil {
		return fmt.Errorf("order %d: %w", id, translate(err, nil))
	}
	if delivered {
		return fmt.Errorf("order %d already delivered: %w", id, apperr.ErrConflict)
	}
	_, err := r.DB.Exec(ctx, `UPDATE orders SET delivered=true WHERE id=$1`, id)
	return translate(err, nil)
}

// Delete removes the order; order_product rows go with it through
// ON DELETE CASCADE.
func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return translate(err, nil)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}
