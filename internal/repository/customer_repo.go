package repository

import (
	"context"
	"errors"
	"fmt"

	"ECommerceAPI/internal/apperr"
	"ECommerceAPI/internal/model"

	"github.com/jackc/pgx/v5"
)

type CustomerRepository struct {
	DB querier
}

func NewCustomerRepository(db querier) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

const customerColumns = `id, name, email, phone`

func scanCustomer(row pgx.Row) (*model.Customer, error) {
	var c model.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) List(ctx context.Context) ([]model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY id`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, translate(err, nil)
	}
	defer rows.Close()

	out := []model.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, translate(err, nil)
		}
		out = append(out, *c)
	}
	return out, translate(rows.Err(), nil)
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id=$1`
	c, err := scanCustomer(r.DB.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("customer %d: %w", id, translate(err, nil))
	}
	return c, nil
}

// GetByEmail returns the first customer with the given email, or nil when
// there is none.
func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE email=$1 ORDER BY id LIMIT 1`
	c, err := scanCustomer(r.DB.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, translate(err, nil)
	}
	return c, nil
}

func (r *CustomerRepository) Create(ctx context.Context, c *model.Customer) (int64, error) {
	var id int64
	query := `INSERT INTO customers (name, email, phone) VALUES ($1, $2, $3) RETURNING id`
	if err := r.DB.QueryRow(ctx, query, c.Name, c.Email, c.Phone).Scan(&id); err != nil {
		return 0, translate(err, nil)
	}
	return id, nil
}

func (r *CustomerRepository) Update(ctx context.Context, c *model.Customer) error {
	query := `UPDATE customers SET name=$1, email=$2, phone=$3 WHERE id=$4`
	tag, err := r.DB.Exec(ctx, query, c.Name, c.Email, c.Phone, c.ID)
	if err != nil {
		return translate(err, nil)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("customer %d: %w", c.ID, apperr.ErrNotFound)
	}
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM customers WHERE id=$1`
	tag, err := r.DB.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete customer %d: %w", id, translate(err, apperr.ErrConflict))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("customer %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}
