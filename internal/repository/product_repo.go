package repository

import (
	"context"
	"errors"
	"fmt"

	"ECommerceAPI/internal/apperr"
	"ECommerceAPI/internal/model"

	"github.com/jackc/pgx/v5"
)

type ProductRepository struct {
	DB querier
}

func NewProductRepository(db querier) *ProductRepository {
	return &ProductRepository{DB: db}
}

func (r *ProductRepository) List(ctx context.Context) ([]model.Product, error) {
	query := `SELECT id, name, price FROM products ORDER BY id`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, translate(err, nil)
	}
	defer rows.Close()

	list := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price); err != nil {
			return nil, translate(err, nil)
		}
		list = append(list, p)
	}
	return list, translate(rows.Err(), nil)
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	query := `SELECT id, name, price FROM products WHERE id=$1`
	if err := r.DB.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Price); err != nil {
		return nil, fmt.Errorf("product %d: %w", id, translate(err, nil))
	}
	return &p, nil
}

// GetByName returns the first product whose name matches exactly, or nil.
func (r *ProductRepository) GetByName(ctx context.Context, name string) (*model.Product, error) {
	var p model.Product
	query := `SELECT id, name, price FROM products WHERE name=$1 ORDER BY id LIMIT 1`
	err := r.DB.QueryRow(ctx, query, name).Scan(&p.ID, &p.Name, &p.Price)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, translate(err, nil)
	}
	return &p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *model.Product) (int64, error) {
	var id int64
	query := `INSERT INTO products (name, price) VALUES ($1, $2) RETURNING id`
	if err := r.DB.QueryRow(ctx, query, p.Name, p.Price).Scan(&id); err != nil {
		return 0, translate(err, nil)
	}
	return id, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *model.Product) error {
	query := `UPDATE products SET name=$1, price=$2 WHERE id=$3`
	tag, err := r.DB.Exec(ctx, query, p.Name, p.Price, p.ID)
	if err != nil {
		return translate(err, nil)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %d: %w", p.ID, apperr.ErrNotFound)
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM products WHERE id=$1`
	tag, err := r.DB.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, translate(err, apperr.ErrConflict))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}
