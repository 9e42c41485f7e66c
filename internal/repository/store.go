package repository

import (
	"context"

	"ECommerceAPI/internal/model"
)

// Store hands out transaction scopes. Everything done through the Tx passed
// to fn commits together when fn returns nil and is discarded otherwise.
type Store interface {
	// Read runs fn in a consistent read-only snapshot.
	Read(ctx context.Context, fn func(Tx) error) error
	// Write runs fn in a single atomic transaction.
	Write(ctx context.Context, fn func(Tx) error) error
	Ping(ctx context.Context) error
}

// Tx exposes the per-table repositories bound to one transaction.
type Tx interface {
	Customers() Customers
	CustomerAccounts() CustomerAccounts
	Products() Products
	Orders() Orders
}

// Lookups that address a row by id return apperr.ErrNotFound when it is
// absent. GetByEmail and GetByName return nil, nil instead.
type Customers interface {
	List(ctx context.Context) ([]model.Customer, error)
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
	GetByEmail(ctx context.Context, email string) (*model.Customer, error)
	Create(ctx context.Context, c *model.Customer) (int64, error)
	Update(ctx context.Context, c *model.Customer) error
	// Delete fails with apperr.ErrConflict while accounts or orders
	// reference the customer.
	Delete(ctx context.Context, id int64) error
}

type CustomerAccounts interface {
	List(ctx context.Context) ([]model.CustomerAccount, error)
	GetByID(ctx context.Context, id int64) (*model.CustomerAccount, error)
	// Create and Update fail with apperr.ErrConflict on a taken username.
	Create(ctx context.Context, a *model.CustomerAccount) (int64, error)
	Update(ctx context.Context, a *model.CustomerAccount) error
	Delete(ctx context.Context, id int64) error
}

type Products interface {
	List(ctx context.Context) ([]model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	GetByName(ctx context.Context, name string) (*model.Product, error)
	Create(ctx context.Context, p *model.Product) (int64, error)
	Update(ctx context.Context, p *model.Product) error
	// Delete fails with apperr.ErrConflict while orders reference the product.
	Delete(ctx context.Context, id int64) error
}

type Orders interface {
	List(ctx context.Context) ([]model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	// Create inserts the order row and one order_product row per product.
	Create(ctx context.Context, o *model.Order) (int64, error)
	// Update replaces customer_id and the product set.
	Update(ctx context.Context, o *model.Order) error
	SetDelivered(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}
