package memstore

import (
	"context"
	"fmt"
	"sort"

	"ECommerceAPI/internal/apperr"
	"ECommerceAPI/internal/model"
)

type customers struct{ *tx }

func (r customers) List(context.Context) ([]model.Customer, error) {
	return sortedValues(r.st.customers, copyCustomer), nil
}

func (r customers) GetByID(_ context.Context, id int64) (*model.Customer, error) {
	c, ok := r.st.customers[id]
	if !ok {
		return nil, fmt.Errorf("customer %d: %w", id, apperr.ErrNotFound)
	}
	c = copyCustomer(c)
	return &c, nil
}

func (r customers) GetByEmail(_ context.Context, email string) (*model.Customer, error) {
	for _, c := range sortedValues(r.st.customers, copyCustomer) {
		if c.Email != nil && *c.Email == email {
			return &c, nil
		}
	}
	return nil, nil
}

func (r customers) Create(_ context.Context, c *model.Customer) (int64, error) {
	if err := r.writable(); err != nil {
		return 0, err
	}
	r.st.lastCustomer++
	row := copyCustomer(*c)
	row.ID = r.st.lastCustomer
	r.st.customers[row.ID] = row
	return row.ID, nil
}

func (r customers) Update(_ context.Context, c *model.Customer) error {
	if err := r.writable(); err != nil {
		return err
	}
	if _, ok := r.st.customers[c.ID]; !ok {
		return fmt.Errorf("customer %d: %w", c.ID, apperr.ErrNotFound)
	}
	r.st.customers[c.ID] = copyCustomer(*c)
	return nil
}

func (r customers) Delete(_ context.Context, id int64) error {
	if err := r.writable(); err != nil {
		return err
	}
	if _, ok := r.st.customers[id]; !ok {
		return fmt.Errorf("customer %d: %w", id, apperr.ErrNotFound)
	}
	for _, a := range r.st.accounts {
		if a.CustomerID == id {
			return fmt.Errorf("delete customer %d: account %d references it: %w", id, a.ID, apperr.ErrConflict)
		}
	}
	for _, o := range r.st.orders {
		if o.CustomerID == id {
			return fmt.Errorf("delete customer %d: order %d references it: %w", id, o.ID, apperr.ErrConflict)
		}
	}
	delete(r.st.customers, id)
	return nil
}

type accounts struct{ *tx }

func (r accounts) List(context.Context) ([]model.CustomerAccount, error) {
	return sortedValues(r.st.accounts, func(a model.CustomerAccount) model.CustomerAccount { return a }), nil
}

func (r accounts) GetByID(_ context.Context, id int64) (*model.CustomerAccount, error) {
	a, ok := r.st.accounts[id]
	if !ok {
		return nil, fmt.Errorf("customer account %d: %w", id, apperr.ErrNotFound)
	}
	return &a, nil
}

// check enforces the username unique key and the customer foreign key.
func (r accounts) check(a *model.CustomerAccount) error {
	for _, other := range r.st.accounts {
		if other.ID != a.ID && other.Username == a.Username {
			return fmt.Errorf("customer_accounts_username_key: %w", apperr.ErrConflict)
		}
	}
	if _, ok := r.st.customers[a.CustomerID]; !ok {
		return fmt.Errorf("customer_accounts_customer_id_fkey: customer %d: %w", a.CustomerID, apperr.ErrNotFound)
	}
	return nil
}

func (r accounts) Create(_ context.Context, a *model.CustomerAccount) (int64, error) {
	if err := r.writable(); err != nil {
		return 0, err
	}
	row := *a
	row.ID = 0
	if err := r.check(&row); err != nil {
		return 0, err
	}
	r.st.lastAccount++
	row.ID = r.st.lastAccount
	r.st.accounts[row.ID] = row
	return row.ID, nil
}

func (r accounts) Update(_ context.Context, a *model.CustomerAccount) error {
	if err := r.writable(); err != nil {
		return err
	}
	if _, ok := r.st.accounts[a.ID]; !ok {
		return fmt.Errorf("customer account %d: %w", a.ID, apperr.ErrNotFound)
	}
	if err := r.check(a); err != nil {
		return err
	}
	r.st.accounts[a.ID] = *a
	return nil
}

func (r accounts) Delete(_ context.Context, id int64) error {
	if err := r.writable(); err != nil {
		return err
	}
	if _, ok := r.st.accounts[id]; !ok {
		return fmt.Errorf("customer account %d: %w", id, apperr.ErrNotFound)
	}
	delete(r.st.accounts, id)
	return nil
}

type products struct{ *tx }

func (r products) List(context.Context) ([]model.Product, error) {
	return sortedValues(r.st.products, func(p model.Product) model.Product { return p }), nil
}

func (r products) GetByID(_ context.Context, id int64) (*model.Product, error) {
	p, ok := r.st.products[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, apperr.ErrNotFound)
	}
	return &p, nil
}

func (r products) GetByName(_ context.Context, name string) (*model.Product, error) {
	for _, p := range sortedValues(r.st.products, func(p model.Product) model.Product { return p }) {
		if p.Name == name {
			return &p, nil
		}
	}
	return nil, nil
}

func (r products) Create(_ context.Context, p *model.Product) (int64, error) {
	if err := r.writable(); err != nil {
		return 0, err
	}
	r.st.lastProduct++
	row := *p
	row.ID = r.st.lastProduct
	r.st.products[row.ID] = row
	return row.ID, nil
}

func (r products) Update(_ context.Context, p *model.Product) error {
	if err := r.writable(); err != nil {
		return err
	}
	if _, ok := r.st.products[p.ID]; !ok {
		return fmt.Errorf("product %d: %w", p.ID, apperr.ErrNotFound)
	}
	r.st.products[p.ID] = *p
	return nil
}

func (r products) Delete(_ context.Context, id int64) error {
	if err := r.writable(); err != nil {
		return err
	}
	if _, ok := r.st.products[id]; !ok {
		return fmt.Errorf("product %d: %w", id, apperr.ErrNotFound)
	}
	for _, o := range r.st.orders {
		for _, pid := range o.ProductIDs {
			if pid == id {
				return fmt.Errorf("delete product %d: order %d references it: %w", id, o.ID, apperr.ErrConflict)
			}
		}
	}
	delete(r.st.products, id)
	return nil
}

type orders struct{ *tx }

func (r orders) List(context.Context) ([]model.Order, error) {
	return sortedValues(r.st.orders, copyOrder), nil
}

func (r orders) GetByID(_ context.Context, id int64) (*model.Order, error) {
	o, ok := r.st.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %d: %w", id, apperr.ErrNotFound)
	}
	o = copyOrder(o)
	return &o, nil
}

// normalize enforces the customer and product foreign keys and stores the
// product set sorted and without repeats, as the composite key would.
func (r orders) normalize(o *model.Order) (model.Order, error) {
	if _, ok := r.st.customers[o.CustomerID]; !ok {
		return model.Order{}, fmt.Errorf("orders_customer_id_fkey: customer %d: %w", o.CustomerID, apperr.ErrNotFound)
	}
	row := copyOrder(*o)
	seen := map[int64]bool{}
	ids := row.ProductIDs[:0]
	for _, pid := range row.ProductIDs {
		if _, ok := r.st.products[pid]; !ok {
			return model.Order{}, fmt.Errorf("order_product_product_id_fkey: product %d: %w", pid, apperr.ErrNotFound)
		}
		if !seen[pid] {
			seen[pid] = true
			ids = append(ids, pid)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	row.ProductIDs = ids
	return row, nil
}

func (r orders) Create(_ context.Context, o *model.Order) (int64, error) {
	if err := r.writable(); err != nil {
		return 0, err
	}
	row, err := r.normalize(o)
	if err != nil {
		return 0, err
	}
	r.st.lastOrder++
	row.ID = r.st.lastOrder
	r.st.orders[row.ID] = row
	return row.ID, nil
}

func (r orders) Update(_ context.Context, o *model.Order) error {
	if err := r.writable(); err != nil {
		return err
	}
	current, ok := r.st.orders[o.ID]
	if !ok {
		return fmt.Errorf("order %d: %w", o.ID, apperr.ErrNotFound)
	}
	row, err := r.normalize(o)
	if err != nil {
		return err
	}
	current.CustomerID = row.CustomerID
	current.ProductIDs = row.ProductIDs
	r.st.orders[o.ID] = current
	return nil
}

func (r orders) SetDelivered(_ context.Context, id int64) error {
	if err := r.writable(); err != nil {
		return err
	}
	o, ok := r.st.orders[id]
	if !ok {
		return fmt.Errorf("order %d: %w", id, apperr.ErrNotFound)
	}
	if o.Delivered {
		return fmt.Errorf("order %d already delivered: %w", id, apperr.ErrConflict)
	}
	o.Delivered = true
	r.st.orders[id] = o
	return nil
}

func (r orders) Delete(_ context.Context, id int64) error {
	if err := r.writable(); err != nil {
		return err
	}
	if _, ok := r.st.orders[id]; !ok {
		return fmt.Errorf("order %d: %w", id, apperr.ErrNotFound)
	}
	delete(r.st.orders, id)
	return nil
}
