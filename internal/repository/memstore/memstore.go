// Package memstore is an in-process repository.Store. It enforces the same
// keys and constraints as the Postgres schema and is used by tests and by
// STORE_DRIVER=memory.
package memstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"ECommerceAPI/internal/apperr"
	"ECommerceAPI/internal/model"
	"ECommerceAPI/internal/repository"
)

var errReadOnly = errors.New("write in read-only transaction")

type state struct {
	customers map[int64]model.Customer
	accounts  map[int64]model.CustomerAccount
	products  map[int64]model.Product
	orders    map[int64]model.Order

	lastCustomer, lastAccount, lastProduct, lastOrder int64
}

func newState() *state {
	return &state{
		customers: map[int64]model.Customer{},
		accounts:  map[int64]model.CustomerAccount{},
		products:  map[int64]model.Product{},
		orders:    map[int64]model.Order{},
	}
}

func (s *state) clone() *state {
	c := *s
	c.customers = cloneMap(s.customers, copyCustomer)
	c.accounts = cloneMap(s.accounts, func(a model.CustomerAccount) model.CustomerAccount { return a })
	c.products = cloneMap(s.products, func(p model.Product) model.Product { return p })
	c.orders = cloneMap(s.orders, copyOrder)
	return &c
}

func cloneMap[V any](m map[int64]V, cp func(V) V) map[int64]V {
	out := make(map[int64]V, len(m))
	for k, v := range m {
		out[k] = cp(v)
	}
	return out
}

func copyCustomer(c model.Customer) model.Customer {
	c.Email = copyStr(c.Email)
	c.Phone = copyStr(c.Phone)
	return c
}

func copyStr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func copyOrder(o model.Order) model.Order {
	o.ProductIDs = append([]int64{}, o.ProductIDs...)
	return o
}

// sortedValues returns the map values in ascending id order.
func sortedValues[V any](m map[int64]V, cp func(V) V) []V {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]V, 0, len(ids))
	for _, id := range ids {
		out = append(out, cp(m[id]))
	}
	return out
}

// Store serializes writers behind one lock. A write works on a copy of the
// state that replaces the live state only when fn succeeds.
type Store struct {
	mu sync.RWMutex
	st *state
}

var _ repository.Store = (*Store)(nil)

func New() *Store {
	return &Store{st: newState()}
}

func (s *Store) Read(ctx context.Context, fn func(repository.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", apperr.ErrUnavailable, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&tx{st: s.st, readOnly: true})
}

func (s *Store) Write(ctx context.Context, fn func(repository.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", apperr.ErrUnavailable, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(&tx{st: work}); err != nil {
		return err
	}
	s.st = work
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", apperr.ErrUnavailable, err)
	}
	return nil
}

// Snapshot is a full copy of the stored rows, ordered by id.
type Snapshot struct {
	Customers        []model.Customer
	CustomerAccounts []model.CustomerAccount
	Products         []model.Product
	Orders           []model.Order
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Customers:        sortedValues(s.st.customers, copyCustomer),
		CustomerAccounts: sortedValues(s.st.accounts, func(a model.CustomerAccount) model.CustomerAccount { return a }),
		Products:         sortedValues(s.st.products, func(p model.Product) model.Product { return p }),
		Orders:           sortedValues(s.st.orders, copyOrder),
	}
}

// Load replaces the stored rows with snap as given, without checking any
// constraint. New ids continue after the highest loaded id.
func (s *Store) Load(snap Snapshot) {
	st := newState()
	for _, c := range snap.Customers {
		st.customers[c.ID] = copyCustomer(c)
		st.lastCustomer = max(st.lastCustomer, c.ID)
	}
	for _, a := range snap.CustomerAccounts {
		st.accounts[a.ID] = a
		st.lastAccount = max(st.lastAccount, a.ID)
	}
	for _, p := range snap.Products {
		st.products[p.ID] = p
		st.lastProduct = max(st.lastProduct, p.ID)
	}
	for _, o := range snap.Orders {
		st.orders[o.ID] = copyOrder(o)
		st.lastOrder = max(st.lastOrder, o.ID)
	}

	s.mu.Lock()
	s.st = st
	s.mu.Unlock()
}

type tx struct {
	st       *state
	readOnly bool
}

func (t *tx) Customers() repository.Customers               { return customers{t} }
func (t *tx) CustomerAccounts() repository.CustomerAccounts { return accounts{t} }
func (t *tx) Products() repository.Products                 { return products{t} }
func (t *tx) Orders() repository.Orders                     { return orders{t} }

func (t *tx) writable() error {
	if t.readOnly {
		return errReadOnly
	}
	return nil
}
