package services_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"ECommerceAPI/internal/apperr"
	"ECommerceAPI/internal/model"
	"ECommerceAPI/internal/repository/memstore"
	"ECommerceAPI/internal/schema"
	"ECommerceAPI/internal/services"
)

type fixture struct {
	store     *memstore.Store
	hook      *test.Hook
	customers *services.CustomerService
	accounts  *services.CustomerAccountService
	products  *services.ProductService
	orders    *services.OrderService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log, hook := test.NewNullLogger()
	store := memstore.New()
	return &fixture{
		store:     store,
		hook:      hook,
		customers: services.NewCustomerService(store, log),
		accounts:  services.NewCustomerAccountService(store, bcrypt.MinCost, log),
		products:  services.NewProductService(store, log),
		orders:    services.NewOrderService(store, log),
	}
}

func (f *fixture) customer(t *testing.T, name string) int64 {
	t.Helper()
	id, err := f.customers.Create(context.Background(), schema.Payload{"name": name})
	require.NoError(t, err)
	return id
}

func (f *fixture) product(t *testing.T, name string, price float64) int64 {
	t.Helper()
	id, err := f.products.Create(context.Background(), schema.Payload{"name": name, "price": price})
	require.NoError(t, err)
	return id
}

func fields(t *testing.T, err error) map[string][]string {
	t.Helper()
	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Fields
}

func TestCustomerCreateThenGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id, err := f.customers.Create(ctx, schema.Payload{
		"name":  "Ada Lovelace",
		"email": "ada@example.com",
		"phone": "555-0100",
	})
	require.NoError(t, err)

	got, err := f.customers.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got.Name)
	require.NotNil(t, got.Email)
	assert.Equal(t, "ada@example.com", *got.Email)
	require.NotNil(t, got.Phone)
	assert.Equal(t, "555-0100", *got.Phone)

	byEmail, err := f.customers.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, got, byEmail)

	none, err := f.customers.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestCustomerCreateMissingName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.customer(t, "Existing")

	_, err := f.customers.Create(ctx, schema.Payload{"email": "x@example.com"})
	assert.Equal(t, map[string][]string{"name": {schema.MsgMissing}}, fields(t, err))
	assert.Equal(t, apperr.ClassValidation, apperr.Classify(err))

	all, err := f.customers.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCustomerUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.customer(t, "Before")

	require.NoError(t, f.customers.Update(ctx, id, schema.Payload{"name": "After"}))
	got, err := f.customers.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "After", got.Name)

	err = f.customers.Update(ctx, id, schema.Payload{"name": ""})
	assert.Contains(t, fields(t, err), "name")
}

func TestUpdateUnknownIDIsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cid := f.customer(t, "Owner")
	pid := f.product(t, "Pen", 1.5)

	tests := []struct {
		name string
		call func() error
	}{
		{"customer", func() error {
			return f.customers.Update(ctx, 999, schema.Payload{"name": "x"})
		}},
		{"customer account", func() error {
			return f.accounts.Update(ctx, 999, schema.Payload{"username": "u", "password": "p", "customer_id": cid})
		}},
		{"product", func() error {
			return f.products.Update(ctx, 999, schema.Payload{"name": "x", "price": 1})
		}},
		{"order", func() error {
			return f.orders.Update(ctx, 999, schema.Payload{"customer_id": cid, "product_ids": []any{pid}})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			assert.ErrorIs(t, err, apperr.ErrNotFound)
		})
	}
}

func TestUpdateUnknownIDBeatsValidation(t *testing.T) {
	f := newFixture(t)
	err := f.products.Update(context.Background(), 42, schema.Payload{})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCustomerDeleteWhileReferenced(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cid := f.customer(t, "Owner")
	_, err := f.accounts.Create(ctx, schema.Payload{"username": "owner", "password": "secret", "customer_id": cid})
	require.NoError(t, err)

	err = f.customers.Delete(ctx, cid)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = f.customers.GetByID(ctx, cid)
	assert.NoError(t, err)

	assert.ErrorIs(t, f.customers.Delete(ctx, 777), apperr.ErrNotFound)
}

func TestCustomerAccountLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cid := f.customer(t, "Grace")

	id, err := f.accounts.Create(ctx, schema.Payload{"username": "grace", "password": "hopper", "customer_id": cid})
	require.NoError(t, err)

	detail, err := f.accounts.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Grace", detail.Customer.Name)
	assert.Equal(t, "grace", detail.CustomerAccount.Username)
	assert.NotEqual(t, "hopper", detail.CustomerAccount.PasswordHash)
	assert.True(t, services.CheckPassword(detail.CustomerAccount, "hopper"))
	assert.False(t, services.CheckPassword(detail.CustomerAccount, "wrong"))

	raw, err := json.Marshal(detail)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")

	require.NoError(t, f.accounts.Update(ctx, id, schema.Payload{"username": "grace2", "password": "cobol", "customer_id": cid}))
	detail, err = f.accounts.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "grace2", detail.CustomerAccount.Username)
	assert.True(t, services.CheckPassword(detail.CustomerAccount, "cobol"))

	require.NoError(t, f.accounts.Delete(ctx, id))
	_, err = f.accounts.GetByID(ctx, id)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCustomerAccountDuplicateUsername(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cid := f.customer(t, "Owner")
	payload := schema.Payload{"username": "taken", "password": "secret", "customer_id": cid}

	_, err := f.accounts.Create(ctx, payload)
	require.NoError(t, err)
	_, err = f.accounts.Create(ctx, payload)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	all, err := f.accounts.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCustomerAccountUnknownCustomer(t *testing.T) {
	f := newFixture(t)
	_, err := f.accounts.Create(context.Background(), schema.Payload{"username": "u", "password": "p", "customer_id": 5})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCustomerAccountDanglingOwnerIsIntegrityFault(t *testing.T) {
	f := newFixture(t)
	f.store.Load(memstore.Snapshot{
		CustomerAccounts: []model.CustomerAccount{{ID: 1, Username: "orphan", PasswordHash: "x", CustomerID: 9}},
	})

	_, err := f.accounts.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, apperr.ErrIntegrity)
	assert.Equal(t, apperr.ClassIntegrity, apperr.Classify(err))

	entry := f.hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.EqualValues(t, 9, entry.Data["customer_id"])
}

func TestProductLookups(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.product(t, "Notebook", 3.25)

	got, err := f.products.GetByName(ctx, "Notebook")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, 3.25, got.Price)

	miss, err := f.products.GetByName(ctx, "notebook")
	require.NoError(t, err)
	assert.Nil(t, miss)

	_, err = f.products.Create(ctx, schema.Payload{"name": "Free", "price": -1})
	assert.Contains(t, fields(t, err), "price")
}

func TestOrderCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cid := f.customer(t, "Buyer")
	p1 := f.product(t, "A", 1)
	p2 := f.product(t, "B", 2)

	id, err := f.orders.Create(ctx, schema.Payload{"customer_id": cid, "product_ids": []any{p2, p1, p2}})
	require.NoError(t, err)

	o, err := f.orders.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, cid, o.CustomerID)
	assert.Equal(t, []int64{p1, p2}, o.ProductIDs)
	assert.False(t, o.Delivered)
	assert.Equal(t, o.OrderDate.Add(model.DeliveryWindow), o.DeliveryDate)
	assert.WithinDuration(t, time.Now(), o.OrderDate, time.Minute)
}

func TestOrderCreateLegacySingleProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cid := f.customer(t, "Buyer")
	pid := f.product(t, "A", 1)

	id, err := f.orders.Create(ctx, schema.Payload{"customer_id": cid, "product_id": pid})
	require.NoError(t, err)
	o, err := f.orders.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []int64{pid}, o.ProductIDs)
}

func TestOrderCreateUnknownReferencesWriteNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cid := f.customer(t, "Buyer")
	pid := f.product(t, "A", 1)

	_, err := f.orders.Create(ctx, schema.Payload{"customer_id": cid, "product_ids": []any{pid, 404}})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = f.orders.Create(ctx, schema.Payload{"customer_id": 404, "product_ids": []any{pid}})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	assert.Empty(t, f.store.Snapshot().Orders)
}

func TestOrderUpdateKeepsDates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cid := f.customer(t, "Buyer")
	other := f.customer(t, "Other")
	p1 := f.product(t, "A", 1)
	p2 := f.product(t, "B", 2)

	id, err := f.orders.Create(ctx, schema.Payload{"customer_id": cid, "product_ids": []any{p1}})
	require.NoError(t, err)
	before, err := f.orders.GetByID(ctx, id)
	require.NoError(t, err)

	require.NoError(t, f.orders.Update(ctx, id, schema.Payload{"customer_id": other, "product_ids": []any{p2}}))
	after, err := f.orders.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, other, after.CustomerID)
	assert.Equal(t, []int64{p2}, after.ProductIDs)
	assert.Equal(t, before.OrderDate, after.OrderDate)
	assert.Equal(t, before.DeliveryDate, after.DeliveryDate)

	err = f.orders.Update(ctx, id, schema.Payload{"customer_id": other, "product_ids": []any{999}})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	unchanged, err := f.orders.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []int64{p2}, unchanged.ProductIDs)
}

func TestOrderDeliveredAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cid := f.customer(t, "Buyer")
	pid := f.product(t, "A", 1)
	id, err := f.orders.Create(ctx, schema.Payload{"customer_id": cid, "product_ids": []any{pid}})
	require.NoError(t, err)

	assert.ErrorIs(t, f.products.Delete(ctx, pid), apperr.ErrConflict)

	require.NoError(t, f.orders.MarkDelivered(ctx, id))
	o, err := f.orders.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, o.Delivered)
	assert.ErrorIs(t, f.orders.MarkDelivered(ctx, id), apperr.ErrConflict)

	require.NoError(t, f.orders.Delete(ctx, id))
	assert.ErrorIs(t, f.orders.Delete(ctx, id), apperr.ErrNotFound)
	assert.NoError(t, f.products.Delete(ctx, pid))
	assert.NoError(t, f.customers.Delete(ctx, cid))
}

func TestCancelledContextIsUnavailable(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.products.List(ctx)
	assert.ErrorIs(t, err, apperr.ErrUnavailable)
	_, err = f.customers.Create(ctx, schema.Payload{"name": "late"})
	assert.ErrorIs(t, err, apperr.ErrUnavailable)
}
