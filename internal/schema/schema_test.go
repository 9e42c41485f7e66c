package schema_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ECommerceAPI/internal/apperr"
	"ECommerceAPI/internal/model"
	"ECommerceAPI/internal/schema"
)

func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	return ve.Fields
}

func strPtr(s string) *string { return &s }

func TestValidateCustomer(t *testing.T) {
	t.Run("valid with extras ignored", func(t *testing.T) {
		c, err := schema.ValidateCustomer(schema.Payload{
			"name":  "Ada",
			"email": "ada@example.com",
			"phone": "555-0100",
			"vip":   true,
		})
		require.NoError(t, err)
		assert.Equal(t, model.Customer{Name: "Ada", Email: strPtr("ada@example.com"), Phone: strPtr("555-0100")}, c)
	})

	t.Run("optional fields may be null or absent", func(t *testing.T) {
		c, err := schema.ValidateCustomer(schema.Payload{"name": "Ada", "email": nil})
		require.NoError(t, err)
		assert.Nil(t, c.Email)
		assert.Nil(t, c.Phone)
	})

	t.Run("missing name names exactly that field", func(t *testing.T) {
		_, err := schema.ValidateCustomer(schema.Payload{"email": "a@b.c"})
		assert.Equal(t, map[string][]string{"name": {schema.MsgMissing}}, fieldErrors(t, err))
	})

	t.Run("null counts as missing", func(t *testing.T) {
		_, err := schema.ValidateCustomer(schema.Payload{"name": nil})
		assert.Equal(t, map[string][]string{"name": {schema.MsgMissing}}, fieldErrors(t, err))
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := schema.ValidateCustomer(schema.Payload{"name": ""})
		assert.Equal(t, map[string][]string{"name": {"shorter than minimum length 1"}}, fieldErrors(t, err))
	})

	t.Run("all violations collected", func(t *testing.T) {
		_, err := schema.ValidateCustomer(schema.Payload{"name": 12, "email": false, "phone": []any{}})
		assert.Equal(t, map[string][]string{
			"name":  {schema.MsgWrongType},
			"email": {schema.MsgWrongType},
			"phone": {schema.MsgWrongType},
		}, fieldErrors(t, err))
	})
}

func TestValidateProduct(t *testing.T) {
	tests := []struct {
		name    string
		payload schema.Payload
		want    model.Product
		errs    map[string][]string
	}{
		{
			name:    "valid",
			payload: schema.Payload{"name": "Widget", "price": 9.5},
			want:    model.Product{Name: "Widget", Price: 9.5},
		},
		{
			name:    "zero price allowed",
			payload: schema.Payload{"name": "Freebie", "price": float64(0)},
			want:    model.Product{Name: "Freebie", Price: 0},
		},
		{
			name:    "numeric string coerced",
			payload: schema.Payload{"name": "Widget", "price": "12.25"},
			want:    model.Product{Name: "Widget", Price: 12.25},
		},
		{
			name:    "negative price",
			payload: schema.Payload{"name": "Widget", "price": -1.0},
			errs:    map[string][]string{"price": {"must be greater than or equal to 0"}},
		},
		{
			name:    "both missing",
			payload: schema.Payload{},
			errs:    map[string][]string{"name": {schema.MsgMissing}, "price": {schema.MsgMissing}},
		},
		{
			name:    "price not a number",
			payload: schema.Payload{"name": "Widget", "price": "cheap"},
			errs:    map[string][]string{"price": {schema.MsgWrongType}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := schema.ValidateProduct(tc.payload)
			if tc.errs != nil {
				assert.Equal(t, tc.errs, fieldErrors(t, err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestValidateCustomerAccount(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		in, err := schema.ValidateCustomerAccount(schema.Payload{"username": "ada", "password": "s3cret", "customer_id": float64(4)})
		require.NoError(t, err)
		assert.Equal(t, model.CustomerAccountInput{Username: "ada", Password: "s3cret", CustomerID: 4}, in)
	})

	t.Run("customer_id must be an integer", func(t *testing.T) {
		_, err := schema.ValidateCustomerAccount(schema.Payload{"username": "ada", "password": "x", "customer_id": 1.5})
		assert.Equal(t, map[string][]string{"customer_id": {schema.MsgWrongType}}, fieldErrors(t, err))
	})

	t.Run("integer string coerced", func(t *testing.T) {
		in, err := schema.ValidateCustomerAccount(schema.Payload{"username": "ada", "password": "x", "customer_id": "7"})
		require.NoError(t, err)
		assert.EqualValues(t, 7, in.CustomerID)
	})

	t.Run("empty credentials", func(t *testing.T) {
		_, err := schema.ValidateCustomerAccount(schema.Payload{"username": "", "password": "", "customer_id": float64(1)})
		assert.Equal(t, map[string][]string{
			"username": {"shorter than minimum length 1"},
			"password": {"shorter than minimum length 1"},
		}, fieldErrors(t, err))
	})
}

func TestValidateOrder(t *testing.T) {
	t.Run("product list", func(t *testing.T) {
		in, err := schema.ValidateOrder(schema.Payload{"customer_id": float64(5), "product_ids": []any{float64(9), float64(3), float64(9)}})
		require.NoError(t, err)
		assert.Equal(t, model.OrderInput{CustomerID: 5, ProductIDs: []int64{9, 3}}, in)
	})

	t.Run("single product_id accepted", func(t *testing.T) {
		in, err := schema.ValidateOrder(schema.Payload{"customer_id": float64(5), "product_id": float64(9)})
		require.NoError(t, err)
		assert.Equal(t, []int64{9}, in.ProductIDs)
	})

	t.Run("missing everything", func(t *testing.T) {
		_, err := schema.ValidateOrder(schema.Payload{})
		assert.Equal(t, map[string][]string{
			"customer_id": {schema.MsgMissing},
			"product_ids": {schema.MsgMissing},
		}, fieldErrors(t, err))
	})

	t.Run("empty product list", func(t *testing.T) {
		_, err := schema.ValidateOrder(schema.Payload{"customer_id": float64(1), "product_ids": []any{}})
		assert.Equal(t, map[string][]string{"product_ids": {"must contain at least 1 items"}}, fieldErrors(t, err))
	})

	t.Run("non integer in list", func(t *testing.T) {
		_, err := schema.ValidateOrder(schema.Payload{"customer_id": float64(1), "product_ids": []any{"x"}})
		assert.Equal(t, map[string][]string{"product_ids": {schema.MsgWrongType}}, fieldErrors(t, err))
	})

	t.Run("wrong type single product_id", func(t *testing.T) {
		_, err := schema.ValidateOrder(schema.Payload{"customer_id": float64(1), "product_id": "nine"})
		assert.Equal(t, map[string][]string{"product_id": {schema.MsgWrongType}}, fieldErrors(t, err))
	})
}

// roundTrip serializes v as the boundary does and decodes it back into a
// generic payload.
func roundTrip(t *testing.T, v any) schema.Payload {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	var p schema.Payload
	require.NoError(t, json.Unmarshal(b, &p))
	return p
}

func TestSerializeValidateRoundTrip(t *testing.T) {
	t.Run("customer", func(t *testing.T) {
		in := model.Customer{ID: 3, Name: "Ada", Email: strPtr("ada@example.com")}
		p := roundTrip(t, in)
		assert.Contains(t, p, "id")

		out, err := schema.ValidateCustomer(p)
		require.NoError(t, err)
		out.ID = in.ID
		assert.Equal(t, in, out)
	})

	t.Run("product", func(t *testing.T) {
		in := model.Product{ID: 8, Name: "Widget", Price: 19.99}
		out, err := schema.ValidateProduct(roundTrip(t, in))
		require.NoError(t, err)
		out.ID = in.ID
		assert.Equal(t, in, out)
	})

	t.Run("order", func(t *testing.T) {
		in := model.NewOrder(model.OrderInput{CustomerID: 2, ProductIDs: []int64{4, 5}}, time.Now())
		in.ID = 11
		out, err := schema.ValidateOrder(roundTrip(t, in))
		require.NoError(t, err)
		assert.Equal(t, model.OrderInput{CustomerID: 2, ProductIDs: []int64{4, 5}}, out)
	})

	t.Run("account never serializes the password hash", func(t *testing.T) {
		p := roundTrip(t, model.CustomerAccount{ID: 1, Username: "ada", PasswordHash: "$2a$hash", CustomerID: 2})
		assert.NotContains(t, p, "password")
		assert.NotContains(t, p, "PasswordHash")
		assert.Equal(t, "ada", p["username"])
	})
}
