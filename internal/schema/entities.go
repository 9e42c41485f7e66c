package schema

import "ECommerceAPI/internal/model"

// ValidateCustomer checks name (required, non-empty), email and phone
// (optional strings).
func ValidateCustomer(p Payload) (model.Customer, error) {
	r := newReader(p)
	name, _ := r.str("name", true, 1)
	c := model.Customer{
		Name:  name,
		Email: r.optionalStr("email"),
		Phone: r.optionalStr("phone"),
	}
	if err := r.err(); err != nil {
		return model.Customer{}, err
	}
	return c, nil
}

// ValidateCustomerAccount checks username and password (required,
// non-empty) and customer_id (required integer). Username uniqueness is
// left to the store.
func ValidateCustomerAccount(p Payload) (model.CustomerAccountInput, error) {
	r := newReader(p)
	username, _ := r.str("username", true, 1)
	password, _ := r.str("password", true, 1)
	customerID, _ := r.integer("customer_id", true)
	if err := r.err(); err != nil {
		return model.CustomerAccountInput{}, err
	}
	return model.CustomerAccountInput{
		Username:   username,
		Password:   password,
		CustomerID: customerID,
	}, nil
}

func ValidateProduct(p Payload) (model.Product, error) {
	r := newReader(p)
	name, _ := r.str("name", true, 1)
	price, _ := r.number("price", true, 0)
	if err := r.err(); err != nil {
		return model.Product{}, err
	}
	return model.Product{Name: name, Price: price}, nil
}

// ValidateOrder checks customer_id and product_ids. A payload carrying only
// the single product_id field is read as a one-element product list.
// Repeated product ids collapse into one association.
func ValidateOrder(p Payload) (model.OrderInput, error) {
	r := newReader(p)
	customerID, _ := r.integer("customer_id", true)

	var productIDs []int64
	if _, ok := p["product_ids"]; !ok && p["product_id"] != nil {
		if id, ok := r.integer("product_id", true); ok {
			productIDs = []int64{id}
		}
	} else {
		productIDs, _ = r.intList("product_ids", true, 1)
	}

	if err := r.err(); err != nil {
		return model.OrderInput{}, err
	}
	return model.OrderInput{CustomerID: customerID, ProductIDs: dedupe(productIDs)}, nil
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
