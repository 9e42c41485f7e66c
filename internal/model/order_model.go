package model

import "time"

// DeliveryWindow is the fixed gap between order_date and delivery_date.
const DeliveryWindow = 7 * 24 * time.Hour

// Order represents a row in the orders table plus its order_product rows.
type Order struct {
	ID           int64     `json:"id"`
	OrderDate    time.Time `json:"order_date"`
	DeliveryDate time.Time `json:"delivery_date"`
	Delivered    bool      `json:"delivered"`
	CustomerID   int64     `json:"customer_id"`
	ProductIDs   []int64   `json:"product_ids"`
}

// OrderInput is a validated order payload.
type OrderInput struct {
	CustomerID int64
	ProductIDs []int64
}

// NewOrder builds a pending order placed at now.
func NewOrder(in OrderInput, now time.Time) Order {
	placed := now.UTC().Truncate(time.Microsecond)
	return Order{
		OrderDate:    placed,
		DeliveryDate: placed.Add(DeliveryWindow),
		Delivered:    false,
		CustomerID:   in.CustomerID,
		ProductIDs:   in.ProductIDs,
	}
}
