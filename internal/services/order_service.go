package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"ECommerceAPI/internal/model"
	"ECommerceAPI/internal/repository"
	"ECommerceAPI/internal/schema"
)

type OrderService struct {
	Store repository.Store
	log   logrus.FieldLogger
	now   func() time.Time
}

func NewOrderService(store repository.Store, log logrus.FieldLogger) *OrderService {
	return &OrderService{Store: store, log: log.WithField("service", "order"), now: time.Now}
}

func (s *OrderService) List(ctx context.Context) ([]model.Order, error) {
	var out []model.Order
	err := s.Store.Read(ctx, func(tx repository.Tx) error {
		var err error
		out, err = tx.Orders().List(ctx)
		return err
	})
	return out, err
}

// resolve checks that the customer and every product of in exist.
func resolve(ctx context.Context, tx repository.Tx, in model.OrderInput) error {
	if _, err := tx.Customers().GetByID(ctx, in.CustomerID); err != nil {
		return err
	}
	for _, pid := range in.ProductIDs {
		if _, err := tx.Products().GetByID(ctx, pid); err != nil {
			return err
		}
	}
	return nil
}

// Create places a pending order dated now and due DeliveryWindow later.
// Nothing is written unless the customer and all products exist.
func (s *OrderService) Create(ctx context.Context, p schema.Payload) (int64, error) {
	in, err := schema.ValidateOrder(p)
	if err != nil {
		return 0, err
	}

	var id int64
	err = s.Store.Write(ctx, func(tx repository.Tx) error {
		if err := resolve(ctx, tx, in); err != nil {
			return err
		}
		o := model.NewOrder(in, s.now())
		id, err = tx.Orders().Create(ctx, &o)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.log.WithFields(logrus.Fields{
		"order_id":    id,
		"customer_id": in.CustomerID,
		"products":    len(in.ProductIDs),
	}).Info("order created")
	return id, nil
}

func (s *OrderService) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	var o *model.Order
	err := s.Store.Read(ctx, func(tx repository.Tx) error {
		var err error
		o, err = tx.Orders().GetByID(ctx, id)
		return err
	})
	return o, err
}

// Update replaces the customer and product set. Dates and the delivered
// flag are left as they are.
func (s *OrderService) Update(ctx context.Context, id int64, p schema.Payload) error {
	err := s.Store.Write(ctx, func(tx repository.Tx) error {
		current, err := tx.Orders().GetByID(ctx, id)
		if err != nil {
			return err
		}
		in, err := schema.ValidateOrder(p)
		if err != nil {
			return err
		}
		if err := resolve(ctx, tx, in); err != nil {
			return err
		}
		current.CustomerID = in.CustomerID
		current.ProductIDs = in.ProductIDs
		return tx.Orders().Update(ctx, current)
	})
	if err != nil {
		return err
	}
	s.log.WithField("order_id", id).Info("order updated")
	return nil
}

func (s *OrderService) Delete(ctx context.Context, id int64) error {
	err := s.Store.Write(ctx, func(tx repository.Tx) error {
		return tx.Orders().Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.log.WithField("order_id", id).Info("order deleted")
	return nil
}

// MarkDelivered flips a pending order to delivered. A second call fails
// with apperr.ErrConflict.
func (s *OrderService) MarkDelivered(ctx context.Context, id int64) error {
	err := s.Store.Write(ctx, func(tx repository.Tx) error {
		return tx.Orders().SetDelivered(ctx, id)
	})
	if err != nil {
		return err
	}
	s.log.WithField("order_id", id).Info("order delivered")
	return nil
}
