package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"ECommerceAPI/internal/model"
	"ECommerceAPI/internal/repository"
	"ECommerceAPI/internal/schema"
)

type CustomerService struct {
	Store repository.Store
	log   logrus.FieldLogger
}

func NewCustomerService(store repository.Store, log logrus.FieldLogger) *CustomerService {
	return &CustomerService{Store: store, log: log.WithField("service", "customer")}
}

func (s *CustomerService) List(ctx context.Context) ([]model.Customer, error) {
	var out []model.Customer
	err := s.Store.Read(ctx, func(tx repository.Tx) error {
		var err error
		out, err = tx.Customers().List(ctx)
		return err
	})
	return out, err
}

func (s *CustomerService) Create(ctx context.Context, p schema.Payload) (int64, error) {
	c, err := schema.ValidateCustomer(p)
	if err != nil {
		return 0, err
	}

	var id int64
	err = s.Store.Write(ctx, func(tx repository.Tx) error {
		id, err = tx.Customers().Create(ctx, &c)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.log.WithField("customer_id", id).Info("customer created")
	return id, nil
}

// Update replaces name, email and phone. Fields left out of the payload are
// cleared, not kept.
func (s *CustomerService) Update(ctx context.Context, id int64, p schema.Payload) error {
	err := s.Store.Write(ctx, func(tx repository.Tx) error {
		if _, err := tx.Customers().GetByID(ctx, id); err != nil {
			return err
		}
		c, err := schema.ValidateCustomer(p)
		if err != nil {
			return err
		}
		c.ID = id
		return tx.Customers().Update(ctx, &c)
	})
	if err != nil {
		return err
	}
	s.log.WithField("customer_id", id).Info("customer updated")
	return nil
}

// Delete removes the customer. It is rejected with apperr.ErrConflict while
// accounts or orders still reference the customer.
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	err := s.Store.Write(ctx, func(tx repository.Tx) error {
		return tx.Customers().Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.log.WithField("customer_id", id).Info("customer deleted")
	return nil
}

func (s *CustomerService) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	var c *model.Customer
	err := s.Store.Read(ctx, func(tx repository.Tx) error {
		var err error
		c, err = tx.Customers().GetByID(ctx, id)
		return err
	})
	return c, err
}

// GetByEmail returns nil, nil when no customer has that email.
func (s *CustomerService) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	var c *model.Customer
	err := s.Store.Read(ctx, func(tx repository.Tx) error {
		var err error
		c, err = tx.Customers().GetByEmail(ctx, email)
		return err
	})
	return c, err
}
