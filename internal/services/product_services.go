package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"ECommerceAPI/internal/model"
	"ECommerceAPI/internal/repository"
	"ECommerceAPI/internal/schema"
)

type ProductService struct {
	Store repository.Store
	log   logrus.FieldLogger
}

func NewProductService(store repository.Store, log logrus.FieldLogger) *ProductService {
	return &ProductService{Store: store, log: log.WithField("service", "product")}
}

func (s *ProductService) List(ctx context.Context) ([]model.Product, error) {
	var out []model.Product
	err := s.Store.Read(ctx, func(tx repository.Tx) error {
		var err error
		out, err = tx.Products().List(ctx)
		return err
	})
	return out, err
}

func (s *ProductService) Create(ctx context.Context, p schema.Payload) (int64, error) {
	product, err := schema.ValidateProduct(p)
	if err != nil {
		return 0, err
	}

	var id int64
	err = s.Store.Write(ctx, func(tx repository.Tx) error {
		id, err = tx.Products().Create(ctx, &product)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.log.WithFields(logrus.Fields{"product_id": id, "price": product.Price}).Info("product created")
	return id, nil
}

func (s *ProductService) Update(ctx context.Context, id int64, p schema.Payload) error {
	err := s.Store.Write(ctx, func(tx repository.Tx) error {
		if _, err := tx.Products().GetByID(ctx, id); err != nil {
			return err
		}
		product, err := schema.ValidateProduct(p)
		if err != nil {
			return err
		}
		product.ID = id
		return tx.Products().Update(ctx, &product)
	})
	if err != nil {
		return err
	}
	s.log.WithField("product_id", id).Info("product updated")
	return nil
}

// Delete removes the product unless an order still contains it.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	err := s.Store.Write(ctx, func(tx repository.Tx) error {
		return tx.Products().Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.log.WithField("product_id", id).Info("product deleted")
	return nil
}

func (s *ProductService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var product *model.Product
	err := s.Store.Read(ctx, func(tx repository.Tx) error {
		var err error
		product, err = tx.Products().GetByID(ctx, id)
		return err
	})
	return product, err
}

// GetByName returns the first product named exactly name, or nil, nil.
func (s *ProductService) GetByName(ctx context.Context, name string) (*model.Product, error) {
	var product *model.Product
	err := s.Store.Read(ctx, func(tx repository.Tx) error {
		var err error
		product, err = tx.Products().GetByName(ctx, name)
		return err
	})
	return product, err
}
