package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"ECommerceAPI/internal/apperr"
	"ECommerceAPI/internal/model"
	"ECommerceAPI/internal/repository"
	"ECommerceAPI/internal/schema"
)

// CustomerAccountService stores accounts with bcrypt-hashed passwords.
type CustomerAccountService struct {
	Store      repository.Store
	BcryptCost int
	log        logrus.FieldLogger
}

func NewCustomerAccountService(store repository.Store, bcryptCost int, log logrus.FieldLogger) *CustomerAccountService {
	return &CustomerAccountService{
		Store:      store,
		BcryptCost: bcryptCost,
		log:        log.WithField("service", "customer_account"),
	}
}

func (s *CustomerAccountService) List(ctx context.Context) ([]model.CustomerAccount, error) {
	var out []model.CustomerAccount
	err := s.Store.Read(ctx, func(tx repository.Tx) error {
		var err error
		out, err = tx.CustomerAccounts().List(ctx)
		return err
	})
	return out, err
}

// prepare validates the payload and hashes the password outside any
// transaction.
func (s *CustomerAccountService) prepare(p schema.Payload) (model.CustomerAccount, error) {
	in, err := schema.ValidateCustomerAccount(p)
	if err != nil {
		return model.CustomerAccount{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.BcryptCost)
	if err != nil {
		return model.CustomerAccount{}, fmt.Errorf("hash password: %w", err)
	}
	return model.CustomerAccount{
		Username:     in.Username,
		PasswordHash: string(hash),
		CustomerID:   in.CustomerID,
	}, nil
}

// Create inserts an account for an existing customer. A taken username
// fails with apperr.ErrConflict, an unknown customer with apperr.ErrNotFound.
func (s *CustomerAccountService) Create(ctx context.Context, p schema.Payload) (int64, error) {
	a, err := s.prepare(p)
	if err != nil {
		return 0, err
	}

	var id int64
	err = s.Store.Write(ctx, func(tx repository.Tx) error {
		if _, err := tx.Customers().GetByID(ctx, a.CustomerID); err != nil {
			return err
		}
		id, err = tx.CustomerAccounts().Create(ctx, &a)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.log.WithFields(logrus.Fields{"account_id": id, "customer_id": a.CustomerID}).Info("customer account created")
	return id, nil
}

func (s *CustomerAccountService) Update(ctx context.Context, id int64, p schema.Payload) error {
	if err := s.Store.Read(ctx, func(tx repository.Tx) error {
		_, err := tx.CustomerAccounts().GetByID(ctx, id)
		return err
	}); err != nil {
		return err
	}

	a, err := s.prepare(p)
	if err != nil {
		return err
	}
	a.ID = id

	err = s.Store.Write(ctx, func(tx repository.Tx) error {
		if _, err := tx.Customers().GetByID(ctx, a.CustomerID); err != nil {
			return err
		}
		return tx.CustomerAccounts().Update(ctx, &a)
	})
	if err != nil {
		return err
	}
	s.log.WithField("account_id", id).Info("customer account updated")
	return nil
}

func (s *CustomerAccountService) Delete(ctx context.Context, id int64) error {
	err := s.Store.Write(ctx, func(tx repository.Tx) error {
		return tx.CustomerAccounts().Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.log.WithField("account_id", id).Info("customer account deleted")
	return nil
}

// GetByID returns the account together with its owning customer. An account
// whose customer is gone is an integrity fault, not a missing row.
func (s *CustomerAccountService) GetByID(ctx context.Context, id int64) (*model.CustomerAccountDetail, error) {
	var detail model.CustomerAccountDetail
	err := s.Store.Read(ctx, func(tx repository.Tx) error {
		a, err := tx.CustomerAccounts().GetByID(ctx, id)
		if err != nil {
			return err
		}
		c, err := tx.Customers().GetByID(ctx, a.CustomerID)
		if errors.Is(err, apperr.ErrNotFound) {
			s.log.WithFields(logrus.Fields{
				"account_id":  a.ID,
				"customer_id": a.CustomerID,
			}).Error("customer account references a missing customer")
			return fmt.Errorf("customer account %d owner %d: %w", a.ID, a.CustomerID, apperr.ErrIntegrity)
		}
		if err != nil {
			return err
		}
		detail = model.CustomerAccountDetail{Customer: *c, CustomerAccount: *a}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// CheckPassword reports whether password matches the account's stored hash.
func CheckPassword(a model.CustomerAccount, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}
