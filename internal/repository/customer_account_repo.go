package repository

import (
	"context"
	"fmt"

	"ECommerceAPI/internal/apperr"
	"ECommerceAPI/internal/model"

	"github.com/jackc/pgx/v5"
)

type CustomerAccountRepository struct {
	DB querier
}

func NewCustomerAccountRepository(db querier) *CustomerAccountRepository {
	return &CustomerAccountRepository{DB: db}
}

const accountColumns = `id, username, password_hash, customer_id`

func scanAccount(row pgx.Row) (*model.CustomerAccount, error) {
	var a model.CustomerAccount
	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CustomerID); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *CustomerAccountRepository) List(ctx context.Context) ([]model.CustomerAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM customer_accounts ORDER BY id`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, translate(err, nil)
	}
	defer rows.Close()

	out := []model.CustomerAccount{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, translate(err, nil)
		}
		out = append(out, *a)
	}
	return out, translate(rows.Err(), nil)
}

func (r *CustomerAccountRepository) GetByID(ctx context.Context, id int64) (*model.CustomerAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM customer_accounts WHERE id=$1`
	a, err := scanAccount(r.DB.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("customer account %d: %w", id, translate(err, nil))
	}
	return a, nil
}

// Create inserts the account. The unique index on username turns a
// duplicate into apperr.ErrConflict.
func (r *CustomerAccountRepository) Create(ctx context.Context, a *model.CustomerAccount) (int64, error) {
	var id int64
	query := `INSERT INTO customer_accounts (username, password_hash, customer_id) VALUES ($1, $2, $3) RETURNING id`
	if err := r.DB.QueryRow(ctx, query, a.Username, a.PasswordHash, a.CustomerID).Scan(&id); err != nil {
		return 0, translate(err, apperr.ErrNotFound)
	}
	return id, nil
}

func (r *CustomerAccountRepository) Update(ctx context.Context, a *model.CustomerAccount) error {
	query := `UPDATE customer_accounts SET username=$1, password_hash=$2, customer_id=$3 WHERE id=$4`
	tag, err := r.DB.Exec(ctx, query, a.Username, a.PasswordHash, a.CustomerID, a.ID)
	if err != nil {
		return translate(err, apperr.ErrNotFound)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("customer account %d: %w", a.ID, apperr.ErrNotFound)
	}
	return nil
}

func (r *CustomerAccountRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM customer_accounts WHERE id=$1`
	tag, err := r.DB.Exec(ctx, query, id)
	if err != nil {
		return translate(err, apperr.ErrConflict)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("customer account %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}
