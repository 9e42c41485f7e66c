package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"ECommerceAPI/internal/apperr"
)

const (
	sqlstateUniqueViolation     = "23505"
	sqlstateForeignKeyViolation = "23503"
)

// SQLSTATE classes meaning the connection or transaction itself failed:
// connection exception, insufficient resources, operator intervention,
// transaction rollback.
var unavailableClasses = []string{"08", "53", "57", "40"}

// translate maps a driver error onto the apperr outcome classes. onForeignKey
// is what a foreign key violation means for the statement that raised it:
// a missing parent on insert/update, a live reference on delete.
func translate(err error, onForeignKey error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == sqlstateUniqueViolation:
			return fmt.Errorf("%s: %w", pgErr.ConstraintName, apperr.ErrConflict)
		case pgErr.Code == sqlstateForeignKeyViolation && onForeignKey != nil:
			return fmt.Errorf("%s: %w", pgErr.ConstraintName, onForeignKey)
		}
		for _, class := range unavailableClasses {
			if strings.HasPrefix(pgErr.Code, class) {
				return fmt.Errorf("%w: %w", apperr.ErrUnavailable, err)
			}
		}
		return err
	}

	// Anything that is not a server-side statement error means the
	// connection, the pool or the deadline gave out.
	return fmt.Errorf("%w: %w", apperr.ErrUnavailable, err)
}
