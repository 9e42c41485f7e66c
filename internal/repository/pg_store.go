package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PgStore is the Postgres-backed Store. Every scope is one transaction
// bounded by the configured operation timeout.
type PgStore struct {
	DB      *pgxpool.Pool
	timeout time.Duration
	log     logrus.FieldLogger
}

func NewPgStore(db *pgxpool.Pool, timeout time.Duration, log logrus.FieldLogger) *PgStore {
	return &PgStore{DB: db, timeout: timeout, log: log.WithField("component", "pgstore")}
}

var (
	readTxOptions  = pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}
	writeTxOptions = pgx.TxOptions{IsoLevel: pgx.ReadCommitted, AccessMode: pgx.ReadWrite}
)

func (s *PgStore) Read(ctx context.Context, fn func(Tx) error) error {
	return s.inTx(ctx, readTxOptions, fn)
}

func (s *PgStore) Write(ctx context.Context, fn func(Tx) error) error {
	return s.inTx(ctx, writeTxOptions, fn)
}

func (s *PgStore) Ping(ctx context.Context) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return translate(s.DB.Ping(ctx), nil)
}

func (s *PgStore) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *PgStore) inTx(ctx context.Context, opts pgx.TxOptions, fn func(Tx) error) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	tx, err := s.DB.BeginTx(ctx, opts)
	if err != nil {
		s.log.WithError(err).Warn("begin transaction failed")
		return translate(err, nil)
	}
	defer tx.Rollback(ctx)

	if err := fn(pgTx{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		s.log.WithError(err).Warn("commit failed")
		return translate(err, nil)
	}
	return nil
}

type pgTx struct {
	q querier
}

func (t pgTx) Customers() Customers               { return NewCustomerRepository(t.q) }
func (t pgTx) CustomerAccounts() CustomerAccounts { return NewCustomerAccountRepository(t.q) }
func (t pgTx) Products() Products                 { return NewProductRepository(t.q) }
func (t pgTx) Orders() Orders                     { return NewOrderRepository(t.q) }
