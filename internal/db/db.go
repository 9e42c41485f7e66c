package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// Pool defaults used when the config leaves a field at zero.
const (
	DefaultMaxConns          = 25
	DefaultMinConns          = 2
	DefaultMaxConnLifetime   = 5 * time.Minute
	DefaultMaxConnIdleTime   = 30 * time.Second
	DefaultConnectTimeout    = 10 * time.Second
	DefaultHealthCheckPeriod = time.Minute
)

type Config struct {
	URL             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	ConnectTimeout  time.Duration
}

// Connect opens a pgx pool and pings it.
func Connect(ctx context.Context, cfg Config, log logrus.FieldLogger) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pcfg.MaxConns = orDefault(cfg.MaxConns, DefaultMaxConns)
	pcfg.MinConns = orDefault(cfg.MinConns, DefaultMinConns)
	pcfg.MaxConnLifetime = orDefault(cfg.MaxConnLifetime, DefaultMaxConnLifetime)
	pcfg.MaxConnIdleTime = orDefault(cfg.MaxConnIdleTime, DefaultMaxConnIdleTime)
	pcfg.HealthCheckPeriod = DefaultHealthCheckPeriod

	log.WithFields(logrus.Fields{
		"host":      pcfg.ConnConfig.Host,
		"port":      pcfg.ConnConfig.Port,
		"database":  pcfg.ConnConfig.Database,
		"max_conns": pcfg.MaxConns,
	}).Info("connecting to database")

	ctx, cancel := context.WithTimeout(ctx, orDefault(cfg.ConnectTimeout, DefaultConnectTimeout))
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

func orDefault[T int32 | time.Duration](v, def T) T {
	if v <= 0 {
		return def
	}
	return v
}
