package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/crypto/bcrypt"

	"ECommerceAPI/internal/db"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config is read from the environment. Variables carry no prefix, e.g.
// DATABASE_URL, OP_TIMEOUT.
type Config struct {
	Env  string `envconfig:"APP_ENV" default:"dev"`
	Host string `envconfig:"HOST"`
	Port string `envconfig:"PORT" default:"8080"`

	StoreDriver string `envconfig:"STORE_DRIVER" default:"postgres"`
	DatabaseURL string `envconfig:"DATABASE_URL"`
	AutoMigrate bool   `envconfig:"AUTO_MIGRATE" default:"true"`

	DBMaxConns        int32         `envconfig:"DB_MAX_CONNS" default:"25"`
	DBMinConns        int32         `envconfig:"DB_MIN_CONNS" default:"2"`
	DBMaxConnLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
	DBMaxConnIdleTime time.Duration `envconfig:"DB_CONN_MAX_IDLE_TIME" default:"30s"`
	DBConnectTimeout  time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"10s"`

	// OpTimeout bounds every store transaction.
	OpTimeout time.Duration `envconfig:"OP_TIMEOUT" default:"5s"`

	BcryptCost int `envconfig:"BCRYPT_COST" default:"10"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
}

// Load reads the process environment. Call godotenv first to pick up a
// .env file.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var result *multierror.Error

	switch c.StoreDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			result = multierror.Append(result, errors.New("DATABASE_URL is required for the postgres store"))
		}
	case DriverMemory:
	default:
		result = multierror.Append(result, fmt.Errorf("STORE_DRIVER %q: must be %q or %q", c.StoreDriver, DriverPostgres, DriverMemory))
	}

	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		result = multierror.Append(result, fmt.Errorf("PORT %q: must be a number between 1 and 65535", c.Port))
	}
	if c.OpTimeout <= 0 {
		result = multierror.Append(result, errors.New("OP_TIMEOUT must be positive"))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		result = multierror.Append(result, fmt.Errorf("BCRYPT_COST %d: must be between %d and %d", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.DBMinConns > c.DBMaxConns {
		result = multierror.Append(result, errors.New("DB_MIN_CONNS must not exceed DB_MAX_CONNS"))
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		result = multierror.Append(result, fmt.Errorf("LOG_FORMAT %q: must be json or text", c.LogFormat))
	}

	return result.ErrorOrNil()
}

func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

func (c Config) Database() db.Config {
	return db.Config{
		URL:             c.DatabaseURL,
		MaxConns:        c.DBMaxConns,
		MinConns:        c.DBMinConns,
		MaxConnLifetime: c.DBMaxConnLifetime,
		MaxConnIdleTime: c.DBMaxConnIdleTime,
		ConnectTimeout:  c.DBConnectTimeout,
	}
}
