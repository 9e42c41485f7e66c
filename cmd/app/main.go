package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"ECommerceAPI/internal/config"
	"ECommerceAPI/internal/db"
	"ECommerceAPI/internal/logger"
	"ECommerceAPI/internal/middleware"
	"ECommerceAPI/internal/repository"
	"ECommerceAPI/internal/repository/memstore"
	"ECommerceAPI/internal/services"
)

func main() {
	// ======================
	// CONFIG
	// ======================
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.WithError(err).Fatal("read .env")
	}
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ======================
	// INFRA
	// ======================
	var store repository.Store
	switch cfg.StoreDriver {
	case config.DriverMemory:
		log.Warn("using in-memory store, data is lost on exit")
		store = memstore.New()
	default:
		pool, err := db.Connect(ctx, cfg.Database(), log)
		if err != nil {
			log.WithError(err).Fatal("connect database")
		}
		defer pool.Close()
		if cfg.AutoMigrate {
			if err := db.Migrate(ctx, pool); err != nil {
				log.WithError(err).Fatal("migrate database")
			}
			log.Info("schema up to date")
		}
		store = repository.NewPgStore(pool, cfg.OpTimeout, log)
	}

	e := newServer(store, cfg, log)

	// ======================
	// SERVER
	// ======================
	go func() {
		log.WithFields(logrus.Fields{"addr": cfg.Addr(), "env": cfg.Env}).Info("listening")
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown")
	}
	log.Info("bye")
}

// newServer wires services and routes on top of store.
func newServer(store repository.Store, cfg config.Config, log logrus.FieldLogger) *echo.Echo {
	// ======================
	// SERVICES
	// ======================
	customerSvc := services.NewCustomerService(store, log)
	accountSvc := services.NewCustomerAccountService(store, cfg.BcryptCost, log)
	productSvc := services.NewProductService(store, log)
	orderSvc := services.NewOrderService(store, log)

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(log))

	r := responder{log: log}
	api := e.Group("")

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Welcome to my E Commerce Application")
	})
	e.GET("/healthz", func(c echo.Context) error {
		if err := store.Ping(c.Request().Context()); err != nil {
			return r.fail(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	registerCustomerRoutes(api, customerSvc, r)
	registerCustomerAccountRoutes(api, accountSvc, r)
	registerProductRoutes(api, productSvc, r)
	registerOrderRoutes(api, orderSvc, r)

	for _, rt := range e.Routes() {
		log.WithFields(logrus.Fields{"method": rt.Method, "path": rt.Path}).Debug("route")
	}
	return e
}
